package mempool

import (
	"fmt"
	"sync"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	miningmanagermodel "github.com/kaspanet/powledger/domain/miningmanager/model"
	"github.com/kaspanet/powledger/infrastructure/metrics"
	"github.com/pkg/errors"
)

type mempool struct {
	mtx sync.RWMutex

	config           *Config
	transactionsPool *transactionsPool

	handlersLock             sync.RWMutex
	transactionAddedHandlers []miningmanagermodel.TransactionAddedHandler
}

// New constructs a new mempool
func New(config *Config) miningmanagermodel.Mempool {
	return &mempool{
		config:           config,
		transactionsPool: newTransactionsPool(),
	}
}

func (mp *mempool) ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction) (bool, error) {
	transactionID := consensushashing.TransactionID(transaction)

	admitted, err := mp.validateAndInsertTransaction(transaction, transactionID)
	if err != nil || !admitted {
		return admitted, err
	}

	log.Debugf("Admitted transaction %s", transactionID)
	mp.notifyTransactionAdded(transaction)
	return true, nil
}

func (mp *mempool) validateAndInsertTransaction(transaction *externalapi.DomainTransaction,
	transactionID *externalapi.DomainTransactionID) (bool, error) {

	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	if mp.transactionsPool.has(transactionID) {
		log.Tracef("Transaction %s is already in the mempool", transactionID)
		return false, nil
	}

	err := mp.checkTransactionStandardInIsolation(transaction)
	if err != nil {
		return false, err
	}

	if mp.transactionsPool.count() >= mp.config.MaximumTransactionCount {
		str := fmt.Sprintf("mempool is full with %d transactions", mp.transactionsPool.count())
		return false, transactionRuleError(RejectMempoolFull, str)
	}

	mp.transactionsPool.addTransaction(transaction)
	metrics.SetMempoolSize(mp.transactionsPool.count())
	return true, nil
}

func (mp *mempool) RemoveTransaction(transaction *externalapi.DomainTransaction) {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	mp.removeTransaction(consensushashing.TransactionID(transaction))
}

func (mp *mempool) HandleNewBlock(block *externalapi.DomainBlock) []*externalapi.DomainTransaction {
	mp.mtx.Lock()
	defer mp.mtx.Unlock()

	removed := make([]*externalapi.DomainTransaction, 0, len(block.Transactions))
	for _, transaction := range block.Transactions {
		if mp.removeTransaction(consensushashing.TransactionID(transaction)) {
			removed = append(removed, transaction)
		}
	}
	log.Debugf("Removed %d of the %d transactions of the new block from the mempool",
		len(removed), len(block.Transactions))
	return removed
}

// this function MUST be called with the mempool mutex locked for writes
func (mp *mempool) removeTransaction(transactionID *externalapi.DomainTransactionID) bool {
	removed, err := mp.transactionsPool.removeTransaction(transactionID)
	if err != nil {
		// The ID map and the arrival order are only ever modified together
		panic(errors.Wrapf(err, "mempool indexes are out of sync for %s", transactionID))
	}
	if removed {
		log.Tracef("Removed transaction %s", transactionID)
		metrics.SetMempoolSize(mp.transactionsPool.count())
	}
	return removed
}

func (mp *mempool) Transactions() []*externalapi.DomainTransaction {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	return mp.transactionsPool.getAllTransactions()
}

func (mp *mempool) HasTransaction(transactionID *externalapi.DomainTransactionID) bool {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	return mp.transactionsPool.has(transactionID)
}

func (mp *mempool) TransactionCount() int {
	mp.mtx.RLock()
	defer mp.mtx.RUnlock()

	return mp.transactionsPool.count()
}

func (mp *mempool) RegisterTransactionAddedHandler(handler miningmanagermodel.TransactionAddedHandler) {
	mp.handlersLock.Lock()
	defer mp.handlersLock.Unlock()

	mp.transactionAddedHandlers = append(mp.transactionAddedHandlers, handler)
}

func (mp *mempool) notifyTransactionAdded(transaction *externalapi.DomainTransaction) {
	mp.handlersLock.RLock()
	defer mp.handlersLock.RUnlock()

	for _, handler := range mp.transactionAddedHandlers {
		handler(transaction)
	}
}
