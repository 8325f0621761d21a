package mempool

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/miningmanager/mempool/model"
)

type transactionsPool struct {
	allTransactions              model.IDToTransaction
	transactionsOrderedByArrival model.TransactionsOrderedByArrival
	nextArrival                  uint64
}

func newTransactionsPool() *transactionsPool {
	return &transactionsPool{
		allTransactions:              model.IDToTransaction{},
		transactionsOrderedByArrival: model.TransactionsOrderedByArrival{},
		nextArrival:                  0,
	}
}

// this function MUST be called with the mempool mutex locked for writes
func (tp *transactionsPool) addTransaction(transaction *externalapi.DomainTransaction) *model.MempoolTransaction {
	mempoolTransaction := model.NewMempoolTransaction(transaction, tp.nextArrival)
	tp.nextArrival++

	tp.allTransactions[*mempoolTransaction.TransactionID()] = mempoolTransaction
	tp.transactionsOrderedByArrival.Push(mempoolTransaction)
	return mempoolTransaction
}

// this function MUST be called with the mempool mutex locked for writes
func (tp *transactionsPool) removeTransaction(transactionID *externalapi.DomainTransactionID) (bool, error) {
	mempoolTransaction, ok := tp.allTransactions[*transactionID]
	if !ok {
		return false, nil
	}
	delete(tp.allTransactions, *transactionID)

	err := tp.transactionsOrderedByArrival.Remove(mempoolTransaction)
	if err != nil {
		return false, err
	}
	return true, nil
}

// this function MUST be called with the mempool mutex locked for reads
func (tp *transactionsPool) has(transactionID *externalapi.DomainTransactionID) bool {
	_, ok := tp.allTransactions[*transactionID]
	return ok
}

// this function MUST be called with the mempool mutex locked for reads
func (tp *transactionsPool) count() int {
	return len(tp.allTransactions)
}

// this function MUST be called with the mempool mutex locked for reads
func (tp *transactionsPool) getAllTransactions() []*externalapi.DomainTransaction {
	ordered := tp.transactionsOrderedByArrival.First(-1)
	transactions := make([]*externalapi.DomainTransaction, len(ordered))
	for i, mempoolTransaction := range ordered {
		transactions[i] = mempoolTransaction.Transaction()
	}
	return transactions
}
