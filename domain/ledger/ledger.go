// Package ledger keeps the chain of accepted blocks. Blocks are accepted on
// a first-seen basis: every valid block that is not already stored is
// appended and becomes the tip.
package ledger

import (
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/powledger/domain/chaincfg"
	"github.com/kaspanet/powledger/domain/consensus/datastructures/blockstore"
	"github.com/kaspanet/powledger/domain/consensus/model"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/processes/blockvalidator"
	"github.com/kaspanet/powledger/domain/consensus/ruleerrors"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/domain/ledger/blocklogger"
	"github.com/kaspanet/powledger/infrastructure/db/database"
	"github.com/kaspanet/powledger/infrastructure/logger"
	"github.com/kaspanet/powledger/infrastructure/metrics"
	"github.com/pkg/errors"
)

// BlockAcceptedHandler is invoked with every block the ledger accepts
type BlockAcceptedHandler func(block *externalapi.DomainBlock, blockHash *externalapi.DomainHash)

// Ledger accepts blocks into the chain and serves lookups over it
type Ledger interface {
	AcceptBlock(block *externalapi.DomainBlock) (externalapi.BlockStatus, error)
	Lookup(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error)
	Has(blockHash *externalapi.DomainHash) (bool, error)
	Tip() *externalapi.DomainHash
	Count() uint64
	RegisterBlockAcceptedHandler(handler BlockAcceptedHandler)
}

type ledger struct {
	// acceptLock serializes validation and storage. Handlers are invoked
	// after it is released.
	acceptLock sync.Mutex

	blockValidator model.BlockValidator
	blockStore     model.BlockStore
	blockLogger    *blocklogger.BlockLogger

	handlersLock          sync.RWMutex
	blockAcceptedHandlers []BlockAcceptedHandler
}

// New instantiates a ledger storing its blocks in db
func New(params *chaincfg.Params, db database.Database) (Ledger, error) {
	blockStore, err := blockstore.New(db)
	if err != nil {
		return nil, err
	}

	metrics.SetChainLength(int(blockStore.Count()))
	return &ledger{
		blockValidator: blockvalidator.New(params),
		blockStore:     blockStore,
		blockLogger:    blocklogger.New(),
	}, nil
}

// AcceptBlock validates the block and stores it. A block that is already
// stored yields StatusDuplicate without an error. An invalid block yields
// StatusRejected along with a ruleerrors.RuleError describing the violation.
// Any other error is an infrastructure failure.
func (l *ledger) AcceptBlock(block *externalapi.DomainBlock) (externalapi.BlockStatus, error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "AcceptBlock")
	defer onEnd()

	status, blockHash, err := l.acceptBlock(block)
	metrics.IncBlocksProcessed(status.String())
	if err != nil {
		log.Debugf("Rejected block: %s", err)
		return status, err
	}
	if status != externalapi.StatusAccepted {
		log.Debugf("Block %s is already stored", blockHash)
		return status, nil
	}

	log.Debugf("Accepted block %s with %d transactions", blockHash, len(block.Transactions))
	log.Tracef("Accepted block %s: %s", blockHash, logger.NewLogClosure(func() string {
		return spew.Sdump(block)
	}))
	l.blockLogger.LogBlock(block)
	l.notifyBlockAccepted(block, blockHash)
	return status, nil
}

func (l *ledger) acceptBlock(block *externalapi.DomainBlock) (
	externalapi.BlockStatus, *externalapi.DomainHash, error) {

	l.acceptLock.Lock()
	defer l.acceptLock.Unlock()

	if block == nil {
		return externalapi.StatusRejected, nil, errors.Wrap(ruleerrors.ErrIncompleteHeader, "block is nil")
	}

	// The header has to be complete before it can be hashed
	err := l.blockValidator.ValidateHeaderInIsolation(block.Header)
	if err != nil {
		return externalapi.StatusRejected, nil, err
	}

	blockHash := consensushashing.BlockHash(block)
	exists, err := l.blockStore.HasBlock(blockHash)
	if err != nil {
		return externalapi.StatusRejected, blockHash, err
	}
	if exists {
		return externalapi.StatusDuplicate, blockHash, nil
	}

	err = l.blockValidator.ValidateProofOfWork(block.Header)
	if err != nil {
		return externalapi.StatusRejected, blockHash, err
	}

	err = l.blockValidator.ValidateBodyInIsolation(block)
	if err != nil {
		return externalapi.StatusRejected, blockHash, err
	}

	inserted, err := l.blockStore.Insert(blockHash, block)
	if err != nil {
		return externalapi.StatusRejected, blockHash, err
	}
	if !inserted {
		return externalapi.StatusDuplicate, blockHash, nil
	}

	metrics.SetChainLength(int(l.blockStore.Count()))
	return externalapi.StatusAccepted, blockHash, nil
}

// Lookup returns the stored block with the given hash. It returns
// database.ErrNotFound if there is no such block.
func (l *ledger) Lookup(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error) {
	return l.blockStore.Block(blockHash)
}

func (l *ledger) Has(blockHash *externalapi.DomainHash) (bool, error) {
	return l.blockStore.HasBlock(blockHash)
}

// Tip returns the hash of the most recently accepted block, or nil if the
// chain is empty
func (l *ledger) Tip() *externalapi.DomainHash {
	return l.blockStore.Tip()
}

func (l *ledger) Count() uint64 {
	return l.blockStore.Count()
}

func (l *ledger) RegisterBlockAcceptedHandler(handler BlockAcceptedHandler) {
	l.handlersLock.Lock()
	defer l.handlersLock.Unlock()

	l.blockAcceptedHandlers = append(l.blockAcceptedHandlers, handler)
}

func (l *ledger) notifyBlockAccepted(block *externalapi.DomainBlock, blockHash *externalapi.DomainHash) {
	l.handlersLock.RLock()
	defer l.handlersLock.RUnlock()

	for _, handler := range l.blockAcceptedHandlers {
		handler(block, blockHash)
	}
}
