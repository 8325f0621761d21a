// Package miner runs the mining rounds of a node: it assembles a block
// template out of the mempool, searches for a nonce that satisfies the
// current difficulty and submits the solved block to the ledger.
package miner

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kaspanet/powledger/domain/chaincfg"
	consensusmodel "github.com/kaspanet/powledger/domain/consensus/model"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/domain/consensus/utils/pow"
	"github.com/kaspanet/powledger/domain/miningmanager/model"
	"github.com/kaspanet/powledger/infrastructure/metrics"
	"github.com/kaspanet/powledger/util/mstime"
	"github.com/pkg/errors"
)

// ErrRoundPreempted is returned by MineRound when another block was accepted
// on top of the chain the round was mining on
var ErrRoundPreempted = errors.New("mining round preempted")

// Ledger is the part of the ledger the miner depends on
type Ledger interface {
	AcceptBlock(block *externalapi.DomainBlock) (externalapi.BlockStatus, error)
	Lookup(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error)
	Tip() *externalapi.DomainHash
}

// Miner owns the state of the mining rounds
type Miner struct {
	genesisMarker        *externalapi.DomainHash
	nonceSearchBatchSize uint64

	ledger               Ledger
	mempool              model.Mempool
	blockTemplateBuilder model.BlockTemplateBuilder
	difficultyManager    consensusmodel.DifficultyManager

	// roundLock makes sure a single round runs at a time
	roundLock sync.Mutex

	stateLock sync.RWMutex
	state     RoundState

	preemptRequested  atomic.Bool
	templateOutdated  atomic.Bool
	newTransactionsCh chan struct{}
}

// New returns an Idle miner. It registers itself for the mempool's
// transaction notifications.
func New(params *chaincfg.Params, ledger Ledger, mempool model.Mempool,
	blockTemplateBuilder model.BlockTemplateBuilder, difficultyManager consensusmodel.DifficultyManager) *Miner {

	miner := &Miner{
		genesisMarker:        params.GenesisMarker,
		nonceSearchBatchSize: params.NonceSearchBatchSize,
		ledger:               ledger,
		mempool:              mempool,
		blockTemplateBuilder: blockTemplateBuilder,
		difficultyManager:    difficultyManager,
		state:                StateIdle,
		newTransactionsCh:    make(chan struct{}, 1),
	}
	if miner.nonceSearchBatchSize == 0 {
		miner.nonceSearchBatchSize = 1
	}
	metrics.SetDifficulty(difficultyManager.CurrentDifficulty())
	mempool.RegisterTransactionAddedHandler(miner.handleTransactionAdded)
	return miner
}

// State returns the state of the current round
func (m *Miner) State() RoundState {
	m.stateLock.RLock()
	defer m.stateLock.RUnlock()

	return m.state
}

func (m *Miner) setState(state RoundState) {
	m.stateLock.Lock()
	defer m.stateLock.Unlock()

	if !isValidTransition(m.state, state) {
		panic(errors.Errorf("invalid miner state transition from %s to %s", m.state, state))
	}
	log.Tracef("Miner state %s -> %s", m.state, state)
	m.state = state
}

// Preempt asks the running round, if any, to check whether the chain tip
// moved. A round whose template is no longer on top of the tip is abandoned
// at the next batch boundary.
func (m *Miner) Preempt() {
	m.preemptRequested.Store(true)
}

// HandleBlockAccepted evicts the transactions of an accepted block from the
// mempool and preempts the running round
func (m *Miner) HandleBlockAccepted(block *externalapi.DomainBlock, blockHash *externalapi.DomainHash) {
	removed := m.mempool.HandleNewBlock(block)
	log.Debugf("Block %s was accepted, evicted %d transactions", blockHash, len(removed))
	m.Preempt()
}

func (m *Miner) handleTransactionAdded(*externalapi.DomainTransaction) {
	m.templateOutdated.Store(true)
	select {
	case m.newTransactionsCh <- struct{}{}:
	default:
	}
}

// Run mines rounds until ctx is done
func (m *Miner) Run(ctx context.Context) error {
	for {
		_, err := m.MineRound(ctx)
		if errors.Is(err, ErrRoundPreempted) {
			continue
		}
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Start runs the miner in its own goroutine until ctx is done
func (m *Miner) Start(ctx context.Context) {
	spawn("miner.Run", func() {
		err := m.Run(ctx)
		if err != nil {
			panic(err)
		}
	})
}

// MineRound runs a single mining round and returns the block it solved.
// It waits for the mempool to have transactions if it has none. It returns
// ErrRoundPreempted if another block extended the chain first, in which
// case the mempool is left untouched, and ctx.Err() if ctx is done first.
func (m *Miner) MineRound(ctx context.Context) (*externalapi.DomainBlock, error) {
	m.roundLock.Lock()
	defer m.roundLock.Unlock()

	template, err := m.buildTemplate(ctx)
	if err != nil {
		return nil, err
	}
	roundStart := time.Now()

	difficulty := m.difficultyManager.CurrentDifficulty()
	template.Header.SetDifficulty(difficulty)
	metrics.SetDifficulty(difficulty)

	m.setState(StateSearching)
	log.Debugf("Searching for a block on top of %s with %d transactions at difficulty %d",
		template.Header.PreviousHash(), template.TransactionCount(), difficulty)
	err = m.search(ctx, template)
	if err != nil {
		if errors.Is(err, ErrRoundPreempted) {
			m.setState(StatePreempted)
			metrics.IncRoundsPreempted()
			log.Debugf("Mining round on top of %s was preempted", template.Header.PreviousHash())
		}
		m.setState(StateIdle)
		return nil, err
	}

	m.setState(StateSolved)
	metrics.IncRoundsSolved()
	solveTime := time.Since(roundStart)
	newDifficulty := m.difficultyManager.AddSolveTime(solveTime)
	metrics.SetDifficulty(newDifficulty)

	blockHash := consensushashing.BlockHash(template)
	log.Infof("Solved block %s with %d transactions in %s", blockHash, template.TransactionCount(), solveTime)

	status, err := m.ledger.AcceptBlock(template)
	m.setState(StateIdle)
	if err != nil {
		return nil, errors.Wrapf(err, "the ledger did not accept mined block %s", blockHash)
	}
	if status != externalapi.StatusAccepted {
		log.Warnf("Mined block %s was not accepted: %s", blockHash, status)
	}
	return template, nil
}

// buildTemplate transitions to Templating and builds a template on top of
// the current tip. It returns once the template has transactions.
func (m *Miner) buildTemplate(ctx context.Context) (*externalapi.DomainBlock, error) {
	for {
		m.setState(StateTemplating)
		m.preemptRequested.Store(false)
		m.templateOutdated.Store(false)

		previousHash := m.previousHash()
		err := m.evictConfirmed(previousHash)
		if err != nil {
			m.setState(StateIdle)
			return nil, err
		}

		template := m.blockTemplateBuilder.BuildBlockTemplate(previousHash)
		if template.TransactionCount() > 0 {
			return template, nil
		}

		m.setState(StateIdle)
		log.Debugf("The mempool is empty, waiting for transactions")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-m.newTransactionsCh:
		}
	}
}

// evictConfirmed removes the transactions of the tip block from the
// mempool. The ledger moves its tip before it notifies the miner, so a
// template built in between would otherwise include them again.
func (m *Miner) evictConfirmed(tip *externalapi.DomainHash) error {
	if tip.Equal(m.genesisMarker) {
		return nil
	}
	tipBlock, err := m.ledger.Lookup(tip)
	if err != nil {
		return err
	}
	removed := m.mempool.HandleNewBlock(tipBlock)
	if len(removed) > 0 {
		log.Debugf("Evicted %d transactions already in tip %s", len(removed), tip)
	}
	return nil
}

func (m *Miner) previousHash() *externalapi.DomainHash {
	tip := m.ledger.Tip()
	if tip == nil {
		return m.genesisMarker
	}
	return tip
}

// search iterates the nonce until the template satisfies its difficulty.
// Between batches of nonces it checks ctx, whether the tip moved and
// whether new transactions can be added to the template.
func (m *Miner) search(ctx context.Context, template *externalapi.DomainBlock) error {
	target := pow.TargetFromDifficulty(template.Header.Difficulty())
	nonce := uint64(0)
	for {
		err := m.checkRound(ctx, template)
		if err != nil {
			return err
		}

		tried := uint64(0)
		for ; tried < m.nonceSearchBatchSize; tried++ {
			template.Header.SetNonce(nonce)
			if pow.CheckProofOfWorkWithTarget(template.Header, target) {
				metrics.AddHashesTried(tried + 1)
				return nil
			}
			if nonce == math.MaxUint64 {
				// The nonce space is exhausted for this timestamp
				template.Header = externalapi.NewCompleteDomainBlockHeader(template.Header.Version(),
					template.Header.PreviousHash(), template.Header.MerkleRoot(),
					mstime.Now().UnixMilliseconds(), template.Header.Difficulty(), 0)
			}
			nonce++
		}
		metrics.AddHashesTried(tried)
	}
}

func (m *Miner) checkRound(ctx context.Context, template *externalapi.DomainBlock) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if m.preemptRequested.Swap(false) && !m.previousHash().Equal(template.Header.PreviousHash()) {
		return ErrRoundPreempted
	}

	if m.templateOutdated.Swap(false) {
		added := m.blockTemplateBuilder.FillBlockTemplate(template)
		if added > 0 {
			log.Debugf("Added %d transactions to the block template", added)
		}
	}
	return nil
}
