package miningmanager

import (
	"context"

	consensusmodel "github.com/kaspanet/powledger/domain/consensus/model"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/miningmanager/miner"
	miningmanagermodel "github.com/kaspanet/powledger/domain/miningmanager/model"
)

// MiningManager creates block templates for mining as well as maintaining
// known transactions that have no yet been added to any block
type MiningManager interface {
	ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction) (admitted bool, err error)
	HandleNewBlock(block *externalapi.DomainBlock, blockHash *externalapi.DomainHash)
	GetBlockTemplate() *externalapi.DomainBlock
	MineRound(ctx context.Context) (*externalapi.DomainBlock, error)
	Start(ctx context.Context)
	AllTransactions() []*externalapi.DomainTransaction
	TransactionCount() int
	Difficulty() uint32
	State() miner.RoundState
}

type miningManager struct {
	genesisMarker        *externalapi.DomainHash
	ledger               miner.Ledger
	mempool              miningmanagermodel.Mempool
	blockTemplateBuilder miningmanagermodel.BlockTemplateBuilder
	difficultyManager    consensusmodel.DifficultyManager
	miner                *miner.Miner
}

// ValidateAndInsertTransaction validates the given transaction, and
// adds it to the set of known transactions that have not yet been
// added to any block. A transaction that is already known is not
// admitted again and yields no error.
func (mm *miningManager) ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction) (bool, error) {
	return mm.mempool.ValidateAndInsertTransaction(transaction)
}

// HandleNewBlock handles a new block that was just accepted by the ledger:
// its transactions leave the mempool and the current round is preempted.
func (mm *miningManager) HandleNewBlock(block *externalapi.DomainBlock, blockHash *externalapi.DomainHash) {
	mm.miner.HandleBlockAccepted(block, blockHash)
}

// GetBlockTemplate creates a block template on top of the ledger tip at the
// current difficulty. The nonce is left unset.
func (mm *miningManager) GetBlockTemplate() *externalapi.DomainBlock {
	previousHash := mm.ledger.Tip()
	if previousHash == nil {
		previousHash = mm.genesisMarker
	}
	template := mm.blockTemplateBuilder.BuildBlockTemplate(previousHash)
	template.Header.SetDifficulty(mm.difficultyManager.CurrentDifficulty())
	return template
}

// MineRound runs a single mining round. See miner.Miner.MineRound.
func (mm *miningManager) MineRound(ctx context.Context) (*externalapi.DomainBlock, error) {
	return mm.miner.MineRound(ctx)
}

// Start mines in the background until ctx is done
func (mm *miningManager) Start(ctx context.Context) {
	mm.miner.Start(ctx)
}

// AllTransactions returns the mempool transactions in the order they were admitted
func (mm *miningManager) AllTransactions() []*externalapi.DomainTransaction {
	return mm.mempool.Transactions()
}

func (mm *miningManager) TransactionCount() int {
	return mm.mempool.TransactionCount()
}

// Difficulty returns the difficulty of the next mining round
func (mm *miningManager) Difficulty() uint32 {
	return mm.difficultyManager.CurrentDifficulty()
}

func (mm *miningManager) State() miner.RoundState {
	return mm.miner.State()
}
