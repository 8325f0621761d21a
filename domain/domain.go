// Package domain composes the node roles out of the ledger and mining
// capabilities. A full node owns a ledger. A mining node owns a ledger too,
// and mines blocks into it out of its own mempool.
package domain

import (
	"github.com/kaspanet/powledger/domain/chaincfg"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/ledger"
	"github.com/kaspanet/powledger/domain/miningmanager"
	"github.com/kaspanet/powledger/infrastructure/db/database"
)

// FullNode accepts blocks into its ledger and serves lookups over it
type FullNode interface {
	SubmitBlock(block *externalapi.DomainBlock) (externalapi.BlockStatus, error)
	Lookup(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error)
	Ledger() ledger.Ledger
}

// MiningNode is a FullNode that also collects transactions and mines them
// into blocks on top of its own ledger
type MiningNode interface {
	FullNode
	SubmitTransaction(transaction *externalapi.DomainTransaction) (admitted bool, err error)
	MiningManager() miningmanager.MiningManager
}

type fullNode struct {
	ledger ledger.Ledger
}

// NewFullNode instantiates a full node storing its ledger in db
func NewFullNode(params *chaincfg.Params, db database.Database) (FullNode, error) {
	l, err := ledger.New(params, db)
	if err != nil {
		return nil, err
	}
	log.Infof("Full node on %s started with %d blocks", params.Name, l.Count())
	return &fullNode{ledger: l}, nil
}

func (n *fullNode) SubmitBlock(block *externalapi.DomainBlock) (externalapi.BlockStatus, error) {
	return n.ledger.AcceptBlock(block)
}

func (n *fullNode) Lookup(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error) {
	return n.ledger.Lookup(blockHash)
}

func (n *fullNode) Ledger() ledger.Ledger {
	return n.ledger
}

type miningNode struct {
	*fullNode
	miningManager miningmanager.MiningManager
}

// NewMiningNode instantiates a mining node storing its ledger in db. Blocks
// accepted by the ledger, whether mined locally or submitted, evict their
// transactions from the mempool and preempt the running mining round.
func NewMiningNode(params *chaincfg.Params, db database.Database) (MiningNode, error) {
	l, err := ledger.New(params, db)
	if err != nil {
		return nil, err
	}

	miningManager := miningmanager.NewFactory().NewMiningManager(l, params, nil)
	l.RegisterBlockAcceptedHandler(miningManager.HandleNewBlock)

	log.Infof("Mining node on %s started with %d blocks at difficulty %d",
		params.Name, l.Count(), miningManager.Difficulty())
	return &miningNode{
		fullNode:      &fullNode{ledger: l},
		miningManager: miningManager,
	}, nil
}

// SubmitTransaction admits the transaction into the mempool. A transaction
// that is already in the mempool is not admitted again.
func (n *miningNode) SubmitTransaction(transaction *externalapi.DomainTransaction) (bool, error) {
	return n.miningManager.ValidateAndInsertTransaction(transaction)
}

func (n *miningNode) MiningManager() miningmanager.MiningManager {
	return n.miningManager
}
