package miningmanager

import (
	"github.com/kaspanet/powledger/domain/chaincfg"
	"github.com/kaspanet/powledger/domain/consensus/processes/difficultymanager"
	"github.com/kaspanet/powledger/domain/miningmanager/blocktemplatebuilder"
	"github.com/kaspanet/powledger/domain/miningmanager/mempool"
	"github.com/kaspanet/powledger/domain/miningmanager/miner"
)

// Factory instantiates new mining managers
type Factory interface {
	NewMiningManager(ledger miner.Ledger, params *chaincfg.Params, mempoolConfig *mempool.Config) MiningManager
}

type factory struct{}

// NewMiningManager instantiate a new mining manager mining on top of ledger
func (f *factory) NewMiningManager(ledger miner.Ledger, params *chaincfg.Params,
	mempoolConfig *mempool.Config) MiningManager {

	if mempoolConfig == nil {
		mempoolConfig = mempool.DefaultConfig(params)
	}
	mp := mempool.New(mempoolConfig)
	blockTemplateBuilder := blocktemplatebuilder.New(params, mp)
	difficultyManager := difficultymanager.New(params)

	return &miningManager{
		genesisMarker:        params.GenesisMarker,
		ledger:               ledger,
		mempool:              mp,
		blockTemplateBuilder: blockTemplateBuilder,
		difficultyManager:    difficultyManager,
		miner:                miner.New(params, ledger, mp, blockTemplateBuilder, difficultyManager),
	}
}

// NewFactory creates a new mining manager factory
func NewFactory() Factory {
	return &factory{}
}
