package blockvalidator

import (
	"github.com/kaspanet/powledger/domain/chaincfg"
	"github.com/kaspanet/powledger/domain/consensus/model"
)

// blockValidator exposes a set of validation classes, after which
// it's possible to determine whether either a block is valid
type blockValidator struct {
	headerVersion   uint32
	minDifficulty   uint32
	maxDifficulty   uint32
	blockCapacity   int
	validateScripts bool
}

// New instantiates a new BlockValidator
func New(params *chaincfg.Params) model.BlockValidator {
	return &blockValidator{
		headerVersion:   params.HeaderVersion,
		minDifficulty:   params.MinDifficulty,
		maxDifficulty:   params.MaxDifficulty,
		blockCapacity:   params.BlockCapacity,
		validateScripts: params.ValidateScripts,
	}
}
