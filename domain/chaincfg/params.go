// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"crypto/sha256"
	"time"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/constants"
)

const (
	blockCapacity                  = 3
	targetTimePerBlock             = 1 * time.Minute
	difficultyAdjustmentWindowSize = 100
	initialDifficulty              = 1
	minDifficulty                  = 1
	maxDifficulty                  = 24
	maxDifficultyStep              = 1
	nonceSearchBatchSize           = 1 << 12
)

// GenesisMarkerString is hashed to form the previous hash of the first block
const GenesisMarkerString = "Genesis Block"

// genesisMarker is the previous hash of the first block of every network:
// the SHA256 of GenesisMarkerString.
var genesisMarker = func() *externalapi.DomainHash {
	sum := sha256.Sum256([]byte(GenesisMarkerString))
	return externalapi.NewDomainHashFromByteArray(&sum)
}()

// Params defines a network by its parameters. These parameters may be
// used by applications to differentiate networks as well as addresses
// and keys for one network from those intended for use on another network.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// HeaderVersion is the version mined blocks carry and the only version
	// accepted blocks may carry.
	HeaderVersion uint32

	// GenesisMarker is the previous hash of the first block.
	GenesisMarker *externalapi.DomainHash

	// BlockCapacity is the maximum number of transactions in a block.
	BlockCapacity int

	// TargetTimePerBlock is the desired amount of time to generate each
	// block.
	TargetTimePerBlock time.Duration

	// DifficultyAdjustmentWindowSize is the number of most recent solve
	// times used to retarget the difficulty.
	DifficultyAdjustmentWindowSize int

	// InitialDifficulty is the difficulty of the first mining round.
	InitialDifficulty uint32

	// MinDifficulty and MaxDifficulty bound the difficulty both when
	// retargeting and when accepting blocks.
	MinDifficulty uint32
	MaxDifficulty uint32

	// MaxDifficultyStep is the most a single retarget moves the difficulty
	// up or down. The difficulty is an exponent, so a step of 1 halves or
	// doubles the expected work. 0 leaves retargets unbounded.
	MaxDifficultyStep uint32

	// NonceSearchBatchSize is the number of nonces the miner tries between
	// checks for preemption and template changes.
	NonceSearchBatchSize uint64

	// ValidateScripts makes the template builder admit only transactions
	// whose scripts authorize their spends, and the ledger reject blocks
	// with such transactions.
	ValidateScripts bool

	// RelayNonStdTxs defines whether the mempool admits transactions whose
	// outputs are not locked with pay-to-pubkey-hash scripts.
	RelayNonStdTxs bool
}

// MainnetParams defines the network parameters for the main network.
var MainnetParams = Params{
	Name:                           "powledger-mainnet",
	HeaderVersion:                  constants.BlockVersion,
	GenesisMarker:                  genesisMarker,
	BlockCapacity:                  blockCapacity,
	TargetTimePerBlock:             targetTimePerBlock,
	DifficultyAdjustmentWindowSize: difficultyAdjustmentWindowSize,
	InitialDifficulty:              initialDifficulty,
	MinDifficulty:                  minDifficulty,
	MaxDifficulty:                  maxDifficulty,
	MaxDifficultyStep:              maxDifficultyStep,
	NonceSearchBatchSize:           nonceSearchBatchSize,
	ValidateScripts:                true,
	RelayNonStdTxs:                 false,
}

// SimnetParams defines the network parameters for the simulation test network.
// Blocks are fast and difficulty stays low, which makes it suitable for tests.
var SimnetParams = Params{
	Name:                           "powledger-simnet",
	HeaderVersion:                  constants.BlockVersion,
	GenesisMarker:                  genesisMarker,
	BlockCapacity:                  blockCapacity,
	TargetTimePerBlock:             100 * time.Millisecond,
	DifficultyAdjustmentWindowSize: 10,
	InitialDifficulty:              initialDifficulty,
	MinDifficulty:                  minDifficulty,
	MaxDifficulty:                  16,
	MaxDifficultyStep:              2,
	NonceSearchBatchSize:           1 << 8,
	ValidateScripts:                false,
	RelayNonStdTxs:                 true,
}
