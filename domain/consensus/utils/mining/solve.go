package mining

import (
	"math"
	"math/rand"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

// SolveBlock increments the given block's nonce until it matches the difficulty requirements in its difficulty field
func SolveBlock(block *externalapi.DomainBlock, rd *rand.Rand) {
	targetDifficulty := pow.TargetFromDifficulty(block.Header.Difficulty())

	for i := rd.Uint64(); i < math.MaxUint64; i++ {
		block.Header.SetNonce(i)
		if pow.CheckProofOfWorkWithTarget(block.Header, targetDifficulty) {
			return
		}
	}

	panic(errors.New("went over all the nonce space and couldn't find a single one that gives a valid block"))
}
