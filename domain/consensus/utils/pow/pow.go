package pow

import (
	"math/big"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/domain/consensus/utils/constants"
	"github.com/kaspanet/powledger/domain/consensus/utils/hashes"
)

var bigOne = big.NewInt(1)

// TargetFromDifficulty returns the target implied by the difficulty:
// 2^(256 - difficulty). A difficulty of zero or above 256 has no meaningful
// target and is clamped to the nearest valid bound.
func TargetFromDifficulty(difficulty uint32) *big.Int {
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > constants.HashBits {
		difficulty = constants.HashBits
	}
	return new(big.Int).Lsh(bigOne, uint(constants.HashBits-difficulty))
}

// CalcPowValue returns the numeric interpretation of the header hash
func CalcPowValue(header *externalapi.DomainBlockHeader) *big.Int {
	return hashes.ToBig(consensushashing.HeaderHash(header))
}

// CheckProofOfWorkWithTarget check's if the block has a valid PoW according to the provided target
// it does not check if the difficulty itself is valid for the appropriate network
func CheckProofOfWorkWithTarget(header *externalapi.DomainBlockHeader, target *big.Int) bool {
	// The block hash must be less or equal than the claimed target.
	return CalcPowValue(header).Cmp(target) <= 0
}

// CheckProofOfWork check's if the block has a valid PoW according to its difficulty field
// it does not check if the difficulty itself is valid for the appropriate network
func CheckProofOfWork(header *externalapi.DomainBlockHeader) bool {
	return CheckProofOfWorkWithTarget(header, TargetFromDifficulty(header.Difficulty()))
}
