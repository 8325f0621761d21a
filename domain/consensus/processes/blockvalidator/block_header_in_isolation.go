package blockvalidator

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/ruleerrors"
	"github.com/kaspanet/powledger/domain/consensus/utils/pow"
	"github.com/pkg/errors"
)

// ValidateHeaderInIsolation validates block headers in isolation from the current
// consensus state
func (v *blockValidator) ValidateHeaderInIsolation(header *externalapi.DomainBlockHeader) error {
	if header == nil {
		return errors.Wrap(ruleerrors.ErrIncompleteHeader, "block has no header")
	}
	if !header.IsComplete() {
		return errors.Wrapf(ruleerrors.ErrIncompleteHeader, "previous hash set: %t, merkle root set: %t",
			header.PreviousHash() != nil, header.MerkleRoot() != nil)
	}

	if header.Version() != v.headerVersion {
		return errors.Wrapf(ruleerrors.ErrBlockVersion, "block version %d is not %d",
			header.Version(), v.headerVersion)
	}

	// The difficulty must be in the range the network allows, so that
	// the claimed target is neither trivial nor meaningless.
	if header.Difficulty() < v.minDifficulty || header.Difficulty() > v.maxDifficulty {
		return errors.Wrapf(ruleerrors.ErrDifficultyOutOfRange, "block difficulty %d is out of "+
			"the range [%d, %d]", header.Difficulty(), v.minDifficulty, v.maxDifficulty)
	}

	return nil
}

// ValidateProofOfWork ensures the block hash is less than or equal to the
// target the block claims. The header must be valid in isolation.
func (v *blockValidator) ValidateProofOfWork(header *externalapi.DomainBlockHeader) error {
	target := pow.TargetFromDifficulty(header.Difficulty())
	if !pow.CheckProofOfWorkWithTarget(header, target) {
		return errors.Wrapf(ruleerrors.ErrInvalidProofOfWork, "block hash of %064x is higher than "+
			"the expected max of %064x", pow.CalcPowValue(header), target)
	}
	return nil
}
