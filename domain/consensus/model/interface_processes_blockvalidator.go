package model

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

// BlockValidator exposes a set of validation classes, after which
// it's possible to determine whether a block is valid
type BlockValidator interface {
	ValidateHeaderInIsolation(header *externalapi.DomainBlockHeader) error
	ValidateProofOfWork(header *externalapi.DomainBlockHeader) error
	ValidateBodyInIsolation(block *externalapi.DomainBlock) error
}
