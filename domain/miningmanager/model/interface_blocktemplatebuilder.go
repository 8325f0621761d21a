package model

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

// BlockTemplateBuilder builds block templates for a miner to consume
type BlockTemplateBuilder interface {
	BuildBlockTemplate(previousHash *externalapi.DomainHash) *externalapi.DomainBlock
	FillBlockTemplate(template *externalapi.DomainBlock) (added int)
}
