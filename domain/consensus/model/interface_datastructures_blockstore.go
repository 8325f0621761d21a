package model

import "github.com/kaspanet/powledger/domain/consensus/model/externalapi"

// BlockStore represents an append-only store of blocks keyed by their hash
type BlockStore interface {
	Insert(blockHash *externalapi.DomainHash, block *externalapi.DomainBlock) (inserted bool, err error)
	Block(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error)
	HasBlock(blockHash *externalapi.DomainHash) (bool, error)
	Tip() *externalapi.DomainHash
	Count() uint64
}
