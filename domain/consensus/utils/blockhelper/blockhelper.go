// Package blockhelper builds blocks while keeping their merkle root
// committed to the transactions they carry.
package blockhelper

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/ruleerrors"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/domain/consensus/utils/merkle"
	"github.com/kaspanet/powledger/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// NewHeader returns a header stamped with the given version and creation
// time. Everything else is left unset.
func NewHeader(version uint32, timeInMilliseconds int64) *externalapi.DomainBlockHeader {
	return externalapi.NewDomainBlockHeader(version, timeInMilliseconds)
}

// NewBlock returns a block with the given header and no transactions
func NewBlock(header *externalapi.DomainBlockHeader) *externalapi.DomainBlock {
	return externalapi.NewDomainBlock(header)
}

// AddTransaction appends tx to the block and sets the header's merkle root
// to the root of the whole transaction sequence.
// The tree is rebuilt from scratch, which costs O(n) per call.
func AddTransaction(block *externalapi.DomainBlock, tx *externalapi.DomainTransaction) {
	block.AppendTransaction(tx, consensushashing.TransactionID(tx))
	block.Header.SetMerkleRoot(merkle.CalculateHashMerkleRoot(block.Transactions))
}

// Contains returns whether tx's ID is one of the block's transaction IDs
func Contains(block *externalapi.DomainBlock, tx *externalapi.DomainTransaction) bool {
	return block.HasTransactionID(consensushashing.TransactionID(tx))
}

// FromTransactions rebuilds a block out of a deserialized header and its
// transactions, keeping the header as is.
func FromTransactions(header *externalapi.DomainBlockHeader,
	transactions []*externalapi.DomainTransaction) *externalapi.DomainBlock {

	block := externalapi.NewDomainBlock(header)
	for _, tx := range transactions {
		block.AppendTransaction(tx, consensushashing.TransactionID(tx))
	}
	return block
}

// TotalSize returns the serialized size of the header plus that of every
// transaction. It is used for accounting only.
func TotalSize(block *externalapi.DomainBlock) int {
	size := block.Header.Size()
	for _, tx := range block.Transactions {
		counter := &byteCounter{}
		err := serialization.SerializeTransaction(counter, tx, serialization.TxEncodingFull)
		if err != nil {
			panic(errors.Wrap(err, "byteCounter never returns errors"))
		}
		size += counter.count
	}
	return size
}

// ValidateMerkleRoot returns an ErrBadMerkleRoot rule error if the root in the
// header differs from the root of the block's transactions
func ValidateMerkleRoot(block *externalapi.DomainBlock) error {
	calculated := merkle.CalculateHashMerkleRoot(block.Transactions)
	if !block.Header.MerkleRoot().Equal(calculated) {
		return errors.Wrapf(ruleerrors.ErrBadMerkleRoot, "block merkle root is invalid - block "+
			"header indicates %s, but calculated value is %s", block.Header.MerkleRoot(), calculated)
	}
	return nil
}

type byteCounter struct {
	count int
}

func (c *byteCounter) Write(p []byte) (int, error) {
	c.count += len(p)
	return len(p), nil
}
