package serialization

import (
	"io"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

const maxTransactionsPerBlock = 1 << 16

// SerializeBlock writes the header of the block followed by its
// transactions in inclusion order
func SerializeBlock(w io.Writer, block *externalapi.DomainBlock) error {
	err := SerializeHeader(w, block.Header)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(block.Transactions)))
	if err != nil {
		return err
	}
	for _, tx := range block.Transactions {
		err = SerializeTransaction(w, tx, TxEncodingFull)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeserializeBlock reads a block written by SerializeBlock from r. It
// returns the parts of the block, since assembling it requires hashing
// the transactions.
func DeserializeBlock(r io.Reader) (*externalapi.DomainBlockHeader, []*externalapi.DomainTransaction, error) {
	header, err := DeserializeHeader(r)
	if err != nil {
		return nil, nil, err
	}

	count, err := readCount(r, maxTransactionsPerBlock, "transactions")
	if err != nil {
		return nil, nil, err
	}
	transactions := make([]*externalapi.DomainTransaction, count)
	for i := range transactions {
		transactions[i], err = DeserializeTransaction(r)
		if err != nil {
			return nil, nil, err
		}
	}
	return header, transactions, nil
}
