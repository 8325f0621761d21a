package serialization

import (
	"io"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// ErrIncompleteHeader indicates an attempt to serialize a header that has
// some of its consensus fields unset.
var ErrIncompleteHeader = errors.New("header is incomplete")

// SerializeHeader writes the canonical encoding of the header to w.
// Field order: version, previous hash, merkle root, timestamp, difficulty, nonce.
// This encoding is the input of the block hash, so it must never change.
func SerializeHeader(w io.Writer, header *externalapi.DomainBlockHeader) error {
	if !header.IsComplete() {
		return errors.Wrapf(ErrIncompleteHeader, "previous hash set: %t, merkle root set: %t",
			header.PreviousHash() != nil, header.MerkleRoot() != nil)
	}

	return WriteElements(w,
		header.Version(),
		header.PreviousHash(),
		header.MerkleRoot(),
		header.TimeInMilliseconds(),
		header.Difficulty(),
		header.Nonce(),
	)
}

// DeserializeHeader reads a header written by SerializeHeader from r
func DeserializeHeader(r io.Reader) (*externalapi.DomainBlockHeader, error) {
	var version uint32
	var previousHash, merkleRoot externalapi.DomainHash
	var timeInMilliseconds int64
	var difficulty uint32
	var nonce uint64

	err := ReadElements(r, &version, &previousHash, &merkleRoot, &timeInMilliseconds, &difficulty, &nonce)
	if err != nil {
		return nil, err
	}

	return externalapi.NewCompleteDomainBlockHeader(version, &previousHash, &merkleRoot,
		timeInMilliseconds, difficulty, nonce), nil
}
