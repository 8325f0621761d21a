package hashes

import (
	"crypto/sha256"
	"hash"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// HashWriter is used to incrementally hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
// This can only be created via one of the domain separated constructors
type HashWriter struct {
	hash.Hash
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Finalize returns the resulting hash
func (h HashWriter) Finalize() *externalapi.DomainHash {
	var sum [externalapi.DomainHashSize]byte
	// This should prevent `Sum` for allocating an output buffer, by using the DomainHash buffer. we still copy because we don't want to rely on that.
	copy(sum[:], h.Sum(sum[:0]))
	return externalapi.NewDomainHashFromByteArray(&sum)
}

var (
	transactionIDDomain          = []byte("TransactionID")
	transactionSigningHashDomain = []byte("TransactionSigningHash")
)

// NewBlockHashWriter returns a new HashWriter used for block header hashes,
// both as the proof-of-work digest and as the key blocks are stored under.
// The digest is a double SHA256.
func NewBlockHashWriter() HashWriter {
	return HashWriter{&doubleSHA256{sha256.New()}}
}

// NewTransactionIDWriter returns a new HashWriter used for transaction IDs
func NewTransactionIDWriter() HashWriter {
	return newKeyedBlake2b(transactionIDDomain)
}

// NewTransactionSigningHashWriter returns a new HashWriter used for the
// message a transaction input signature commits to
func NewTransactionSigningHashWriter() HashWriter {
	return newKeyedBlake2b(transactionSigningHashDomain)
}

// NewMerkleBranchHashWriter returns a new HashWriter used for merkle tree branches
func NewMerkleBranchHashWriter() HashWriter {
	return HashWriter{sha256.New()}
}

func newKeyedBlake2b(domain []byte) HashWriter {
	blake, err := blake2b.New256(domain)
	if err != nil {
		panic(errors.Wrapf(err, "this should never happen. %s is less than 64 bytes", domain))
	}
	return HashWriter{blake}
}

// doubleSHA256 is a hash.Hash whose Sum is SHA256(SHA256(data))
type doubleSHA256 struct {
	hash.Hash
}

func (d *doubleSHA256) Sum(b []byte) []byte {
	first := d.Hash.Sum(nil)
	second := sha256.Sum256(first)
	return append(b, second[:]...)
}
