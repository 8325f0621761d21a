package hashes

import (
	"math/big"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

// ToBig converts a hash into a big.Int, interpreting its bytes as a
// big-endian number.
func ToBig(hash *externalapi.DomainHash) *big.Int {
	return new(big.Int).SetBytes(hash.ByteSlice())
}
