package consensushashing

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/hashes"
	"github.com/kaspanet/powledger/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// BlockHash returns the given block's hash
func BlockHash(block *externalapi.DomainBlock) *externalapi.DomainHash {
	return HeaderHash(block.Header)
}

// HeaderHash returns the given header's hash. This is both the proof-of-work
// digest and the key the block is stored under.
// The header must be complete.
func HeaderHash(header *externalapi.DomainBlockHeader) *externalapi.DomainHash {
	writer := hashes.NewBlockHashWriter()
	err := serialization.SerializeHeader(writer, header)
	if err != nil {
		// The writer never fails, so the only way to get here is an incomplete
		// header, which is a programming error on the caller's side.
		panic(errors.Wrap(err, "HeaderHash called with a header that cannot be serialized"))
	}

	return writer.Finalize()
}
