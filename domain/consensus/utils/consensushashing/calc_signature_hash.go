package consensushashing

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/hashes"
	"github.com/kaspanet/powledger/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// CalcSignatureHash returns the message an unlocking script signature for
// input idx of tx commits to: the transaction with every unlocking script
// cleared, followed by the input index.
func CalcSignatureHash(tx *externalapi.DomainTransaction, idx int) (*externalapi.DomainHash, error) {
	if idx < 0 || idx >= len(tx.Inputs) {
		return nil, errors.Errorf("input index %d is out of range [0, %d)", idx, len(tx.Inputs))
	}

	writer := hashes.NewTransactionSigningHashWriter()
	err := serialization.SerializeTransaction(writer, tx, serialization.TxEncodingExcludeUnlockingScripts)
	if err != nil {
		return nil, err
	}
	err = serialization.WriteElement(writer, uint32(idx))
	if err != nil {
		return nil, err
	}
	return writer.Finalize(), nil
}
