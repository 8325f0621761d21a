package consensushashing

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/hashes"
	"github.com/kaspanet/powledger/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// TransactionID generates the Hash for the transaction.
// The result is cached on the transaction, so it must not be mutated
// after this is called.
func TransactionID(tx *externalapi.DomainTransaction) *externalapi.DomainTransactionID {
	if tx.ID != nil {
		return tx.ID
	}

	writer := hashes.NewTransactionIDWriter()
	err := serialization.SerializeTransaction(writer, tx, serialization.TxEncodingFull)
	if err != nil {
		// this writer never returns errors (no allocations or possible failures) so errors can only come from validity checks,
		// and we assume we never construct malformed transactions.
		panic(errors.Wrap(err, "TransactionID() failed. this should never fail for structurally-valid transactions"))
	}
	transactionID := externalapi.DomainTransactionID(*writer.Finalize())

	tx.ID = &transactionID
	return tx.ID
}

// TransactionIDs converts the provided slice of DomainTransactions
// to a corresponding slice of TransactionIDs
func TransactionIDs(txs []*externalapi.DomainTransaction) []*externalapi.DomainTransactionID {
	txIDs := make([]*externalapi.DomainTransactionID, len(txs))
	for i, tx := range txs {
		txIDs[i] = TransactionID(tx)
	}
	return txIDs
}
