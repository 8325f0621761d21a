package model

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
)

// MempoolTransaction represents a transaction inside the mempool
type MempoolTransaction struct {
	transaction *externalapi.DomainTransaction
	arrival     uint64
}

// NewMempoolTransaction constructs a new MempoolTransaction.
// arrival orders transactions first-come-first-served.
func NewMempoolTransaction(transaction *externalapi.DomainTransaction, arrival uint64) *MempoolTransaction {
	return &MempoolTransaction{
		transaction: transaction,
		arrival:     arrival,
	}
}

// TransactionID returns the ID of this MempoolTransaction
func (mt *MempoolTransaction) TransactionID() *externalapi.DomainTransactionID {
	return consensushashing.TransactionID(mt.transaction)
}

// Transaction return the DomainTransaction associated with this MempoolTransaction:
func (mt *MempoolTransaction) Transaction() *externalapi.DomainTransaction {
	return mt.transaction
}

// Arrival returns the position of this transaction in admission order
func (mt *MempoolTransaction) Arrival() uint64 {
	return mt.arrival
}
