package model

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

// TransactionAddedHandler is notified of every transaction admitted into the
// mempool, after the mempool lock is released
type TransactionAddedHandler func(transaction *externalapi.DomainTransaction)

// Mempool maintains a set of known transactions that
// are intended to be mined into new blocks
type Mempool interface {
	// ValidateAndInsertTransaction admits the transaction. It returns false
	// with no error if a transaction with the same ID is already in the
	// mempool.
	ValidateAndInsertTransaction(transaction *externalapi.DomainTransaction) (admitted bool, err error)
	RemoveTransaction(transaction *externalapi.DomainTransaction)
	HandleNewBlock(block *externalapi.DomainBlock) []*externalapi.DomainTransaction
	Transactions() []*externalapi.DomainTransaction
	HasTransaction(transactionID *externalapi.DomainTransactionID) bool
	TransactionCount() int
	RegisterTransactionAddedHandler(handler TransactionAddedHandler)
}
