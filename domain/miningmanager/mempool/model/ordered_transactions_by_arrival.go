package model

import (
	"sort"

	"github.com/pkg/errors"
)

// TransactionsOrderedByArrival represents a set of MempoolTransactions ordered by the order they were admitted in
type TransactionsOrderedByArrival struct {
	slice []*MempoolTransaction
}

// Push inserts a transaction into the set, placing it in the correct place to preserve order
func (toba *TransactionsOrderedByArrival) Push(transaction *MempoolTransaction) {
	index := toba.findTransactionIndex(transaction)

	toba.slice = append(toba.slice[:index],
		append([]*MempoolTransaction{transaction}, toba.slice[index:]...)...)
}

// Remove removes the given transaction from the set.
// Returns an error if transaction does not exist in the set.
func (toba *TransactionsOrderedByArrival) Remove(transaction *MempoolTransaction) error {
	index := toba.findTransactionIndex(transaction)
	if index >= len(toba.slice) || toba.slice[index] != transaction {
		return errors.Errorf("Couldn't find %s in TransactionsOrderedByArrival", transaction.TransactionID())
	}

	toba.slice = append(toba.slice[:index], toba.slice[index+1:]...)
	return nil
}

// Len returns the number of transactions in the set
func (toba *TransactionsOrderedByArrival) Len() int {
	return len(toba.slice)
}

// First returns up to n transactions, oldest first. A negative n returns
// all of them. The returned slice is a copy.
func (toba *TransactionsOrderedByArrival) First(n int) []*MempoolTransaction {
	if n > len(toba.slice) || n < 0 {
		n = len(toba.slice)
	}
	first := make([]*MempoolTransaction, n)
	copy(first, toba.slice[:n])
	return first
}

func (toba *TransactionsOrderedByArrival) findTransactionIndex(transaction *MempoolTransaction) int {
	return sort.Search(len(toba.slice), func(i int) bool {
		return toba.slice[i].arrival >= transaction.arrival
	})
}
