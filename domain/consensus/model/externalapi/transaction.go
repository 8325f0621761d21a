package externalapi

import (
	"bytes"
)

// DomainTransaction represents a transaction. Besides its inputs and outputs,
// the content is opaque: only the scripts are interpreted.
type DomainTransaction struct {
	Version uint16
	Inputs  []*DomainTransactionInput
	Outputs []*DomainTransactionOutput
	Payload []byte

	// ID is a cache of the transaction ID. It must be reset to nil
	// whenever any other field is modified.
	ID *DomainTransactionID
}

// DomainTransactionInput spends a previous output. Since there is no UTXO set,
// the input carries a copy of the locking script of the output it spends.
type DomainTransactionInput struct {
	PreviousLockingScript Script
	UnlockingScript       Script
}

// DomainTransactionOutput represents a transaction output
type DomainTransactionOutput struct {
	Value         uint64
	LockingScript Script
}

// Clone returns a clone of DomainTransaction
func (tx *DomainTransaction) Clone() *DomainTransaction {
	inputsClone := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, input := range tx.Inputs {
		inputsClone[i] = input.Clone()
	}

	outputsClone := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, output := range tx.Outputs {
		outputsClone[i] = output.Clone()
	}

	var idClone *DomainTransactionID
	if tx.ID != nil {
		id := *tx.ID
		idClone = &id
	}

	return &DomainTransaction{
		Version: tx.Version,
		Inputs:  inputsClone,
		Outputs: outputsClone,
		Payload: append([]byte(nil), tx.Payload...),
		ID:      idClone,
	}
}

// Equal returns whether tx equals to other. The cached ID is ignored.
func (tx *DomainTransaction) Equal(other *DomainTransaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}

	if tx.Version != other.Version ||
		len(tx.Inputs) != len(other.Inputs) ||
		len(tx.Outputs) != len(other.Outputs) ||
		!bytes.Equal(tx.Payload, other.Payload) {
		return false
	}

	for i, input := range tx.Inputs {
		if !input.Equal(other.Inputs[i]) {
			return false
		}
	}

	for i, output := range tx.Outputs {
		if !output.Equal(other.Outputs[i]) {
			return false
		}
	}

	return true
}

// Clone returns a clone of DomainTransactionInput
func (input *DomainTransactionInput) Clone() *DomainTransactionInput {
	return &DomainTransactionInput{
		PreviousLockingScript: input.PreviousLockingScript.Clone(),
		UnlockingScript:       input.UnlockingScript.Clone(),
	}
}

// Equal returns whether input equals to other
func (input *DomainTransactionInput) Equal(other *DomainTransactionInput) bool {
	if input == nil || other == nil {
		return input == other
	}
	return input.PreviousLockingScript.Equal(other.PreviousLockingScript) &&
		input.UnlockingScript.Equal(other.UnlockingScript)
}

// Clone returns a clone of DomainTransactionOutput
func (output *DomainTransactionOutput) Clone() *DomainTransactionOutput {
	return &DomainTransactionOutput{
		Value:         output.Value,
		LockingScript: output.LockingScript.Clone(),
	}
}

// Equal returns whether output equals to other
func (output *DomainTransactionOutput) Equal(other *DomainTransactionOutput) bool {
	if output == nil || other == nil {
		return output == other
	}
	return output.Value == other.Value && output.LockingScript.Equal(other.LockingScript)
}
