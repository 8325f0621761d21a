package serialization

import (
	"io"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

// TxEncoding is a bitmask defining which transaction fields we
// want to encode and which to ignore.
type TxEncoding uint8

const (
	// TxEncodingFull encodes every field of the transaction
	TxEncodingFull TxEncoding = 0

	// TxEncodingExcludeUnlockingScripts encodes every input's unlocking
	// script as empty. Used for the message signatures commit to.
	TxEncodingExcludeUnlockingScripts TxEncoding = 1 << iota
)

const (
	maxInputsPerTransaction  = 1 << 12
	maxOutputsPerTransaction = 1 << 12
	maxElementsPerScript     = 1 << 8
	maxScriptElementSize     = 1 << 16
	maxPayloadSize           = 1 << 20
)

// SerializeTransaction writes the transaction to w according to encodingFlags
func SerializeTransaction(w io.Writer, tx *externalapi.DomainTransaction, encodingFlags TxEncoding) error {
	err := WriteElement(w, tx.Version)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(tx.Inputs)))
	if err != nil {
		return err
	}
	for _, input := range tx.Inputs {
		err = SerializeScript(w, input.PreviousLockingScript)
		if err != nil {
			return err
		}
		unlockingScript := input.UnlockingScript
		if encodingFlags&TxEncodingExcludeUnlockingScripts == TxEncodingExcludeUnlockingScripts {
			unlockingScript = nil
		}
		err = SerializeScript(w, unlockingScript)
		if err != nil {
			return err
		}
	}

	err = WriteVarInt(w, uint64(len(tx.Outputs)))
	if err != nil {
		return err
	}
	for _, output := range tx.Outputs {
		err = WriteElement(w, output.Value)
		if err != nil {
			return err
		}
		err = SerializeScript(w, output.LockingScript)
		if err != nil {
			return err
		}
	}

	return WriteVarBytes(w, tx.Payload)
}

// DeserializeTransaction reads a fully encoded transaction from r
func DeserializeTransaction(r io.Reader) (*externalapi.DomainTransaction, error) {
	tx := &externalapi.DomainTransaction{}
	err := ReadElement(r, &tx.Version)
	if err != nil {
		return nil, err
	}

	inputCount, err := readCount(r, maxInputsPerTransaction, "inputs")
	if err != nil {
		return nil, err
	}
	tx.Inputs = make([]*externalapi.DomainTransactionInput, inputCount)
	for i := range tx.Inputs {
		previousLockingScript, err := DeserializeScript(r)
		if err != nil {
			return nil, err
		}
		unlockingScript, err := DeserializeScript(r)
		if err != nil {
			return nil, err
		}
		tx.Inputs[i] = &externalapi.DomainTransactionInput{
			PreviousLockingScript: previousLockingScript,
			UnlockingScript:       unlockingScript,
		}
	}

	outputCount, err := readCount(r, maxOutputsPerTransaction, "outputs")
	if err != nil {
		return nil, err
	}
	tx.Outputs = make([]*externalapi.DomainTransactionOutput, outputCount)
	for i := range tx.Outputs {
		output := &externalapi.DomainTransactionOutput{}
		err = ReadElement(r, &output.Value)
		if err != nil {
			return nil, err
		}
		output.LockingScript, err = DeserializeScript(r)
		if err != nil {
			return nil, err
		}
		tx.Outputs[i] = output
	}

	tx.Payload, err = ReadVarBytes(r, maxPayloadSize, "payload")
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// SerializeScript writes the number of elements followed by every element
// as a variable length byte array
func SerializeScript(w io.Writer, script externalapi.Script) error {
	err := WriteVarInt(w, uint64(len(script)))
	if err != nil {
		return err
	}
	for _, element := range script {
		err = WriteVarBytes(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeserializeScript reads a script written by SerializeScript from r
func DeserializeScript(r io.Reader) (externalapi.Script, error) {
	count, err := readCount(r, maxElementsPerScript, "script elements")
	if err != nil {
		return nil, err
	}
	script := make(externalapi.Script, count)
	for i := range script {
		script[i], err = ReadVarBytes(r, maxScriptElementSize, "script element")
		if err != nil {
			return nil, err
		}
	}
	return script, nil
}

func readCount(r io.Reader, maxAllowed uint64, fieldName string) (uint64, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return 0, err
	}
	if count > maxAllowed {
		return 0, errMalformedf("too many %s [count %d, max %d]", fieldName, count, maxAllowed)
	}
	return count, nil
}
