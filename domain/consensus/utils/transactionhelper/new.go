package transactionhelper

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/constants"
	"github.com/kaspanet/powledger/domain/consensus/utils/txscript"
	"github.com/pkg/errors"
)

// NewNativeTransaction returns a new transaction of the current version
func NewNativeTransaction(inputs []*externalapi.DomainTransactionInput,
	outputs []*externalapi.DomainTransactionOutput, payload []byte) *externalapi.DomainTransaction {

	if payload == nil {
		payload = []byte{}
	}
	return &externalapi.DomainTransaction{
		Version: constants.TransactionVersion,
		Inputs:  inputs,
		Outputs: outputs,
		Payload: payload,
	}
}

// NewSignedTransaction returns a standard transaction that moves value from a
// pay-to-pubkey-hash output owned by key to the pubkey hash recipient. Its
// single input is signed by key.
func NewSignedTransaction(key *secp256k1.SchnorrKeyPair, recipient []byte, value uint64,
	payload []byte) (*externalapi.DomainTransaction, error) {

	publicKey, err := txscript.SerializedPublicKey(key)
	if err != nil {
		return nil, err
	}
	spentLockingScript, err := txscript.PayToPubKeyHashScript(txscript.Hash160(publicKey))
	if err != nil {
		return nil, err
	}
	recipientLockingScript, err := txscript.PayToPubKeyHashScript(recipient)
	if err != nil {
		return nil, errors.Wrap(err, "invalid recipient")
	}

	tx := NewNativeTransaction(
		[]*externalapi.DomainTransactionInput{{PreviousLockingScript: spentLockingScript}},
		[]*externalapi.DomainTransactionOutput{{Value: value, LockingScript: recipientLockingScript}},
		payload)

	err = txscript.SignTxInput(tx, 0, key)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
