// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// SerializedPublicKey returns the serialized Schnorr public key of the key pair
func SerializedPublicKey(key *secp256k1.SchnorrKeyPair) ([]byte, error) {
	publicKey, err := key.SchnorrPublicKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive public key")
	}
	serialized, err := publicKey.Serialize()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize public key")
	}
	return serialized[:], nil
}

// RawTxInSignature returns the serialized Schnorr signature for the input idx of
// the given transaction.
func RawTxInSignature(tx *externalapi.DomainTransaction, idx int, key *secp256k1.SchnorrKeyPair) ([]byte, error) {
	hash, err := consensushashing.CalcSignatureHash(tx, idx)
	if err != nil {
		return nil, err
	}
	secpHash := secp256k1.Hash(*hash.ByteArray())
	signature, err := key.SchnorrSign(&secpHash)
	if err != nil {
		return nil, errors.Errorf("cannot sign tx input: %s", err)
	}

	return signature.Serialize()[:], nil
}

// SignatureScript creates an unlocking script for input idx of tx that spends
// an output locked to the public key of key. tx must include all transaction
// inputs and outputs, however unlocking scripts are allowed to be filled or
// empty since signatures never commit to them.
func SignatureScript(tx *externalapi.DomainTransaction, idx int, key *secp256k1.SchnorrKeyPair) (externalapi.Script, error) {
	sig, err := RawTxInSignature(tx, idx, key)
	if err != nil {
		return nil, err
	}

	pkData, err := SerializedPublicKey(key)
	if err != nil {
		return nil, err
	}

	return externalapi.Script{sig, pkData}, nil
}

// SignTxInput sets the unlocking script of input idx of tx. The cached
// transaction ID is reset since the transaction changes.
func SignTxInput(tx *externalapi.DomainTransaction, idx int, key *secp256k1.SchnorrKeyPair) error {
	unlockingScript, err := SignatureScript(tx, idx, key)
	if err != nil {
		return err
	}
	tx.Inputs[idx].UnlockingScript = unlockingScript
	tx.ID = nil
	return nil
}
