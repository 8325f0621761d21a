// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"crypto/sha256"

	"github.com/btcsuite/btcutil/base58"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
	"golang.org/x/crypto/ripemd160"
)

// PubKeyHashSize is the size of the public key hash embedded in a
// pay-to-pubkey-hash locking script
const PubKeyHashSize = ripemd160.Size

// PubKeyHashAddressVersion is the version byte of base58check encoded
// pay-to-pubkey-hash addresses
const PubKeyHashAddressVersion = 0x00

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	sha := sha256.Sum256(buf)
	hasher := ripemd160.New()
	hasher.Write(sha[:]) // ripemd160's Write never returns an error
	return hasher.Sum(nil)
}

// PayToPubKeyHashScript creates a new script to pay a transaction
// output to a 20-byte pubkey hash.
func PayToPubKeyHashScript(pubKeyHash []byte) (externalapi.Script, error) {
	if len(pubKeyHash) != PubKeyHashSize {
		return nil, errors.Errorf("pubkey hash is of length %d instead of %d", len(pubKeyHash), PubKeyHashSize)
	}
	return externalapi.Script{
		{OpDup},
		{OpHash160},
		append([]byte(nil), pubKeyHash...),
		{OpEqual},
		{OpCheckSig},
	}, nil
}

// PayToPubKeyScript creates a pay-to-pubkey-hash locking script for the
// given serialized public key
func PayToPubKeyScript(serializedPublicKey []byte) (externalapi.Script, error) {
	return PayToPubKeyHashScript(Hash160(serializedPublicKey))
}

// IsPayToPubKeyHash returns true if the script is in the standard
// pay-to-pubkey-hash format, false otherwise.
func IsPayToPubKeyHash(script externalapi.Script) bool {
	if len(script) != LockingScriptLength {
		return false
	}
	isOpcode := func(element externalapi.ScriptElement, expected byte) bool {
		opcode, ok := opcodeOf(element)
		return ok && opcode == expected
	}
	return isOpcode(script[0], OpDup) &&
		isOpcode(script[1], OpHash160) &&
		len(script[2]) == PubKeyHashSize &&
		isOpcode(script[3], OpEqual) &&
		isOpcode(script[4], OpCheckSig)
}

// ExtractPubKeyHash returns the public key hash a pay-to-pubkey-hash script
// pays to
func ExtractPubKeyHash(script externalapi.Script) ([]byte, error) {
	if !IsPayToPubKeyHash(script) {
		return nil, errors.Errorf("script %s is not pay-to-pubkey-hash", DisasmString(script))
	}
	return append([]byte(nil), script[2]...), nil
}

// EncodePubKeyHashAddress returns the base58check address of a public key hash
func EncodePubKeyHashAddress(pubKeyHash []byte) string {
	return base58.CheckEncode(pubKeyHash, PubKeyHashAddressVersion)
}

// DecodePubKeyHashAddress decodes an address created with
// EncodePubKeyHashAddress back to its public key hash
func DecodePubKeyHashAddress(address string) ([]byte, error) {
	pubKeyHash, version, err := base58.CheckDecode(address)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode address %s", address)
	}
	if version != PubKeyHashAddressVersion {
		return nil, errors.Errorf("address %s has version %d instead of %d",
			address, version, PubKeyHashAddressVersion)
	}
	if len(pubKeyHash) != PubKeyHashSize {
		return nil, errors.Errorf("address %s decodes to %d bytes instead of %d",
			address, len(pubKeyHash), PubKeyHashSize)
	}
	return pubKeyHash, nil
}

// LockingScriptAddress returns the address of a pay-to-pubkey-hash locking
// script, for display purposes
func LockingScriptAddress(script externalapi.Script) (string, error) {
	pubKeyHash, err := ExtractPubKeyHash(script)
	if err != nil {
		return "", err
	}
	return EncodePubKeyHashAddress(pubKeyHash), nil
}
