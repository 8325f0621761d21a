// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"fmt"

	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/infrastructure/logger"
)

// Canonical script lengths, in elements
const (
	UnlockingScriptLength = 2
	LockingScriptLength   = 5
)

// Engine is the virtual machine that executes scripts.
type Engine struct {
	lockingScript   externalapi.Script
	unlockingScript externalapi.Script
	message         *externalapi.DomainHash
	dstack          stack
}

// NewEngine returns a new script engine for the provided scripts and the
// message CHECKSIG verifies signatures against. Scripts that don't have the
// canonical shapes are rejected with ErrInvalidScriptShape.
func NewEngine(lockingScript, unlockingScript externalapi.Script, message *externalapi.DomainHash) (*Engine, error) {
	if len(unlockingScript) != UnlockingScriptLength {
		str := fmt.Sprintf("unlocking script has %d elements instead of %d",
			len(unlockingScript), UnlockingScriptLength)
		return nil, scriptError(ErrInvalidScriptShape, str)
	}
	if len(lockingScript) != LockingScriptLength {
		str := fmt.Sprintf("locking script has %d elements instead of %d",
			len(lockingScript), LockingScriptLength)
		return nil, scriptError(ErrInvalidScriptShape, str)
	}
	return &Engine{
		lockingScript:   lockingScript,
		unlockingScript: unlockingScript,
		message:         message,
	}, nil
}

// Execute runs the unlocking script's elements followed by the locking
// script's and returns nil iff the spend is authorized.
func (vm *Engine) Execute() error {
	for _, element := range vm.unlockingScript {
		vm.dstack.PushByteArray(element)
	}

	for i, element := range vm.lockingScript {
		err := vm.step(element)
		if err != nil {
			return err
		}
		log.Tracef("%v", logger.NewLogClosure(func() string {
			return fmt.Sprintf("stack after element %d of %s:\n%s", i, DisasmString(vm.lockingScript), vm.dstack.String())
		}))
	}

	top, err := vm.dstack.PeekByteArray(0)
	if err != nil {
		return err
	}
	if !asBool(top) {
		return scriptError(ErrEvalFalse, "false stack entry at end of script execution")
	}
	return nil
}

func (vm *Engine) step(element externalapi.ScriptElement) error {
	opcode, ok := opcodeOf(element)
	if !ok {
		vm.dstack.PushByteArray(element)
		return nil
	}

	switch opcode {
	case OpDup:
		return vm.dstack.Dup()
	case OpHash160:
		return vm.opcodeHash160()
	case OpEqual:
		return vm.opcodeEqual()
	case OpCheckSig:
		return vm.opcodeCheckSig()
	}
	return nil
}

// opcodeHash160 treats the top item of the data stack as raw bytes and
// replaces it with ripemd160(sha256(data)).
//
// Stack transformation: [... x1] -> [... ripemd160(sha256(x1))]
func (vm *Engine) opcodeHash160() error {
	buf, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	vm.dstack.PushByteArray(Hash160(buf))
	return nil
}

// opcodeEqual removes the top 2 items of the data stack and aborts execution
// unless they are byte-for-byte equal.
//
// Stack transformation: [... x1 x2] -> [...]
func (vm *Engine) opcodeEqual() error {
	a, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}
	b, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	if !bytes.Equal(a, b) {
		str := fmt.Sprintf("%x != %x", b, a)
		return scriptError(ErrEqualVerify, str)
	}
	return nil
}

// opcodeCheckSig pops a public key and then a signature, and verifies the
// signature against the engine's message. Execution aborts unless the
// signature is valid.
//
// Stack transformation: [... signature pubkey] -> [... true]
func (vm *Engine) opcodeCheckSig() error {
	pkBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	sigBytes, err := vm.dstack.PopByteArray()
	if err != nil {
		return err
	}

	pubKey, err := secp256k1.DeserializeSchnorrPubKey(pkBytes)
	if err != nil {
		return scriptError(ErrInvalidPublicKey, fmt.Sprintf("unparsable public key %x: %s", pkBytes, err))
	}
	signature, err := secp256k1.DeserializeSchnorrSignatureFromSlice(sigBytes)
	if err != nil {
		return scriptError(ErrInvalidSignature, fmt.Sprintf("unparsable signature %x: %s", sigBytes, err))
	}

	secpHash := secp256k1.Hash(*vm.message.ByteArray())
	if !pubKey.SchnorrVerify(&secpHash, signature) {
		str := fmt.Sprintf("signature %x does not verify against message %s and public key %x",
			sigBytes, vm.message, pkBytes)
		return scriptError(ErrCheckSigVerify, str)
	}

	vm.dstack.PushBool(true)
	return nil
}

// ExecuteScripts runs unlockingScript against lockingScript and returns a
// script Error describing why the spend is not authorized, or nil.
func ExecuteScripts(lockingScript, unlockingScript externalapi.Script, message *externalapi.DomainHash) error {
	vm, err := NewEngine(lockingScript, unlockingScript, message)
	if err != nil {
		return err
	}
	return vm.Execute()
}

// Execute returns whether unlockingScript authorizes spending an output
// locked by lockingScript, with signatures verified against message.
// Malformed scripts are simply not authorized.
func Execute(lockingScript, unlockingScript externalapi.Script, message *externalapi.DomainHash) bool {
	err := ExecuteScripts(lockingScript, unlockingScript, message)
	if err != nil {
		log.Debugf("Script execution failed: %s", err)
		return false
	}
	return true
}

// ValidateTransactionInput executes the scripts of input idx of tx against
// the input's signature hash.
func ValidateTransactionInput(tx *externalapi.DomainTransaction, idx int) error {
	if idx < 0 || idx >= len(tx.Inputs) {
		str := fmt.Sprintf("input index %d is out of range [0, %d)", idx, len(tx.Inputs))
		return scriptError(ErrInvalidIndex, str)
	}
	message, err := consensushashing.CalcSignatureHash(tx, idx)
	if err != nil {
		return err
	}
	input := tx.Inputs[idx]
	return ExecuteScripts(input.PreviousLockingScript, input.UnlockingScript, message)
}

// ValidateTransactionScripts executes the scripts of every input of tx.
// A transaction without inputs has nothing to authorize.
func ValidateTransactionScripts(tx *externalapi.DomainTransaction) error {
	for i := range tx.Inputs {
		err := ValidateTransactionInput(tx, i)
		if err != nil {
			return err
		}
	}
	return nil
}
