// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode identifies a kind of script error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInvalidScriptShape is returned when the unlocking script does not
	// have exactly two elements or the locking script does not have exactly
	// five elements.
	ErrInvalidScriptShape ErrorCode = iota

	// ErrInvalidIndex is returned when an out-of-bounds index is passed to
	// a function.
	ErrInvalidIndex

	// ErrStackUnderflow is returned when an opcode requires more items on
	// the stack than are present.
	ErrStackUnderflow

	// ErrEqualVerify is returned when OP_EQUAL finds two different
	// elements.
	ErrEqualVerify

	// ErrInvalidPublicKey is returned when the element OP_CHECKSIG pops as
	// the public key cannot be parsed.
	ErrInvalidPublicKey

	// ErrInvalidSignature is returned when the element OP_CHECKSIG pops as
	// the signature cannot be parsed.
	ErrInvalidSignature

	// ErrCheckSigVerify is returned when a signature does not verify
	// against the message and the public key.
	ErrCheckSigVerify

	// ErrEvalFalse is returned when the script evaluated without error but
	// terminated with an empty or false top stack element.
	ErrEvalFalse

	// numErrorCodes is the maximum error code number used in tests. This
	// entry MUST be the last entry in the enum.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidScriptShape: "ErrInvalidScriptShape",
	ErrInvalidIndex:       "ErrInvalidIndex",
	ErrStackUnderflow:     "ErrStackUnderflow",
	ErrEqualVerify:        "ErrEqualVerify",
	ErrInvalidPublicKey:   "ErrInvalidPublicKey",
	ErrInvalidSignature:   "ErrInvalidSignature",
	ErrCheckSigVerify:     "ErrCheckSigVerify",
	ErrEvalFalse:          "ErrEvalFalse",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// IsStructural returns whether the code reports a malformed script rather
// than a failed authorization
func (e ErrorCode) IsStructural() bool {
	return e == ErrInvalidScriptShape || e == ErrInvalidIndex
}

// Error identifies a script-related error. It is used to indicate three
// classes of errors:
// 1) Something other than the script itself went wrong such as an invalid
//    input index.
// 2) The scripts don't have the canonical shape.
// 3) The scripts executed but did not authorize the spend.
//
// The caller can use type assertions on the returned errors to access the
// ErrorCode field to ascertain the specific reason for the error.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether or not the provided error is a script error
// with the provided error code.
func IsErrorCode(err error, c ErrorCode) bool {
	var serr Error
	return errors.As(err, &serr) && serr.ErrorCode == c
}
