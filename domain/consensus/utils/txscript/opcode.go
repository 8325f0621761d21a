// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/hex"
	"strings"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

// These constants are the values of the opcodes the engine recognizes.
// An opcode is a script element consisting of exactly one of these bytes.
const (
	OpDup      = 0x76 // 118
	OpEqual    = 0x87 // 135
	OpHash160  = 0xa9 // 169
	OpCheckSig = 0xac // 172
)

var opcodeNames = map[byte]string{
	OpDup:      "OP_DUP",
	OpEqual:    "OP_EQUAL",
	OpHash160:  "OP_HASH160",
	OpCheckSig: "OP_CHECKSIG",
}

// opcodeOf returns the opcode an element encodes, if any. Every element
// that isn't an opcode is pushed to the stack as literal data.
func opcodeOf(element externalapi.ScriptElement) (byte, bool) {
	if len(element) != 1 {
		return 0, false
	}
	_, ok := opcodeNames[element[0]]
	return element[0], ok
}

// DisasmString formats a script as a space separated list of opcode names
// and hex encoded data elements.
func DisasmString(script externalapi.Script) string {
	parts := make([]string, len(script))
	for i, element := range script {
		if opcode, ok := opcodeOf(element); ok {
			parts[i] = opcodeNames[opcode]
			continue
		}
		parts[i] = hex.EncodeToString(element)
	}
	return strings.Join(parts, " ")
}
