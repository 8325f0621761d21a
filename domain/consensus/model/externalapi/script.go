package externalapi

import "bytes"

// ScriptElement is a single script element: either an opcode tag or raw data
// (a signature, a public key, a hash or any other pushed value).
type ScriptElement []byte

// Script is an ordered sequence of script elements
type Script []ScriptElement

// Clone returns a deep clone of the script
func (script Script) Clone() Script {
	if script == nil {
		return nil
	}
	clone := make(Script, len(script))
	for i, element := range script {
		clone[i] = append(ScriptElement(nil), element...)
	}
	return clone
}

// Equal returns whether script equals to other element-wise
func (script Script) Equal(other Script) bool {
	if len(script) != len(other) {
		return false
	}
	for i, element := range script {
		if !bytes.Equal(element, other[i]) {
			return false
		}
	}
	return true
}
