package txscript

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

func TestHash160(t *testing.T) {
	// ripemd160(sha256("")) from the Bitcoin test vectors
	expected := "b472a266d0bd89c13706a4132ccfb16f7c3b9fcb"
	if got := hex.EncodeToString(Hash160(nil)); got != expected {
		t.Fatalf("Hash160(\"\"): expected %s, got %s", expected, got)
	}
}

func TestPayToPubKeyHashScript(t *testing.T) {
	pubKeyHash := bytes.Repeat([]byte{0x42}, PubKeyHashSize)
	script, err := PayToPubKeyHashScript(pubKeyHash)
	if err != nil {
		t.Fatalf("PayToPubKeyHashScript: %+v", err)
	}
	if !IsPayToPubKeyHash(script) {
		t.Fatalf("script is not recognized as pay-to-pubkey-hash: %s", DisasmString(script))
	}
	expectedDisasm := "OP_DUP OP_HASH160 " + hex.EncodeToString(pubKeyHash) + " OP_EQUAL OP_CHECKSIG"
	if DisasmString(script) != expectedDisasm {
		t.Fatalf("unexpected disassembly %q", DisasmString(script))
	}

	extracted, err := ExtractPubKeyHash(script)
	if err != nil {
		t.Fatalf("ExtractPubKeyHash: %+v", err)
	}
	if !bytes.Equal(extracted, pubKeyHash) {
		t.Fatalf("extracted %x instead of %x", extracted, pubKeyHash)
	}

	_, err = PayToPubKeyHashScript(pubKeyHash[:19])
	if err == nil {
		t.Fatalf("expected an error for a short pubkey hash")
	}

	notStandard := script.Clone()
	notStandard[3] = externalapi.ScriptElement{OpDup}
	if IsPayToPubKeyHash(notStandard) {
		t.Fatalf("a script with OP_DUP instead of OP_EQUAL is not pay-to-pubkey-hash")
	}
}

func TestPubKeyHashAddress(t *testing.T) {
	pubKeyHash := bytes.Repeat([]byte{0x07}, PubKeyHashSize)
	address := EncodePubKeyHashAddress(pubKeyHash)

	decoded, err := DecodePubKeyHashAddress(address)
	if err != nil {
		t.Fatalf("DecodePubKeyHashAddress: %+v", err)
	}
	if !bytes.Equal(decoded, pubKeyHash) {
		t.Fatalf("decoded %x instead of %x", decoded, pubKeyHash)
	}

	script, err := PayToPubKeyHashScript(pubKeyHash)
	if err != nil {
		t.Fatalf("PayToPubKeyHashScript: %+v", err)
	}
	scriptAddress, err := LockingScriptAddress(script)
	if err != nil {
		t.Fatalf("LockingScriptAddress: %+v", err)
	}
	if scriptAddress != address {
		t.Fatalf("LockingScriptAddress: expected %s, got %s", address, scriptAddress)
	}

	corrupted := []byte(address)
	corrupted[len(corrupted)-1]++
	_, err = DecodePubKeyHashAddress(string(corrupted))
	if err == nil {
		t.Fatalf("expected a checksum error for a corrupted address")
	}
}
