package txscript

import (
	"testing"

	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/hashes"
)

func messageHash(message string) *externalapi.DomainHash {
	writer := hashes.NewMerkleBranchHashWriter()
	writer.InfallibleWrite([]byte(message))
	return writer.Finalize()
}

type testKey struct {
	keyPair   *secp256k1.SchnorrKeyPair
	publicKey []byte
	locking   externalapi.Script
}

func newTestKey(t *testing.T) *testKey {
	keyPair, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		t.Fatalf("GenerateSchnorrKeyPair: %+v", err)
	}
	publicKey, err := SerializedPublicKey(keyPair)
	if err != nil {
		t.Fatalf("SerializedPublicKey: %+v", err)
	}
	locking, err := PayToPubKeyScript(publicKey)
	if err != nil {
		t.Fatalf("PayToPubKeyScript: %+v", err)
	}
	return &testKey{keyPair: keyPair, publicKey: publicKey, locking: locking}
}

func (k *testKey) sign(t *testing.T, message *externalapi.DomainHash) []byte {
	secpHash := secp256k1.Hash(*message.ByteArray())
	signature, err := k.keyPair.SchnorrSign(&secpHash)
	if err != nil {
		t.Fatalf("SchnorrSign: %+v", err)
	}
	return signature.Serialize()[:]
}

func TestExecute(t *testing.T) {
	key := newTestKey(t)
	otherKey := newTestKey(t)
	message := messageHash("spend")
	signature := key.sign(t, message)

	tests := []struct {
		name         string
		locking      externalapi.Script
		unlocking    externalapi.Script
		message      *externalapi.DomainHash
		expectedCode ErrorCode
		authorized   bool
	}{
		{
			name:       "valid spend",
			locking:    key.locking,
			unlocking:  externalapi.Script{signature, key.publicKey},
			message:    message,
			authorized: true,
		},
		{
			name:         "public key does not match the hash",
			locking:      otherKey.locking,
			unlocking:    externalapi.Script{signature, key.publicKey},
			message:      message,
			expectedCode: ErrEqualVerify,
		},
		{
			name:         "signature over a different message",
			locking:      key.locking,
			unlocking:    externalapi.Script{signature, key.publicKey},
			message:      messageHash("another spend"),
			expectedCode: ErrCheckSigVerify,
		},
		{
			name:         "signature by another key",
			locking:      key.locking,
			unlocking:    externalapi.Script{otherKey.sign(t, message), key.publicKey},
			message:      message,
			expectedCode: ErrCheckSigVerify,
		},
		{
			name:         "malformed signature",
			locking:      key.locking,
			unlocking:    externalapi.Script{signature[:10], key.publicKey},
			message:      message,
			expectedCode: ErrInvalidSignature,
		},
		{
			name:         "unlocking script too short",
			locking:      key.locking,
			unlocking:    externalapi.Script{signature},
			message:      message,
			expectedCode: ErrInvalidScriptShape,
		},
		{
			name:         "unlocking script too long",
			locking:      key.locking,
			unlocking:    externalapi.Script{signature, key.publicKey, key.publicKey},
			message:      message,
			expectedCode: ErrInvalidScriptShape,
		},
		{
			name:         "locking script too short",
			locking:      key.locking[:4],
			unlocking:    externalapi.Script{signature, key.publicKey},
			message:      message,
			expectedCode: ErrInvalidScriptShape,
		},
		{
			name:         "locking script too long",
			locking:      append(key.locking.Clone(), externalapi.ScriptElement{OpDup}),
			unlocking:    externalapi.Script{signature, key.publicKey},
			message:      message,
			expectedCode: ErrInvalidScriptShape,
		},
		{
			// Unknown elements are pushed as data, so a locking script of
			// literals authorizes whenever its last literal is truthy
			name:       "literals only",
			locking:    externalapi.Script{{1}, {2}, {3}, {4}, {5}},
			unlocking:  externalapi.Script{{6}, {7}},
			message:    message,
			authorized: true,
		},
		{
			name:         "false top of stack",
			locking:      externalapi.Script{{1}, {2}, {3}, {4}, {}},
			unlocking:    externalapi.Script{{6}, {7}},
			message:      message,
			expectedCode: ErrEvalFalse,
		},
		{
			name:         "stack underflow",
			locking:      externalapi.Script{{OpEqual}, {OpEqual}, {1}, {2}, {3}},
			unlocking:    externalapi.Script{{6}, {6}},
			message:      message,
			expectedCode: ErrStackUnderflow,
		},
	}

	for _, test := range tests {
		authorized := Execute(test.locking, test.unlocking, test.message)
		if authorized != test.authorized {
			t.Errorf("%s: expected authorized to be %t, got %t", test.name, test.authorized, authorized)
			continue
		}

		err := ExecuteScripts(test.locking, test.unlocking, test.message)
		if test.authorized {
			if err != nil {
				t.Errorf("%s: unexpected error: %+v", test.name, err)
			}
			continue
		}
		if !IsErrorCode(err, test.expectedCode) {
			t.Errorf("%s: expected error code %s, got %v", test.name, test.expectedCode, err)
		}
	}
}

func TestErrorCodeStringer(t *testing.T) {
	for code := ErrorCode(0); code < numErrorCodes; code++ {
		if _, ok := errorCodeStrings[code]; !ok {
			t.Errorf("error code %d has no string representation", int(code))
		}
	}
	if ErrorCode(numErrorCodes+1).String() != "Unknown ErrorCode (9)" {
		t.Errorf("unexpected string for an unknown error code: %s", ErrorCode(numErrorCodes+1))
	}
	if !ErrInvalidScriptShape.IsStructural() || ErrCheckSigVerify.IsStructural() {
		t.Errorf("IsStructural misclassifies error codes")
	}
}
