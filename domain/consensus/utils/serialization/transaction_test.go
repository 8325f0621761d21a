package serialization

import (
	"bytes"
	"testing"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

func testTransaction() *externalapi.DomainTransaction {
	return &externalapi.DomainTransaction{
		Version: 1,
		Inputs: []*externalapi.DomainTransactionInput{{
			PreviousLockingScript: externalapi.Script{{0x76}, {0xa9}, bytes.Repeat([]byte{1}, 20), {0x87}, {0xac}},
			UnlockingScript:       externalapi.Script{bytes.Repeat([]byte{2}, 64), bytes.Repeat([]byte{3}, 32)},
		}},
		Outputs: []*externalapi.DomainTransactionOutput{
			{Value: 100, LockingScript: externalapi.Script{{0x01}}},
			{Value: 200, LockingScript: externalapi.Script{}},
		},
		Payload: []byte("payload"),
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	tx := testTransaction()
	buf := &bytes.Buffer{}
	err := SerializeTransaction(buf, tx, TxEncodingFull)
	if err != nil {
		t.Fatalf("SerializeTransaction: %+v", err)
	}

	deserialized, err := DeserializeTransaction(buf)
	if err != nil {
		t.Fatalf("DeserializeTransaction: %+v", err)
	}
	if !deserialized.Equal(tx) {
		t.Fatalf("deserialized transaction differs from the original")
	}
}

func TestExcludeUnlockingScripts(t *testing.T) {
	tx := testTransaction()
	stripped := tx.Clone()
	stripped.Inputs[0].UnlockingScript = nil

	withFlag := &bytes.Buffer{}
	err := SerializeTransaction(withFlag, tx, TxEncodingExcludeUnlockingScripts)
	if err != nil {
		t.Fatalf("SerializeTransaction: %+v", err)
	}
	full := &bytes.Buffer{}
	err = SerializeTransaction(full, stripped, TxEncodingFull)
	if err != nil {
		t.Fatalf("SerializeTransaction: %+v", err)
	}
	if !bytes.Equal(withFlag.Bytes(), full.Bytes()) {
		t.Fatalf("excluding unlocking scripts should equal serializing them as empty")
	}
}

func TestVarIntCanonical(t *testing.T) {
	tests := []struct {
		value uint64
		size  int
	}{
		{0, 1}, {0xfc, 1}, {0xfd, 3}, {0xffff, 3}, {0x10000, 5}, {0xffffffff, 5}, {0x100000000, 9},
	}
	for _, test := range tests {
		buf := &bytes.Buffer{}
		err := WriteVarInt(buf, test.value)
		if err != nil {
			t.Fatalf("WriteVarInt(%d): %+v", test.value, err)
		}
		if buf.Len() != test.size || VarIntSerializeSize(test.value) != test.size {
			t.Fatalf("WriteVarInt(%d): expected %d bytes, got %d", test.value, test.size, buf.Len())
		}
		read, err := ReadVarInt(buf)
		if err != nil {
			t.Fatalf("ReadVarInt(%d): %+v", test.value, err)
		}
		if read != test.value {
			t.Fatalf("ReadVarInt: expected %d, got %d", test.value, read)
		}
	}

	// 0x05 encoded with the 0xfd discriminant is not canonical
	_, err := ReadVarInt(bytes.NewReader([]byte{0xfd, 0x05, 0x00}))
	if !IsMalformedError(err) {
		t.Fatalf("expected a malformed error for a non-canonical varint, got %v", err)
	}
}
