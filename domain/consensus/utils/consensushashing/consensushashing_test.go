package consensushashing

import (
	"testing"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

func testTransaction() *externalapi.DomainTransaction {
	return &externalapi.DomainTransaction{
		Version: 1,
		Inputs: []*externalapi.DomainTransactionInput{
			{PreviousLockingScript: externalapi.Script{{1}}, UnlockingScript: externalapi.Script{{2}, {3}}},
			{PreviousLockingScript: externalapi.Script{{4}}, UnlockingScript: externalapi.Script{{5}, {6}}},
		},
		Outputs: []*externalapi.DomainTransactionOutput{{Value: 10, LockingScript: externalapi.Script{{7}}}},
		Payload: []byte{8},
	}
}

func TestTransactionIDIsCached(t *testing.T) {
	tx := testTransaction()
	first := TransactionID(tx)
	if tx.ID != first {
		t.Fatalf("TransactionID did not cache its result")
	}

	uncached := testTransaction()
	if !TransactionID(uncached).Equal(first) {
		t.Fatalf("identical transactions should have identical IDs")
	}

	uncached.ID = nil
	uncached.Payload = []byte{9}
	if TransactionID(uncached).Equal(first) {
		t.Fatalf("different transactions should have different IDs")
	}
}

func TestCalcSignatureHash(t *testing.T) {
	tx := testTransaction()
	hash0, err := CalcSignatureHash(tx, 0)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %+v", err)
	}
	hash1, err := CalcSignatureHash(tx, 1)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %+v", err)
	}
	if hash0.Equal(hash1) {
		t.Fatalf("signature hashes of different inputs should differ")
	}

	// Signatures can't commit to themselves
	resigned := tx.Clone()
	resigned.Inputs[0].UnlockingScript = externalapi.Script{{0xff}, {0xee}}
	resignedHash, err := CalcSignatureHash(resigned, 0)
	if err != nil {
		t.Fatalf("CalcSignatureHash: %+v", err)
	}
	if !resignedHash.Equal(hash0) {
		t.Fatalf("the signature hash should not depend on unlocking scripts")
	}

	_, err = CalcSignatureHash(tx, 2)
	if err == nil {
		t.Fatalf("expected an error for an out of range input index")
	}
}

func TestHeaderHash(t *testing.T) {
	header := externalapi.NewCompleteDomainBlockHeader(1, &externalapi.DomainHash{}, &externalapi.DomainHash{}, 1000, 1, 0)
	first := HeaderHash(header)

	header.SetNonce(1)
	if HeaderHash(header).Equal(first) {
		t.Fatalf("changing the nonce should change the header hash")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("HeaderHash of an incomplete header should panic")
		}
	}()
	HeaderHash(externalapi.NewDomainBlockHeader(1, 1000))
}
