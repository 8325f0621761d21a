package serialization

import (
	"bytes"
	"testing"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

func TestBlockRoundTrip(t *testing.T) {
	header := externalapi.NewCompleteDomainBlockHeader(1, externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{1}),
		externalapi.NewDomainHashFromByteArray(&[externalapi.DomainHashSize]byte{2}),
		1600000000000, 3, 4)
	block := externalapi.NewDomainBlock(header)
	for i := 0; i < 2; i++ {
		tx := testTransaction()
		tx.Payload = []byte{byte(i)}
		block.AppendTransaction(tx, externalapi.NewDomainTransactionIDFromByteArray(&[externalapi.DomainHashSize]byte{byte(i)}))
	}

	buf := &bytes.Buffer{}
	err := SerializeBlock(buf, block)
	if err != nil {
		t.Fatalf("SerializeBlock: %+v", err)
	}

	deserializedHeader, transactions, err := DeserializeBlock(buf)
	if err != nil {
		t.Fatalf("DeserializeBlock: %+v", err)
	}
	if !deserializedHeader.Equal(header) {
		t.Fatalf("deserialized header differs from the original")
	}
	if len(transactions) != len(block.Transactions) {
		t.Fatalf("expected %d transactions, got %d", len(block.Transactions), len(transactions))
	}
	for i, tx := range transactions {
		if !tx.Equal(block.Transactions[i]) {
			t.Fatalf("transaction %d differs from the original", i)
		}
	}
	if buf.Len() != 0 {
		t.Fatalf("%d bytes were left unread", buf.Len())
	}
}
