package testutils

import (
	"fmt"
	"testing"

	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/transactionhelper"
	"github.com/kaspanet/powledger/domain/consensus/utils/txscript"
)

// SignedTransaction returns a fresh standard transaction, signed by a new
// key. Distinct values of i result in distinct transactions.
func SignedTransaction(t *testing.T, i int) *externalapi.DomainTransaction {
	key, err := secp256k1.GenerateSchnorrKeyPair()
	if err != nil {
		t.Fatalf("GenerateSchnorrKeyPair: %+v", err)
	}
	recipient := make([]byte, txscript.PubKeyHashSize)
	tx, err := transactionhelper.NewSignedTransaction(key, recipient, uint64(i), []byte(fmt.Sprintf("tx %d", i)))
	if err != nil {
		t.Fatalf("NewSignedTransaction: %+v", err)
	}
	return tx
}

// OpaqueTransaction returns a transaction without inputs or outputs.
// It is not standard but carries no scripts to fail validation.
func OpaqueTransaction(i int) *externalapi.DomainTransaction {
	return transactionhelper.NewNativeTransaction(nil, nil, []byte(fmt.Sprintf("opaque %d", i)))
}
