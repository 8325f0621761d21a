package miningmanager_test

import (
	"context"
	"testing"

	"github.com/kaspanet/powledger/domain/chaincfg"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/domain/consensus/utils/testutils"
	"github.com/kaspanet/powledger/domain/ledger"
	"github.com/kaspanet/powledger/domain/miningmanager"
	"github.com/kaspanet/powledger/domain/miningmanager/mempool"
	"github.com/kaspanet/powledger/infrastructure/db/database/ldb"
)

func setupMiningManager(t *testing.T, params *chaincfg.Params) (miningmanager.MiningManager, ledger.Ledger, func()) {
	db, err := ldb.NewInMemoryLevelDB()
	if err != nil {
		t.Fatalf("NewInMemoryLevelDB: %+v", err)
	}
	l, err := ledger.New(params, db)
	if err != nil {
		t.Fatalf("ledger.New: %+v", err)
	}
	miningManager := miningmanager.NewFactory().NewMiningManager(l, params, nil)
	l.RegisterBlockAcceptedHandler(miningManager.HandleNewBlock)
	return miningManager, l, func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("Close: %+v", err)
		}
	}
}

// TestValidateAndInsertTransaction verifies that valid transactions were successfully inserted into the mempool.
func TestValidateAndInsertTransaction(t *testing.T) {
	testutils.ForAllNets(t, func(t *testing.T, params *chaincfg.Params) {
		miningManager, _, teardown := setupMiningManager(t, params)
		defer teardown()

		transactionsToInsert := make([]*externalapi.DomainTransaction, 10)
		for i := range transactionsToInsert {
			transactionsToInsert[i] = testutils.SignedTransaction(t, i)
			admitted, err := miningManager.ValidateAndInsertTransaction(transactionsToInsert[i])
			if err != nil {
				t.Fatalf("ValidateAndInsertTransaction: %v", err)
			}
			if !admitted {
				t.Fatalf("transaction %d was not admitted", i)
			}
		}

		transactionsFromMempool := miningManager.AllTransactions()
		if len(transactionsToInsert) != len(transactionsFromMempool) {
			t.Fatalf("Wrong number of transactions in mempool: expected: %d, got: %d",
				len(transactionsToInsert), len(transactionsFromMempool))
		}
		for i, transactionToInsert := range transactionsToInsert {
			if transactionsFromMempool[i] != transactionToInsert {
				t.Fatalf("Missing transaction %s in the mempool", consensushashing.TransactionID(transactionToInsert))
			}
		}

		// Inserting the same transaction again is silently ignored
		admitted, err := miningManager.ValidateAndInsertTransaction(transactionsToInsert[0])
		if err != nil || admitted {
			t.Fatalf("a duplicate transaction should be ignored, got admitted=%t err=%v", admitted, err)
		}
		if miningManager.TransactionCount() != len(transactionsToInsert) {
			t.Fatalf("Wrong number of transactions in mempool: %d", miningManager.TransactionCount())
		}
	})
}

func TestHandleNewBlock(t *testing.T) {
	params := chaincfg.SimnetParams
	miningManager, l, teardown := setupMiningManager(t, &params)
	defer teardown()

	for i := 0; i < params.BlockCapacity+1; i++ {
		_, err := miningManager.ValidateAndInsertTransaction(testutils.SignedTransaction(t, i))
		if err != nil {
			t.Fatalf("ValidateAndInsertTransaction: %v", err)
		}
	}

	block, err := miningManager.MineRound(context.Background())
	if err != nil {
		t.Fatalf("MineRound: %+v", err)
	}
	if l.Count() != 1 {
		t.Fatalf("expected the mined block to be stored")
	}
	if miningManager.TransactionCount() != 1 {
		t.Fatalf("expected 1 transaction left in the mempool, got %d", miningManager.TransactionCount())
	}
	for _, tx := range block.Transactions {
		for _, pending := range miningManager.AllTransactions() {
			if pending == tx {
				t.Fatalf("a mined transaction was left in the mempool")
			}
		}
	}
}

func TestGetBlockTemplate(t *testing.T) {
	params := chaincfg.MainnetParams
	miningManager, _, teardown := setupMiningManager(t, &params)
	defer teardown()

	_, err := miningManager.ValidateAndInsertTransaction(testutils.SignedTransaction(t, 0))
	if err != nil {
		t.Fatalf("ValidateAndInsertTransaction: %v", err)
	}

	template := miningManager.GetBlockTemplate()
	if !template.Header.PreviousHash().Equal(params.GenesisMarker) {
		t.Fatalf("the template should be on top of the genesis marker")
	}
	if template.Header.Difficulty() != miningManager.Difficulty() {
		t.Fatalf("the template should carry the current difficulty")
	}
	if template.TransactionCount() != 1 {
		t.Fatalf("expected 1 transaction, got %d", template.TransactionCount())
	}
}

func TestMempoolConfig(t *testing.T) {
	params := chaincfg.MainnetParams
	db, err := ldb.NewInMemoryLevelDB()
	if err != nil {
		t.Fatalf("NewInMemoryLevelDB: %+v", err)
	}
	defer db.Close()
	l, err := ledger.New(&params, db)
	if err != nil {
		t.Fatalf("ledger.New: %+v", err)
	}

	config := mempool.DefaultConfig(&params)
	config.MaximumTransactionCount = 1
	miningManager := miningmanager.NewFactory().NewMiningManager(l, &params, config)
	_, err = miningManager.ValidateAndInsertTransaction(testutils.SignedTransaction(t, 0))
	if err != nil {
		t.Fatalf("ValidateAndInsertTransaction: %v", err)
	}
	_, err = miningManager.ValidateAndInsertTransaction(testutils.SignedTransaction(t, 1))
	if code, ok := mempool.ExtractRejectCode(err); !ok || code != mempool.RejectMempoolFull {
		t.Fatalf("expected %s, got %v", mempool.RejectMempoolFull, err)
	}
}
