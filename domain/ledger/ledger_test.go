package ledger

import (
	"math/rand"
	"testing"

	"github.com/kaspanet/powledger/domain/chaincfg"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/ruleerrors"
	"github.com/kaspanet/powledger/domain/consensus/utils/blockhelper"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/domain/consensus/utils/mining"
	"github.com/kaspanet/powledger/domain/consensus/utils/pow"
	"github.com/kaspanet/powledger/domain/consensus/utils/testutils"
	"github.com/kaspanet/powledger/infrastructure/db/database"
	"github.com/kaspanet/powledger/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
)

func newTestLedger(t *testing.T, params *chaincfg.Params) (Ledger, func()) {
	db, err := ldb.NewInMemoryLevelDB()
	if err != nil {
		t.Fatalf("NewInMemoryLevelDB: %+v", err)
	}
	l, err := New(params, db)
	if err != nil {
		t.Fatalf("New: %+v", err)
	}
	return l, func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("Close: %+v", err)
		}
	}
}

func solvedBlock(t *testing.T, params *chaincfg.Params, previousHash *externalapi.DomainHash,
	transactions ...*externalapi.DomainTransaction) *externalapi.DomainBlock {

	block := blockhelper.NewBlock(blockhelper.NewHeader(params.HeaderVersion, 0))
	block.Header.SetPreviousHash(previousHash)
	for _, tx := range transactions {
		blockhelper.AddTransaction(block, tx)
	}
	block.Header.SetDifficulty(params.MinDifficulty)
	mining.SolveBlock(block, rand.New(rand.NewSource(0)))
	return block
}

func TestAcceptBlockIsIdempotent(t *testing.T) {
	testutils.ForAllNets(t, func(t *testing.T, params *chaincfg.Params) {
		l, teardown := newTestLedger(t, params)
		defer teardown()

		var notified []*externalapi.DomainHash
		l.RegisterBlockAcceptedHandler(func(block *externalapi.DomainBlock, blockHash *externalapi.DomainHash) {
			notified = append(notified, blockHash)
		})

		block := solvedBlock(t, params, params.GenesisMarker, testutils.SignedTransaction(t, 0))
		blockHash := consensushashing.BlockHash(block)

		status, err := l.AcceptBlock(block)
		if err != nil {
			t.Fatalf("AcceptBlock: %+v", err)
		}
		if status != externalapi.StatusAccepted {
			t.Fatalf("expected %s, got %s", externalapi.StatusAccepted, status)
		}

		status, err = l.AcceptBlock(block.Clone())
		if err != nil {
			t.Fatalf("AcceptBlock: %+v", err)
		}
		if status != externalapi.StatusDuplicate {
			t.Fatalf("expected %s, got %s", externalapi.StatusDuplicate, status)
		}

		if l.Count() != 1 {
			t.Fatalf("expected 1 block, got %d", l.Count())
		}
		if !l.Tip().Equal(blockHash) {
			t.Fatalf("expected tip %s, got %s", blockHash, l.Tip())
		}
		if len(notified) != 1 || !notified[0].Equal(blockHash) {
			t.Fatalf("expected a single notification for %s, got %v", blockHash, notified)
		}

		stored, err := l.Lookup(blockHash)
		if err != nil {
			t.Fatalf("Lookup: %+v", err)
		}
		if !stored.Equal(block) {
			t.Fatalf("the stored block differs from the accepted one")
		}
	})
}

func TestAcceptBlockRejections(t *testing.T) {
	params := chaincfg.MainnetParams
	l, teardown := newTestLedger(t, &params)
	defer teardown()

	invalidPoW := solvedBlock(t, &params, params.GenesisMarker, testutils.SignedTransaction(t, 0))
	invalidPoW.Header.SetDifficulty(params.MaxDifficulty)
	for nonce := uint64(0); pow.CheckProofOfWork(invalidPoW.Header); nonce++ {
		invalidPoW.Header.SetNonce(nonce)
	}

	incomplete := blockhelper.NewBlock(blockhelper.NewHeader(params.HeaderVersion, 0))
	blockhelper.AddTransaction(incomplete, testutils.SignedTransaction(t, 1))

	badMerkleRoot := solvedBlock(t, &params, params.GenesisMarker, testutils.SignedTransaction(t, 2))
	badMerkleRoot.Header.SetMerkleRoot(params.GenesisMarker)
	mining.SolveBlock(badMerkleRoot, rand.New(rand.NewSource(0)))

	nilTransaction := solvedBlock(t, &params, params.GenesisMarker, testutils.SignedTransaction(t, 3))
	nilTransaction.Transactions = append(nilTransaction.Transactions, nil)

	tests := []struct {
		name          string
		block         *externalapi.DomainBlock
		expectedError error
	}{
		{name: "invalid proof of work", block: invalidPoW, expectedError: ruleerrors.ErrInvalidProofOfWork},
		{name: "incomplete header", block: incomplete, expectedError: ruleerrors.ErrIncompleteHeader},
		{name: "nil block", block: nil, expectedError: ruleerrors.ErrIncompleteHeader},
		{name: "nil header", block: &externalapi.DomainBlock{}, expectedError: ruleerrors.ErrIncompleteHeader},
		{name: "nil transaction", block: nilTransaction, expectedError: ruleerrors.ErrNilTransaction},
		{name: "bad merkle root", block: badMerkleRoot, expectedError: ruleerrors.ErrBadMerkleRoot},
	}

	for _, test := range tests {
		status, err := l.AcceptBlock(test.block)
		if status != externalapi.StatusRejected {
			t.Errorf("%s: expected %s, got %s", test.name, externalapi.StatusRejected, status)
		}
		if !errors.Is(err, test.expectedError) {
			t.Errorf("%s: expected %v, got %v", test.name, test.expectedError, err)
		}
		if !errors.As(err, &ruleerrors.RuleError{}) {
			t.Errorf("%s: expected a RuleError, got %T", test.name, err)
		}
	}

	if l.Count() != 0 || l.Tip() != nil {
		t.Fatalf("rejected blocks must not be stored")
	}
	_, err := l.Lookup(consensushashing.BlockHash(invalidPoW))
	if !database.IsNotFoundError(err) {
		t.Fatalf("expected a not found error, got %v", err)
	}
}

func TestAcceptBlockExtendsTip(t *testing.T) {
	params := chaincfg.SimnetParams
	l, teardown := newTestLedger(t, &params)
	defer teardown()

	previousHash := params.GenesisMarker
	for i := 0; i < 3; i++ {
		block := solvedBlock(t, &params, previousHash, testutils.SignedTransaction(t, i))
		status, err := l.AcceptBlock(block)
		if err != nil || status != externalapi.StatusAccepted {
			t.Fatalf("block %d: unexpected status %s, err: %v", i, status, err)
		}
		previousHash = consensushashing.BlockHash(block)
		if !l.Tip().Equal(previousHash) {
			t.Fatalf("block %d did not become the tip", i)
		}
	}
	if l.Count() != 3 {
		t.Fatalf("expected 3 blocks, got %d", l.Count())
	}
}
