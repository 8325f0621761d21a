package blockvalidator

import (
	"math/rand"
	"testing"

	"github.com/kaspanet/powledger/domain/chaincfg"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/ruleerrors"
	"github.com/kaspanet/powledger/domain/consensus/utils/blockhelper"
	"github.com/kaspanet/powledger/domain/consensus/utils/mining"
	"github.com/kaspanet/powledger/domain/consensus/utils/pow"
	"github.com/kaspanet/powledger/domain/consensus/utils/testutils"
	"github.com/pkg/errors"
)

func solvedBlock(t *testing.T, params *chaincfg.Params, transactions ...*externalapi.DomainTransaction) *externalapi.DomainBlock {
	block := blockhelper.NewBlock(blockhelper.NewHeader(params.HeaderVersion, 0))
	block.Header.SetPreviousHash(params.GenesisMarker)
	for _, tx := range transactions {
		blockhelper.AddTransaction(block, tx)
	}
	block.Header.SetDifficulty(params.MinDifficulty)
	mining.SolveBlock(block, rand.New(rand.NewSource(0)))
	return block
}

func TestValidateHeaderInIsolation(t *testing.T) {
	params := chaincfg.MainnetParams
	validator := New(&params)

	incomplete := blockhelper.NewHeader(params.HeaderVersion, 0)
	incomplete.SetPreviousHash(params.GenesisMarker)
	err := validator.ValidateHeaderInIsolation(incomplete)
	if !errors.Is(err, ruleerrors.ErrIncompleteHeader) {
		t.Fatalf("expected ErrIncompleteHeader, got %v", err)
	}
	err = validator.ValidateHeaderInIsolation(nil)
	if !errors.Is(err, ruleerrors.ErrIncompleteHeader) {
		t.Fatalf("expected ErrIncompleteHeader for a missing header, got %v", err)
	}

	block := solvedBlock(t, &params, testutils.SignedTransaction(t, 0))
	err = validator.ValidateHeaderInIsolation(block.Header)
	if err != nil {
		t.Fatalf("ValidateHeaderInIsolation: %+v", err)
	}
	err = validator.ValidateProofOfWork(block.Header)
	if err != nil {
		t.Fatalf("ValidateProofOfWork: %+v", err)
	}

	header := block.Header
	wrongVersion := externalapi.NewCompleteDomainBlockHeader(params.HeaderVersion+1, header.PreviousHash(),
		header.MerkleRoot(), header.TimeInMilliseconds(), header.Difficulty(), header.Nonce())
	err = validator.ValidateHeaderInIsolation(wrongVersion)
	if !errors.Is(err, ruleerrors.ErrBlockVersion) {
		t.Fatalf("expected ErrBlockVersion, got %v", err)
	}

	for _, difficulty := range []uint32{0, params.MaxDifficulty + 1} {
		outOfRange := block.Header.Clone()
		outOfRange.SetDifficulty(difficulty)
		err = validator.ValidateHeaderInIsolation(outOfRange)
		if !errors.Is(err, ruleerrors.ErrDifficultyOutOfRange) {
			t.Fatalf("difficulty %d: expected ErrDifficultyOutOfRange, got %v", difficulty, err)
		}
	}
}

func TestValidateProofOfWork(t *testing.T) {
	params := chaincfg.MainnetParams
	validator := New(&params)
	block := solvedBlock(t, &params, testutils.SignedTransaction(t, 0))

	// Look for a nonce that does not satisfy the highest difficulty
	header := block.Header.Clone()
	header.SetDifficulty(params.MaxDifficulty)
	for nonce := uint64(0); pow.CheckProofOfWork(header); nonce++ {
		header.SetNonce(nonce)
	}
	err := validator.ValidateProofOfWork(header)
	if !errors.Is(err, ruleerrors.ErrInvalidProofOfWork) {
		t.Fatalf("expected ErrInvalidProofOfWork, got %v", err)
	}
	if !ruleerrors.IsConsensusError(err) {
		t.Fatalf("a proof-of-work failure is a consensus error")
	}
}

func TestValidateBodyInIsolation(t *testing.T) {
	params := chaincfg.MainnetParams
	validator := New(&params)

	tx := testutils.SignedTransaction(t, 0)
	unsigned := testutils.SignedTransaction(t, 1)
	unsigned.Inputs[0].UnlockingScript = externalapi.Script{{1}, {2}}
	unsigned.ID = nil

	tests := []struct {
		name          string
		block         func() *externalapi.DomainBlock
		expectedError error
	}{
		{
			name: "valid",
			block: func() *externalapi.DomainBlock {
				return solvedBlock(t, &params, tx, testutils.SignedTransaction(t, 2))
			},
		},
		{
			name: "no transactions",
			block: func() *externalapi.DomainBlock {
				block := blockhelper.NewBlock(blockhelper.NewHeader(params.HeaderVersion, 0))
				block.Header.SetMerkleRoot(externalapi.ZeroHash)
				return block
			},
			expectedError: ruleerrors.ErrNoTransactions,
		},
		{
			name: "nil transaction",
			block: func() *externalapi.DomainBlock {
				block := solvedBlock(t, &params, tx)
				block.Transactions = append([]*externalapi.DomainTransaction{nil}, block.Transactions...)
				return block
			},
			expectedError: ruleerrors.ErrNilTransaction,
		},
		{
			name: "over capacity",
			block: func() *externalapi.DomainBlock {
				transactions := make([]*externalapi.DomainTransaction, params.BlockCapacity+1)
				for i := range transactions {
					transactions[i] = testutils.SignedTransaction(t, i)
				}
				return solvedBlock(t, &params, transactions...)
			},
			expectedError: ruleerrors.ErrTooManyTransactions,
		},
		{
			name: "duplicate transaction",
			block: func() *externalapi.DomainBlock {
				return solvedBlock(t, &params, tx, tx)
			},
			expectedError: ruleerrors.ErrDuplicateTx,
		},
		{
			name: "bad merkle root",
			block: func() *externalapi.DomainBlock {
				block := solvedBlock(t, &params, tx)
				block.Header.SetMerkleRoot(params.GenesisMarker)
				return block
			},
			expectedError: ruleerrors.ErrBadMerkleRoot,
		},
		{
			name: "unauthorized spend",
			block: func() *externalapi.DomainBlock {
				return solvedBlock(t, &params, tx, unsigned)
			},
			expectedError: ruleerrors.ErrInvalidTransactionsInNewBlock{},
		},
	}

	for _, test := range tests {
		err := validator.ValidateBodyInIsolation(test.block())
		switch expected := test.expectedError.(type) {
		case nil:
			if err != nil {
				t.Errorf("%s: unexpected error: %+v", test.name, err)
			}
		case ruleerrors.ErrInvalidTransactionsInNewBlock:
			if !errors.As(err, &expected) || len(expected.InvalidTransactions) != 1 {
				t.Errorf("%s: expected a single invalid transaction, got %v", test.name, err)
			}
		default:
			if !errors.Is(err, test.expectedError) {
				t.Errorf("%s: expected %v, got %v", test.name, test.expectedError, err)
			}
		}
	}

	// Without script validation the same block is acceptable
	simnetValidator := New(&chaincfg.SimnetParams)
	err := simnetValidator.ValidateBodyInIsolation(solvedBlock(t, &chaincfg.SimnetParams, tx, unsigned))
	if err != nil {
		t.Fatalf("unexpected error with script validation disabled: %+v", err)
	}
}
