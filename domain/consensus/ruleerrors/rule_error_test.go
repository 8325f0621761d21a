package ruleerrors

import (
	"testing"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

func TestNewErrInvalidTransactionsInNewBlock(t *testing.T) {
	tx := &externalapi.DomainTransaction{Version: 1, Payload: []byte{1, 3, 3, 7}}
	outer := NewErrInvalidTransactionsInNewBlock([]InvalidTransaction{{tx, ErrDuplicateTx}})
	inner := &ErrInvalidTransactionsInNewBlock{}
	if !errors.As(outer, inner) {
		t.Fatal("TestNewErrInvalidTransactionsInNewBlock: Outer should contain ErrInvalidTransactionsInNewBlock in it")
	}

	if len(inner.InvalidTransactions) != 1 {
		t.Fatalf("TestNewErrInvalidTransactionsInNewBlock: Expected len(inner.InvalidTransactions) 1, found: %d",
			len(inner.InvalidTransactions))
	}
	if inner.InvalidTransactions[0].Error != ErrDuplicateTx {
		t.Fatalf("TestNewErrInvalidTransactionsInNewBlock: Expected ErrDuplicateTx. found: %v",
			inner.InvalidTransactions[0].Error)
	}

	rule := &RuleError{}
	if !errors.As(outer, rule) {
		t.Fatal("TestNewErrInvalidTransactionsInNewBlock: Outer should contain RuleError in it")
	}
	if rule.message != "ErrInvalidTransactionsInNewBlock" {
		t.Fatalf("TestNewErrInvalidTransactionsInNewBlock: Expected message = 'ErrInvalidTransactionsInNewBlock', found: '%s'",
			rule.message)
	}
}

func TestIsConsensusError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"bare", ErrInvalidProofOfWork, true},
		{"wrapped", errors.Wrapf(ErrInvalidProofOfWork, "block %s", "abc"), true},
		{"other rule error", ErrBadMerkleRoot, false},
		{"wrapped other rule error", errors.Wrap(ErrDuplicateBlock, "again"), false},
		{"nil", nil, false},
	}

	for _, test := range tests {
		if got := IsConsensusError(test.err); got != test.expected {
			t.Errorf("%s: expected IsConsensusError to be %t, got %t", test.name, test.expected, got)
		}
	}
}
