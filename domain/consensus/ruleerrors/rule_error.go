package ruleerrors

import (
	"fmt"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/pkg/errors"
)

// These constants are used to identify a specific RuleError.
var (
	// ErrDuplicateBlock indicates a block with the same hash already
	// exists.
	ErrDuplicateBlock = newRuleError("ErrDuplicateBlock")

	// ErrIncompleteHeader indicates a header with some of its consensus
	// fields unset.
	ErrIncompleteHeader = newRuleError("ErrIncompleteHeader")

	// ErrBlockVersion indicates the block version is not the one this node
	// validates.
	ErrBlockVersion = newRuleError("ErrBlockVersion")

	// ErrDifficultyOutOfRange indicates the claimed difficulty is outside
	// of the range allowed by the network parameters.
	ErrDifficultyOutOfRange = newRuleError("ErrDifficultyOutOfRange")

	// ErrInvalidProofOfWork indicates that the block hash is above the
	// target implied by the claimed difficulty.
	ErrInvalidProofOfWork = newRuleError("ErrInvalidProofOfWork")

	// ErrNoTransactions indicates the block does not have any
	// transactions.
	ErrNoTransactions = newRuleError("ErrNoTransactions")

	// ErrTooManyTransactions indicates the number of transactions in a
	// block exceeds the block capacity.
	ErrTooManyTransactions = newRuleError("ErrTooManyTransactions")

	// ErrNilTransaction indicates a block whose transaction sequence
	// has a missing entry.
	ErrNilTransaction = newRuleError("ErrNilTransaction")

	// ErrDuplicateTx indicates a block contains an identical transaction
	// more than once.
	ErrDuplicateTx = newRuleError("ErrDuplicateTx")

	// ErrBadMerkleRoot indicates the calculated merkle root does not match
	// the expected value.
	ErrBadMerkleRoot = newRuleError("ErrBadMerkleRoot")
)

// RuleError identifies a rule violation. It is used to indicate that
// processing of a block or transaction failed due to one of the many validation
// rules. The caller can use type assertions to determine if a failure was
// specifically due to a rule violation.
type RuleError struct {
	message string
	inner   error
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface
func (e RuleError) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface
func (e RuleError) Cause() error {
	return e.inner
}

func newRuleError(message string) RuleError {
	return RuleError{message: message, inner: nil}
}

// IsConsensusError returns whether err is a proof-of-work violation: a block
// whose hash does not meet the target it claims.
func IsConsensusError(err error) bool {
	return errors.Is(err, ErrInvalidProofOfWork)
}

// InvalidTransaction is a struct containing an invalid transaction, and the error explaining why it's invalid.
type InvalidTransaction struct {
	Transaction *externalapi.DomainTransaction
	Error       error
}

func (invalid InvalidTransaction) String() string {
	return fmt.Sprintf("(%v: %s)", consensushashing.TransactionID(invalid.Transaction), invalid.Error)
}

// ErrInvalidTransactionsInNewBlock indicates that some transactions in a new block are invalid
type ErrInvalidTransactionsInNewBlock struct {
	InvalidTransactions []InvalidTransaction
}

func (e ErrInvalidTransactionsInNewBlock) Error() string {
	return fmt.Sprint(e.InvalidTransactions)
}

// NewErrInvalidTransactionsInNewBlock Creates a new ErrInvalidTransactionsInNewBlock error wrapped in a RuleError
func NewErrInvalidTransactionsInNewBlock(invalidTransactions []InvalidTransaction) error {
	return errors.WithStack(RuleError{
		message: "ErrInvalidTransactionsInNewBlock",
		inner:   ErrInvalidTransactionsInNewBlock{invalidTransactions},
	})
}
