package mempool

import (
	"fmt"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/constants"
	"github.com/kaspanet/powledger/domain/consensus/utils/txscript"
)

// checkTransactionStandardInIsolation rejects transactions this node does not
// relay unless configured to accept non-standard transactions
func (mp *mempool) checkTransactionStandardInIsolation(transaction *externalapi.DomainTransaction) error {
	if mp.config.AcceptNonStandard {
		return nil
	}

	// The transaction must be a currently supported version.
	if transaction.Version != constants.TransactionVersion {
		str := fmt.Sprintf("transaction version %d is not %d", transaction.Version, constants.TransactionVersion)
		return transactionRuleError(RejectNonstandard, str)
	}

	for i, input := range transaction.Inputs {
		if len(input.UnlockingScript) != txscript.UnlockingScriptLength {
			str := fmt.Sprintf("transaction input %d has an unlocking script of %d elements", i,
				len(input.UnlockingScript))
			return transactionRuleError(RejectNonstandard, str)
		}
		if !txscript.IsPayToPubKeyHash(input.PreviousLockingScript) {
			str := fmt.Sprintf("transaction input %d spends a non-standard locking script %s", i,
				txscript.DisasmString(input.PreviousLockingScript))
			return transactionRuleError(RejectNonstandard, str)
		}
	}

	for i, output := range transaction.Outputs {
		if !txscript.IsPayToPubKeyHash(output.LockingScript) {
			str := fmt.Sprintf("transaction output %d has a non-standard locking script %s", i,
				txscript.DisasmString(output.LockingScript))
			return transactionRuleError(RejectNonstandard, str)
		}
	}

	return nil
}
