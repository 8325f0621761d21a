package blockvalidator

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/ruleerrors"
	"github.com/kaspanet/powledger/domain/consensus/utils/blockhelper"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/domain/consensus/utils/txscript"
	"github.com/kaspanet/powledger/infrastructure/logger"
	"github.com/pkg/errors"
)

// ValidateBodyInIsolation validates block bodies in isolation from the current
// consensus state
func (v *blockValidator) ValidateBodyInIsolation(block *externalapi.DomainBlock) error {
	onEnd := logger.LogAndMeasureExecutionTime(log, "ValidateBodyInIsolation")
	defer onEnd()

	err := v.checkBlockContainsAtLeastOneTransaction(block)
	if err != nil {
		return err
	}

	err = v.checkBlockHasNoNilTransactions(block)
	if err != nil {
		return err
	}

	err = v.checkBlockCapacity(block)
	if err != nil {
		return err
	}

	err = v.checkBlockDuplicateTransactions(block)
	if err != nil {
		return err
	}

	err = blockhelper.ValidateMerkleRoot(block)
	if err != nil {
		return err
	}

	if v.validateScripts {
		err = v.checkTransactionScripts(block)
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *blockValidator) checkBlockContainsAtLeastOneTransaction(block *externalapi.DomainBlock) error {
	if len(block.Transactions) == 0 {
		return errors.Wrapf(ruleerrors.ErrNoTransactions, "block does not contain "+
			"any transactions")
	}
	return nil
}

func (v *blockValidator) checkBlockHasNoNilTransactions(block *externalapi.DomainBlock) error {
	for i, tx := range block.Transactions {
		if tx == nil {
			return errors.Wrapf(ruleerrors.ErrNilTransaction, "transaction %d of the block is nil", i)
		}
	}
	return nil
}

func (v *blockValidator) checkBlockCapacity(block *externalapi.DomainBlock) error {
	if len(block.Transactions) > v.blockCapacity {
		return errors.Wrapf(ruleerrors.ErrTooManyTransactions, "block contains %d transactions "+
			"while the capacity is %d", len(block.Transactions), v.blockCapacity)
	}
	return nil
}

func (v *blockValidator) checkBlockDuplicateTransactions(block *externalapi.DomainBlock) error {
	existingTxIDs := make(map[externalapi.DomainTransactionID]struct{})
	for _, tx := range block.Transactions {
		id := consensushashing.TransactionID(tx)
		if _, exists := existingTxIDs[*id]; exists {
			return errors.Wrapf(ruleerrors.ErrDuplicateTx, "block contains duplicate "+
				"transaction %s", id)
		}
		existingTxIDs[*id] = struct{}{}
	}
	return nil
}

func (v *blockValidator) checkTransactionScripts(block *externalapi.DomainBlock) error {
	var invalidTransactions []ruleerrors.InvalidTransaction
	for _, tx := range block.Transactions {
		err := txscript.ValidateTransactionScripts(tx)
		if err != nil {
			invalidTransactions = append(invalidTransactions, ruleerrors.InvalidTransaction{Transaction: tx, Error: err})
		}
	}
	if len(invalidTransactions) > 0 {
		return ruleerrors.NewErrInvalidTransactionsInNewBlock(invalidTransactions)
	}
	return nil
}
