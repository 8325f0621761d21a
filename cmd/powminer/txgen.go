package main

import (
	"context"
	"fmt"
	"time"

	"github.com/kaspanet/go-secp256k1"
	"github.com/kaspanet/powledger/domain"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/domain/consensus/utils/transactionhelper"
	"github.com/kaspanet/powledger/domain/consensus/utils/txscript"
	"github.com/pkg/errors"
)

// generateTransactions submits a signed transaction to node txRate times a
// second until ctx is done. Each transaction is signed by a fresh key and
// pays the key of the previous one.
func generateTransactions(ctx context.Context, node domain.MiningNode, txRate float64) error {
	if txRate == 0 {
		return nil
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / txRate))
	defer ticker.Stop()

	recipient := make([]byte, txscript.PubKeyHashSize)
	for i := uint64(0); ; i++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		key, err := secp256k1.GenerateSchnorrKeyPair()
		if err != nil {
			return errors.WithStack(err)
		}
		tx, err := transactionhelper.NewSignedTransaction(key, recipient, i, []byte(fmt.Sprintf("powminer %d", i)))
		if err != nil {
			return err
		}

		admitted, err := node.SubmitTransaction(tx)
		if err != nil {
			log.Warnf("Transaction %s was rejected: %s", consensushashing.TransactionID(tx), err)
			continue
		}
		if admitted {
			log.Debugf("Submitted transaction %s paying %d to %s", consensushashing.TransactionID(tx), i,
				txscript.EncodePubKeyHashAddress(recipient))
		}

		publicKey, err := txscript.SerializedPublicKey(key)
		if err != nil {
			return err
		}
		recipient = txscript.Hash160(publicKey)
	}
}
