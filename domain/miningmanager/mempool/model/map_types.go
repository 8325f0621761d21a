package model

import (
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

// IDToTransaction maps transactionID to a MempoolTransaction
type IDToTransaction map[externalapi.DomainTransactionID]*MempoolTransaction
