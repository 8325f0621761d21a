package blocktemplatebuilder

import (
	"github.com/kaspanet/powledger/domain/chaincfg"
	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/domain/consensus/utils/blockhelper"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/domain/consensus/utils/txscript"
	"github.com/kaspanet/powledger/domain/miningmanager/model"
	"github.com/kaspanet/powledger/infrastructure/logger"
	"github.com/kaspanet/powledger/util/mstime"
)

// blockTemplateBuilder creates block templates for a miner to consume
type blockTemplateBuilder struct {
	mempool model.Mempool

	headerVersion   uint32
	blockCapacity   int
	validateScripts bool
}

// New creates a new blockTemplateBuilder
func New(params *chaincfg.Params, mempool model.Mempool) model.BlockTemplateBuilder {
	return &blockTemplateBuilder{
		mempool:         mempool,
		headerVersion:   params.HeaderVersion,
		blockCapacity:   params.BlockCapacity,
		validateScripts: params.ValidateScripts,
	}
}

// BuildBlockTemplate creates a block template on top of previousHash,
// filled with mempool transactions in the order they were admitted.
// The difficulty and nonce of the template are left for the miner to set.
// If the mempool is empty the template carries no transactions and has no
// merkle root.
func (btb *blockTemplateBuilder) BuildBlockTemplate(previousHash *externalapi.DomainHash) *externalapi.DomainBlock {
	onEnd := logger.LogAndMeasureExecutionTime(log, "BuildBlockTemplate")
	defer onEnd()

	header := blockhelper.NewHeader(btb.headerVersion, mstime.Now().UnixMilliseconds())
	header.SetPreviousHash(previousHash)
	template := blockhelper.NewBlock(header)

	btb.FillBlockTemplate(template)
	log.Debugf("Built a block template on top of %s with %d transactions",
		previousHash, template.TransactionCount())
	return template
}

// FillBlockTemplate adds mempool transactions that the template doesn't
// contain yet until it reaches the block capacity. First come, first served.
// With script validation enabled, transactions that fail to authorize their
// spends are skipped and left in the mempool.
func (btb *blockTemplateBuilder) FillBlockTemplate(template *externalapi.DomainBlock) int {
	added := 0
	if template.TransactionCount() >= btb.blockCapacity {
		return added
	}

	for _, tx := range btb.mempool.Transactions() {
		if template.TransactionCount() >= btb.blockCapacity {
			break
		}
		if blockhelper.Contains(template, tx) {
			continue
		}
		if btb.validateScripts {
			err := txscript.ValidateTransactionScripts(tx)
			if err != nil {
				log.Debugf("Skipping transaction %s: %s", consensushashing.TransactionID(tx), err)
				continue
			}
		}
		blockhelper.AddTransaction(template, tx)
		added++
	}
	return added
}
