package blocklogger

import (
	"testing"
	"time"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
)

func TestLogBlockResetsCounters(t *testing.T) {
	header := externalapi.NewDomainBlockHeader(1, 0)
	block := externalapi.NewDomainBlock(header)
	block.Transactions = make([]*externalapi.DomainTransaction, 2)

	bl := New()
	bl.LogBlock(block)
	if bl.receivedBlocks != 1 || bl.receivedTxs != 2 {
		t.Fatalf("unexpected counters: %d blocks, %d transactions", bl.receivedBlocks, bl.receivedTxs)
	}

	bl.lastBlockLogTime = time.Now().Add(-2 * logInterval)
	bl.LogBlock(block)
	if bl.receivedBlocks != 0 || bl.receivedTxs != 0 {
		t.Fatalf("counters should reset after a progress message")
	}
}
