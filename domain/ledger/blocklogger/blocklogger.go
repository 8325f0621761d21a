// Copyright (c) 2015-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blocklogger

import (
	"sync"
	"time"

	"github.com/kaspanet/powledger/domain/consensus/model/externalapi"
	"github.com/kaspanet/powledger/util/mstime"
)

const logInterval = 10 * time.Second

// BlockLogger aggregates accepted blocks into periodic progress messages
type BlockLogger struct {
	mtx              sync.Mutex
	receivedBlocks   int64
	receivedTxs      int64
	lastBlockLogTime time.Time
}

// New returns a BlockLogger whose first interval starts now
func New() *BlockLogger {
	return &BlockLogger{lastBlockLogTime: time.Now()}
}

// LogBlock logs a new accepted block as an information message
// to show progress to the user. In order to prevent spam, it limits logging to
// one message every 10 seconds with duration and totals included.
func (bl *BlockLogger) LogBlock(block *externalapi.DomainBlock) {
	bl.mtx.Lock()
	defer bl.mtx.Unlock()

	bl.receivedBlocks++
	bl.receivedTxs += int64(len(block.Transactions))

	now := time.Now()
	duration := now.Sub(bl.lastBlockLogTime)
	if duration < logInterval {
		return
	}

	// Truncate the duration to 10s of milliseconds.
	tDuration := duration.Round(10 * time.Millisecond)

	blockStr := "blocks"
	if bl.receivedBlocks == 1 {
		blockStr = "block"
	}
	txStr := "transactions"
	if bl.receivedTxs == 1 {
		txStr = "transaction"
	}

	log.Infof("Accepted %d %s in the last %s (%d %s, %s)",
		bl.receivedBlocks, blockStr, tDuration, bl.receivedTxs,
		txStr, mstime.UnixMilliseconds(block.Header.TimeInMilliseconds()))

	bl.receivedBlocks = 0
	bl.receivedTxs = 0
	bl.lastBlockLogTime = now
}
