package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kaspanet/powledger/domain"
	"github.com/kaspanet/powledger/domain/consensus/utils/consensushashing"
	"github.com/kaspanet/powledger/domain/miningmanager/miner"
	"github.com/kaspanet/powledger/infrastructure/db/database"
	"github.com/kaspanet/powledger/infrastructure/db/database/ldb"
	"github.com/kaspanet/powledger/infrastructure/metrics"
	"github.com/kaspanet/powledger/infrastructure/os/execenv"
	"github.com/kaspanet/powledger/infrastructure/os/signal"
	"github.com/kaspanet/powledger/util/panics"
	"github.com/kaspanet/powledger/util/profiling"
	"github.com/kaspanet/powledger/version"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var desiredLimits = &execenv.DesiredLimits{
	RequiredFileLimit: 256,
	WantedFileLimit:   1024,
}

func main() {
	defer panics.HandlePanic(log, "main", nil)
	execenv.Initialize(desiredLimits)

	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}

	// Show version at startup.
	log.Infof("Version %s", version.Version())

	ctx, cancel := signal.InterruptContext(context.Background())
	defer cancel()

	err = run(ctx, cfg)
	if err != nil {
		log.Criticalf("Error running powminer: %+v", err)
		panics.Exit(log, err.Error())
	}
}

func run(ctx context.Context, cfg *configFlags) error {
	db, err := openDatabase(cfg.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		err := db.Close()
		if err != nil {
			log.Errorf("Error closing the database: %+v", err)
		}
	}()

	node, err := domain.NewMiningNode(cfg.NetParams(), db)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	mineCtx, stopMining := context.WithCancel(groupCtx)
	defer stopMining()

	group.Go(func() error {
		// Finishing the mining stops the other services too
		defer stopMining()
		return mineLoop(mineCtx, node, cfg.NumberOfBlocks)
	})
	group.Go(func() error {
		return generateTransactions(mineCtx, node, cfg.TxRate)
	})
	if cfg.MetricsListen != "" {
		group.Go(func() error {
			return metrics.Serve(mineCtx, cfg.MetricsListen)
		})
	}
	if cfg.Profile != "" {
		group.Go(func() error {
			return profiling.Serve(mineCtx, cfg.Profile, log)
		})
	}

	return group.Wait()
}

func openDatabase(dataDir string) (database.Database, error) {
	if dataDir == "" {
		log.Infof("Keeping the chain in memory")
		return ldb.NewInMemoryLevelDB()
	}
	log.Infof("Loading the chain from %s", dataDir)
	return ldb.NewLevelDB(dataDir, defaultDBCacheSizeMiB)
}

// mineLoop mines numberOfBlocks blocks, or until ctx is done if
// numberOfBlocks is 0
func mineLoop(ctx context.Context, node domain.MiningNode, numberOfBlocks uint64) error {
	miningManager := node.MiningManager()
	for mined := uint64(0); numberOfBlocks == 0 || mined < numberOfBlocks; {
		block, err := miningManager.MineRound(ctx)
		if errors.Is(err, miner.ErrRoundPreempted) {
			continue
		}
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}
		mined++
		log.Infof("Mined block %s with %d transactions (%d/%d), next difficulty %d",
			consensushashing.BlockHash(block), len(block.Transactions), mined, numberOfBlocks,
			miningManager.Difficulty())
	}
	log.Infof("Mined %d blocks, chain length is %d", numberOfBlocks, node.Ledger().Count())
	return nil
}
