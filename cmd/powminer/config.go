package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/powledger/infrastructure/config"
	"github.com/kaspanet/powledger/infrastructure/logger"
	"github.com/kaspanet/powledger/version"
	"github.com/pkg/errors"
)

const (
	defaultLogFilename    = "powminer.log"
	defaultErrLogFilename = "powminer_err.log"
	defaultLogLevel       = "info"
	defaultTxRate         = 1.0
	defaultDBCacheSizeMiB = 16
)

type configFlags struct {
	ShowVersion    bool    `short:"V" long:"version" description:"Display version information and exit"`
	NumberOfBlocks uint64  `short:"n" long:"numblocks" description:"Number of blocks to mine. If omitted, will mine until the process is interrupted."`
	TxRate         float64 `long:"txrate" description:"Number of synthetic transactions generated per second. 0 disables the generator."`
	LogDir         string  `long:"logdir" description:"Directory to log output. If omitted, logs go to stdout only."`
	LogLevel       string  `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	DataDir        string  `short:"b" long:"datadir" description:"Directory to store the chain in. If omitted, the chain is kept in memory."`
	MetricsListen  string  `long:"metrics-listen" description:"Serve Prometheus metrics on the given address, e.g. localhost:9090"`
	Profile        string  `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65536"`
	config.NetworkFlags
}

func parseConfig() (*configFlags, error) {
	cfg := &configFlags{
		TxRate:   defaultTxRate,
		LogLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.Parse()

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	if err != nil {
		return nil, err
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	if cfg.TxRate < 0 {
		return nil, errors.Errorf("--txrate must not be negative, got %f", cfg.TxRate)
	}

	if cfg.Profile != "" {
		profilePort, err := strconv.Atoi(cfg.Profile)
		if err != nil || profilePort < 1024 || profilePort > 65535 {
			return nil, errors.New("The profile port must be between 1024 and 65535")
		}
	}

	if cfg.LogDir == "" {
		initLog("", "")
	} else {
		initLog(filepath.Join(cfg.LogDir, defaultLogFilename), filepath.Join(cfg.LogDir, defaultErrLogFilename))
	}

	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
