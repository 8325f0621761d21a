package mempool

import (
	"github.com/kaspanet/powledger/domain/chaincfg"
)

const defaultMaximumTransactionCount = 1_000_000

// Config represents a mempool configuration
type Config struct {
	MaximumTransactionCount int
	AcceptNonStandard       bool
}

// DefaultConfig returns the default mempool configuration for the given network
func DefaultConfig(params *chaincfg.Params) *Config {
	return &Config{
		MaximumTransactionCount: defaultMaximumTransactionCount,
		AcceptNonStandard:       params.RelayNonStdTxs,
	}
}
