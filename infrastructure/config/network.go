package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/powledger/domain/chaincfg"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Simnet             bool   `long:"simnet" description:"Use the simulation test network"`
	OverrideParamsFile string `long:"override-params-file" description:"Overrides network params with the ones in the given JSON file"`

	ActiveNetParams *chaincfg.Params
}

type overrideParamsConfig struct {
	BlockCapacity                    *int    `json:"blockCapacity"`
	TargetTimePerBlockInMilliSeconds *int64  `json:"targetTimePerBlockInMilliSeconds"`
	DifficultyAdjustmentWindowSize   *int    `json:"difficultyAdjustmentWindowSize"`
	InitialDifficulty                *uint32 `json:"initialDifficulty"`
	MinDifficulty                    *uint32 `json:"minDifficulty"`
	MaxDifficulty                    *uint32 `json:"maxDifficulty"`
	MaxDifficultyStep                *uint32 `json:"maxDifficultyStep"`
	NonceSearchBatchSize             *uint64 `json:"nonceSearchBatchSize"`
	ValidateScripts                  *bool   `json:"validateScripts"`
	RelayNonStdTxs                   *bool   `json:"relayNonStdTxs"`
}

// ResolveNetwork parses the network command line argument and sets ActiveNetParams accordingly.
// The selected params are copied, so overrides never leak into the package-level defaults.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	params := chaincfg.MainnetParams
	if networkFlags.Simnet {
		params = chaincfg.SimnetParams
	}
	networkFlags.ActiveNetParams = &params

	err := networkFlags.overrideParams()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if parser != nil {
			parser.WriteHelp(os.Stderr)
		}
		return err
	}

	return nil
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *chaincfg.Params {
	return networkFlags.ActiveNetParams
}

func (networkFlags *NetworkFlags) overrideParams() error {
	if networkFlags.OverrideParamsFile == "" {
		return nil
	}

	overrideParamsFile, err := os.Open(networkFlags.OverrideParamsFile)
	if err != nil {
		return errors.WithStack(err)
	}
	defer overrideParamsFile.Close()

	decoder := json.NewDecoder(overrideParamsFile)
	decoder.DisallowUnknownFields()
	config := &overrideParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return errors.Wrapf(err, "failed to decode %s", networkFlags.OverrideParamsFile)
	}

	params := networkFlags.ActiveNetParams

	if config.BlockCapacity != nil {
		params.BlockCapacity = *config.BlockCapacity
	}

	if config.TargetTimePerBlockInMilliSeconds != nil {
		params.TargetTimePerBlock = time.Duration(*config.TargetTimePerBlockInMilliSeconds) * time.Millisecond
	}

	if config.DifficultyAdjustmentWindowSize != nil {
		params.DifficultyAdjustmentWindowSize = *config.DifficultyAdjustmentWindowSize
	}

	if config.InitialDifficulty != nil {
		params.InitialDifficulty = *config.InitialDifficulty
	}

	if config.MinDifficulty != nil {
		params.MinDifficulty = *config.MinDifficulty
	}

	if config.MaxDifficulty != nil {
		params.MaxDifficulty = *config.MaxDifficulty
	}

	if config.MaxDifficultyStep != nil {
		params.MaxDifficultyStep = *config.MaxDifficultyStep
	}

	if config.NonceSearchBatchSize != nil {
		params.NonceSearchBatchSize = *config.NonceSearchBatchSize
	}

	if config.ValidateScripts != nil {
		params.ValidateScripts = *config.ValidateScripts
	}

	if config.RelayNonStdTxs != nil {
		params.RelayNonStdTxs = *config.RelayNonStdTxs
	}

	return validateParams(params)
}

func validateParams(params *chaincfg.Params) error {
	if params.BlockCapacity < 1 {
		return errors.Errorf("blockCapacity must be positive, got %d", params.BlockCapacity)
	}
	if params.TargetTimePerBlock <= 0 {
		return errors.Errorf("targetTimePerBlockInMilliSeconds must be positive, got %s", params.TargetTimePerBlock)
	}
	if params.DifficultyAdjustmentWindowSize < 1 {
		return errors.Errorf("difficultyAdjustmentWindowSize must be positive, got %d",
			params.DifficultyAdjustmentWindowSize)
	}
	if params.MinDifficulty < 1 || params.MaxDifficulty > 255 || params.MinDifficulty > params.MaxDifficulty {
		return errors.Errorf("difficulty bounds [%d, %d] must be within [1, 255]",
			params.MinDifficulty, params.MaxDifficulty)
	}
	if params.InitialDifficulty < params.MinDifficulty || params.InitialDifficulty > params.MaxDifficulty {
		return errors.Errorf("initialDifficulty %d is outside of [%d, %d]",
			params.InitialDifficulty, params.MinDifficulty, params.MaxDifficulty)
	}
	if params.NonceSearchBatchSize < 1 {
		return errors.Errorf("nonceSearchBatchSize must be positive")
	}
	return nil
}
