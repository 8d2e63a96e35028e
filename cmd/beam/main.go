// Command beam builds and seals beacon genesis states.
//
// With -validator-count it generates a deterministic devnet genesis;
// with -db it also persists the sealed state. The engine flags let an
// operator smoke-test payload validation against a running execution
// client.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/golang/snappy"

	"github.com/geanlabs/beam/api"
	"github.com/geanlabs/beam/clock"
	"github.com/geanlabs/beam/config"
	"github.com/geanlabs/beam/consensus"
	"github.com/geanlabs/beam/engine"
	"github.com/geanlabs/beam/interop"
	"github.com/geanlabs/beam/storage/pebbledb"
	"github.com/geanlabs/beam/types"
)

func main() {
	var (
		preset         string
		configPath     string
		genesisTime    uint64
		validatorCount uint64
		depositsPath   string
		outPath        string
		compress       bool
		dbPath         string
		engineEndpoint string
		jwtPath        string
		logLevel       string
	)

	flag.StringVar(&preset, "preset", "mainnet", "Config preset (mainnet, minimal)")
	flag.StringVar(&configPath, "config", "", "YAML config file (overrides preset values)")
	flag.Uint64Var(&genesisTime, "genesis-time", uint64(time.Now().Unix()), "Genesis time (unix timestamp)")
	flag.Uint64Var(&validatorCount, "validator-count", 64, "Number of deterministic validators")
	flag.StringVar(&depositsPath, "deposits", "", "JSON file of signed deposit data (overrides -validator-count)")
	flag.StringVar(&outPath, "out", "", "Write the genesis state SSZ to this file")
	flag.BoolVar(&compress, "snappy", false, "Snappy-compress the -out file")
	flag.StringVar(&dbPath, "db", "", "Persist the genesis state to a pebble database at this path")
	flag.StringVar(&engineEndpoint, "engine", "", "Execution engine API endpoint to dial (optional)")
	flag.StringVar(&jwtPath, "jwt-secret", "", "Hex-encoded JWT secret file for the engine API")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// Setup logger
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(preset, configPath)
	if err != nil {
		fatal(logger, "load config", err)
	}

	var state *types.BeaconState
	if depositsPath != "" {
		data, err := readDeposits(depositsPath)
		if err != nil {
			fatal(logger, "read deposits", err)
		}
		state, err = interop.GenesisStateFromDeposits(genesisTime, data, cfg)
		if err != nil {
			fatal(logger, "generate genesis state", err)
		}
	} else {
		state, err = interop.GenerateGenesisState(genesisTime, validatorCount, cfg)
		if err != nil {
			fatal(logger, "generate genesis state", err)
		}
	}
	root, err := state.HashTreeRoot()
	if err != nil {
		fatal(logger, "genesis state root", err)
	}

	sealed := consensus.IsValidGenesisState(state, cfg)
	slotClock := clock.New(state.GenesisTime, cfg.SecondsPerSlot, cfg.SlotsPerEpoch)
	logger.Info("genesis state built",
		"root", root.String(),
		"validators", len(state.Validators),
		"genesis_time", state.GenesisTime,
		"sealed", sealed,
		"before_genesis", slotClock.IsBeforeGenesis(),
	)
	if !sealed {
		logger.Warn("genesis conditions not met",
			"min_validators", cfg.MinGenesisActiveValidatorCount,
			"min_genesis_time", cfg.MinGenesisTime)
	}

	if outPath != "" {
		if err := writeState(outPath, state, compress); err != nil {
			fatal(logger, "write genesis state", err)
		}
		logger.Info("genesis state written", "path", outPath, "snappy", compress)
	}

	if dbPath != "" {
		if err := persistState(dbPath, cfg, state); err != nil {
			fatal(logger, "persist genesis state", err)
		}
		logger.Info("genesis state persisted", "db", dbPath)
	}

	if engineEndpoint != "" {
		if err := pingEngine(engineEndpoint, jwtPath, logger); err != nil {
			fatal(logger, "engine check", err)
		}
	}
}

func loadConfig(preset, path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	switch preset {
	case "mainnet":
		return config.Mainnet(), nil
	case "minimal":
		return config.Minimal(), nil
	default:
		return nil, fmt.Errorf("unknown preset %q", preset)
	}
}

// depositJSON matches the beacon API encoding of deposit data: fixed
// byte fields as 0x-hex, the amount as a quoted decimal.
type depositJSON struct {
	Pubkey                types.BLSPubkey    `json:"pubkey"`
	WithdrawalCredentials types.Root         `json:"withdrawal_credentials"`
	Amount                api.Uint64String   `json:"amount"`
	Signature             types.BLSSignature `json:"signature"`
}

func readDeposits(path string) ([]types.DepositData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []depositJSON
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse deposits: %w", err)
	}
	data := make([]types.DepositData, len(entries))
	for i, e := range entries {
		data[i] = types.DepositData{
			Pubkey:                e.Pubkey,
			WithdrawalCredentials: e.WithdrawalCredentials,
			Amount:                types.Gwei(e.Amount),
			Signature:             e.Signature,
		}
	}
	return data, nil
}

func writeState(path string, state *types.BeaconState, compress bool) error {
	buf, err := state.MarshalSSZ()
	if err != nil {
		return err
	}
	if compress {
		buf = snappy.Encode(nil, buf)
	}
	return os.WriteFile(path, buf, 0o644)
}

func persistState(path string, cfg *config.Config, state *types.BeaconState) error {
	db, err := pebbledb.Open(path, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.PutGenesisState(state)
}

func pingEngine(endpoint, jwtPath string, logger *slog.Logger) error {
	var secret []byte
	if jwtPath != "" {
		raw, err := os.ReadFile(jwtPath)
		if err != nil {
			return fmt.Errorf("read jwt secret: %w", err)
		}
		secret, err = hex.DecodeString(strings.TrimSpace(strings.TrimPrefix(string(raw), "0x")))
		if err != nil {
			return fmt.Errorf("decode jwt secret: %w", err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := engine.NewClient(ctx, endpoint, secret, logger)
	if err != nil {
		return err
	}
	defer client.Close()
	logger.Info("engine endpoint reachable", "endpoint", endpoint)
	return nil
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}
