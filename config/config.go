// Package config holds the immutable chain parameter set. A Config is
// built once per process from a preset or a YAML file, validated against
// the container capacity bounds, and shared read-only by every consensus
// operation.
package config

import (
	"fmt"
	"math/bits"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/geanlabs/beam/types"
)

// Config is the chain configuration. Values mirror the consensus spec
// parameter names; the yaml keys follow the upstream config file format.
type Config struct {
	// Genesis.
	MinGenesisActiveValidatorCount uint64        `yaml:"MIN_GENESIS_ACTIVE_VALIDATOR_COUNT"`
	MinGenesisTime                 uint64        `yaml:"MIN_GENESIS_TIME"`
	GenesisForkVersion             types.Version `yaml:"GENESIS_FORK_VERSION"`
	GenesisDelay                   uint64        `yaml:"GENESIS_DELAY"`

	// Post-genesis fork active from slot 0.
	AltairForkVersion types.Version `yaml:"ALTAIR_FORK_VERSION"`

	// Time.
	SecondsPerSlot   uint64 `yaml:"SECONDS_PER_SLOT"`
	SlotsPerEpoch    uint64 `yaml:"SLOTS_PER_EPOCH"`
	MinSeedLookahead uint64 `yaml:"MIN_SEED_LOOKAHEAD"`

	// Balances.
	EffectiveBalanceIncrement types.Gwei `yaml:"EFFECTIVE_BALANCE_INCREMENT"`
	MaxEffectiveBalance       types.Gwei `yaml:"MAX_EFFECTIVE_BALANCE"`
	MinDepositAmount          types.Gwei `yaml:"MIN_DEPOSIT_AMOUNT"`

	// Capacity bounds.
	ValidatorRegistryLimit    uint64 `yaml:"VALIDATOR_REGISTRY_LIMIT"`
	EpochsPerHistoricalVector uint64 `yaml:"EPOCHS_PER_HISTORICAL_VECTOR"`
	HistoricalRootsLimit      uint64 `yaml:"HISTORICAL_ROOTS_LIMIT"`
	SyncCommitteeSize         uint64 `yaml:"SYNC_COMMITTEE_SIZE"`

	// Block body operation limits; only the empty-body root depends on
	// these at genesis.
	MaxProposerSlashings uint64 `yaml:"MAX_PROPOSER_SLASHINGS"`
	MaxAttesterSlashings uint64 `yaml:"MAX_ATTESTER_SLASHINGS"`
	MaxAttestations      uint64 `yaml:"MAX_ATTESTATIONS"`
	MaxDeposits          uint64 `yaml:"MAX_DEPOSITS"`
	MaxVoluntaryExits    uint64 `yaml:"MAX_VOLUNTARY_EXITS"`

	// Shuffling.
	ShuffleRoundCount uint64 `yaml:"SHUFFLE_ROUND_COUNT"`

	// Signature domains.
	DomainDeposit       types.DomainType `yaml:"DOMAIN_DEPOSIT"`
	DomainSyncCommittee types.DomainType `yaml:"DOMAIN_SYNC_COMMITTEE"`

	// Withdrawal credential prefix for BLS credentials.
	BLSWithdrawalPrefixByte byte `yaml:"BLS_WITHDRAWAL_PREFIX"`
}

// Mainnet returns the mainnet parameter set.
func Mainnet() *Config {
	return &Config{
		MinGenesisActiveValidatorCount: 16384,
		MinGenesisTime:                 1606824000,
		GenesisForkVersion:             types.Version{0x00, 0x00, 0x00, 0x00},
		GenesisDelay:                   604800,
		AltairForkVersion:              types.Version{0x01, 0x00, 0x00, 0x00},
		SecondsPerSlot:                 12,
		SlotsPerEpoch:                  32,
		MinSeedLookahead:               1,
		EffectiveBalanceIncrement:      1_000_000_000,
		MaxEffectiveBalance:            32_000_000_000,
		MinDepositAmount:               1_000_000_000,
		ValidatorRegistryLimit:         1 << 40,
		EpochsPerHistoricalVector:      65536,
		HistoricalRootsLimit:           1 << 24,
		SyncCommitteeSize:              512,
		MaxProposerSlashings:           16,
		MaxAttesterSlashings:           2,
		MaxAttestations:                128,
		MaxDeposits:                    16,
		MaxVoluntaryExits:              16,
		ShuffleRoundCount:              90,
		DomainDeposit:                  types.DomainType{0x03, 0x00, 0x00, 0x00},
		DomainSyncCommittee:            types.DomainType{0x07, 0x00, 0x00, 0x00},
		BLSWithdrawalPrefixByte:        0x00,
	}
}

// Minimal returns the minimal (interop/testing) parameter set.
func Minimal() *Config {
	cfg := Mainnet()
	cfg.MinGenesisActiveValidatorCount = 64
	cfg.MinGenesisTime = 1578009600
	cfg.GenesisForkVersion = types.Version{0x00, 0x00, 0x00, 0x01}
	cfg.AltairForkVersion = types.Version{0x01, 0x00, 0x00, 0x01}
	cfg.GenesisDelay = 300
	cfg.SecondsPerSlot = 6
	cfg.SlotsPerEpoch = 8
	cfg.EpochsPerHistoricalVector = 64
	cfg.SyncCommitteeSize = 32
	cfg.ShuffleRoundCount = 10
	return cfg
}

// LoadFile reads a YAML config file over a preset base: mainnet values
// apply for keys the file does not set.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Mainnet()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the parameter set once at load time. Capacity bounds
// baked into the container types must agree with the loaded values, and
// sizes that feed fixed-shape vectors must be sane.
func (c *Config) Validate() error {
	if c.EffectiveBalanceIncrement == 0 {
		return fmt.Errorf("EFFECTIVE_BALANCE_INCREMENT must be nonzero")
	}
	if c.MaxEffectiveBalance == 0 || c.MaxEffectiveBalance%c.EffectiveBalanceIncrement != 0 {
		return fmt.Errorf("MAX_EFFECTIVE_BALANCE must be a nonzero multiple of the increment")
	}
	if c.ValidatorRegistryLimit == 0 || c.ValidatorRegistryLimit > types.ValidatorRegistryLimit {
		return fmt.Errorf("VALIDATOR_REGISTRY_LIMIT %d outside container bound %d",
			c.ValidatorRegistryLimit, types.ValidatorRegistryLimit)
	}
	if c.EpochsPerHistoricalVector == 0 || bits.OnesCount64(c.EpochsPerHistoricalVector) != 1 {
		return fmt.Errorf("EPOCHS_PER_HISTORICAL_VECTOR must be a power of two, got %d", c.EpochsPerHistoricalVector)
	}
	if c.SyncCommitteeSize == 0 || c.SyncCommitteeSize%8 != 0 {
		return fmt.Errorf("SYNC_COMMITTEE_SIZE must be a nonzero multiple of 8, got %d", c.SyncCommitteeSize)
	}
	if c.SlotsPerEpoch == 0 || c.SecondsPerSlot == 0 {
		return fmt.Errorf("slot timing parameters must be nonzero")
	}
	if c.ShuffleRoundCount == 0 {
		return fmt.Errorf("SHUFFLE_ROUND_COUNT must be nonzero")
	}
	return nil
}
