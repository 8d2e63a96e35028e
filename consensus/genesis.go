package consensus

import (
	"fmt"

	"github.com/geanlabs/beam/config"
	"github.com/geanlabs/beam/ssz"
	"github.com/geanlabs/beam/types"
)

// InitializeBeaconStateFromEth1 builds the canonical genesis state from
// an eth1 anchor block and an ordered deposit sequence.
//
// Deposits are admitted one at a time in input order, and the eth1 data's
// deposit root is recomputed over the prefix admitted so far after every
// admission; consumers may reference the deposit tree at an intermediate
// size, so the incremental roots are part of the contract, not an
// optimization. Deposit signatures and Merkle proofs are not re-checked
// here: deposits reaching genesis are already validated upstream by the
// anchor block, so every deposit is admitted.
//
// Any failure (container capacity, committee derivation) aborts the whole
// construction; no partial state is ever returned.
func InitializeBeaconStateFromEth1(
	eth1BlockHash types.Hash32,
	eth1Timestamp uint64,
	deposits []*types.Deposit,
	cfg *config.Config,
) (*types.BeaconState, error) {
	fork := types.Fork{
		PreviousVersion: cfg.AltairForkVersion,
		CurrentVersion:  cfg.AltairForkVersion,
		Epoch:           types.GenesisEpoch,
	}

	// A genesis block header must be well-formed before any block
	// exists, so the body root is the root of an empty body.
	randaoMixes := make([]types.Hash32, cfg.EpochsPerHistoricalVector)
	for i := range randaoMixes {
		randaoMixes[i] = eth1BlockHash
	}
	state := &types.BeaconState{
		GenesisTime: eth1Timestamp + cfg.GenesisDelay,
		Fork:        fork,
		Eth1Data: types.Eth1Data{
			DepositCount: uint64(len(deposits)),
			BlockHash:    eth1BlockHash,
		},
		LatestBlockHeader: types.BeaconBlockHeader{
			BodyRoot: EmptyBlockBodyRoot(cfg),
		},
		RandaoMixes: randaoMixes,
	}

	leaves := make([]*types.DepositData, 0, len(deposits))
	for i, deposit := range deposits {
		if uint64(len(leaves)) >= types.DepositDataListLimit {
			return nil, fmt.Errorf("deposit %d: %w", i, ssz.ErrTrieFull)
		}
		leaves = append(leaves, &deposit.Data)
		root, err := types.DepositDataListRoot(leaves)
		if err != nil {
			return nil, fmt.Errorf("deposit root after deposit %d: %w", i, err)
		}
		state.Eth1Data.DepositRoot = root
		if err := ProcessDeposit(state, deposit, cfg); err != nil {
			return nil, fmt.Errorf("process deposit %d: %w", i, err)
		}
	}

	// Effective balances floor to the increment and cap at the maximum;
	// validators funded to the cap are active from slot 0, everyone else
	// stays pending at the far-future sentinel.
	for i, v := range state.Validators {
		balance := state.Balances[i]
		v.EffectiveBalance = min(balance-balance%cfg.EffectiveBalanceIncrement, cfg.MaxEffectiveBalance)
		if v.EffectiveBalance == cfg.MaxEffectiveBalance {
			v.ActivationEligibilityEpoch = types.GenesisEpoch
			v.ActivationEpoch = types.GenesisEpoch
		}
	}

	registryRoot, err := types.ValidatorRegistryRoot(state.Validators)
	if err != nil {
		return nil, fmt.Errorf("validator registry root: %w", err)
	}
	state.GenesisValidatorsRoot = registryRoot

	// Current and next sync committee coincide only at genesis.
	committee, err := NextSyncCommittee(state, types.GenesisEpoch+1, cfg)
	if err != nil {
		return nil, fmt.Errorf("genesis sync committee: %w", err)
	}
	state.CurrentSyncCommittee = committee
	state.NextSyncCommittee = &types.SyncCommittee{
		Pubkeys:         append([]types.BLSPubkey(nil), committee.Pubkeys...),
		AggregatePubkey: committee.AggregatePubkey,
	}
	return state, nil
}

// IsValidGenesisState reports whether a candidate genesis state meets the
// network's launch conditions.
//
// Spec pseudocode definition:
//
//	def is_valid_genesis_state(state: BeaconState) -> bool:
//	  if state.genesis_time < MIN_GENESIS_TIME:
//	      return False
//	  if len(get_active_validator_indices(state, GENESIS_EPOCH)) < MIN_GENESIS_ACTIVE_VALIDATOR_COUNT:
//	      return False
//	  return True
func IsValidGenesisState(state *types.BeaconState, cfg *config.Config) bool {
	if state.GenesisTime < cfg.MinGenesisTime {
		return false
	}
	active := state.ActiveValidatorIndices(types.GenesisEpoch)
	return uint64(len(active)) >= cfg.MinGenesisActiveValidatorCount
}

// EmptyBlockBodyRoot computes the hash tree root of a default (empty)
// block body for the genesis fork: zeroed randao reveal, eth1 data and
// graffiti, empty operation lists and a zeroed sync aggregate.
func EmptyBlockBodyRoot(cfg *config.Config) types.Root {
	bitsChunks := (cfg.SyncCommitteeSize/8 + ssz.BytesPerChunk - 1) / ssz.BytesPerChunk
	syncAggregateRoot := ssz.HashNodes(
		ssz.ZeroHashes[ssz.Depth(bitsChunks)], // sync committee bits, all zero
		ssz.ZeroHashes[2],                     // 96-byte signature, zero
	)
	fieldRoots := []types.Root{
		ssz.ZeroHashes[2], // randao_reveal
		ssz.ZeroHashes[2], // eth1_data
		ssz.ZeroHashes[0], // graffiti
		ssz.EmptyListRoot(cfg.MaxProposerSlashings),
		ssz.EmptyListRoot(cfg.MaxAttesterSlashings),
		ssz.EmptyListRoot(cfg.MaxAttestations),
		ssz.EmptyListRoot(cfg.MaxDeposits),
		ssz.EmptyListRoot(cfg.MaxVoluntaryExits),
		syncAggregateRoot,
	}
	return ssz.Merkleize(fieldRoots, uint64(len(fieldRoots)))
}
