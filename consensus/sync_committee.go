package consensus

import (
	"encoding/binary"
	"fmt"

	"github.com/geanlabs/beam/config"
	"github.com/geanlabs/beam/crypto/bls"
	"github.com/geanlabs/beam/ssz"
	"github.com/geanlabs/beam/types"
)

// maxRandomByte is the exclusive bound on a sampled byte during
// effective-balance weighted committee selection.
const maxRandomByte = 1<<8 - 1

// NextSyncCommittee derives the sync committee for the committee period
// starting at epoch from the state's registry and randao history. The
// state carries no slot, so the caller supplies the epoch: current epoch
// plus one, which at genesis is GenesisEpoch + 1.
//
// With no active validators there is nothing to sample from, so the
// committee comes back zeroed; this keeps genesis construction total for
// deposit-free launches, where activation happens later.
func NextSyncCommittee(state *types.BeaconState, epoch types.Epoch, cfg *config.Config) (*types.SyncCommittee, error) {
	indices, err := NextSyncCommitteeIndices(state, epoch, cfg)
	if err != nil {
		return nil, err
	}
	committee := &types.SyncCommittee{
		Pubkeys: make([]types.BLSPubkey, cfg.SyncCommitteeSize),
	}
	if len(indices) == 0 {
		return committee, nil
	}
	for i, index := range indices {
		committee.Pubkeys[i] = state.Validators[index].Pubkey
	}
	aggregate, err := bls.AggregatePublicKeys(committee.Pubkeys)
	if err != nil {
		return nil, fmt.Errorf("aggregate committee pubkeys: %w", err)
	}
	committee.AggregatePubkey = aggregate
	return committee, nil
}

// NextSyncCommitteeIndices samples SYNC_COMMITTEE_SIZE validator indices
// for the period starting at epoch, weighted by effective balance.
// Sampling is with replacement: a validator may hold several committee
// seats. The epoch selects both the active set and the seed.
//
// Spec pseudocode definition:
//
//	def get_next_sync_committee_indices(state: BeaconState) -> Sequence[ValidatorIndex]:
//	  epoch = Epoch(get_current_epoch(state) + 1)
//	  MAX_RANDOM_BYTE = 2**8 - 1
//	  active_validator_indices = get_active_validator_indices(state, epoch)
//	  active_validator_count = uint64(len(active_validator_indices))
//	  seed = get_seed(state, epoch, DOMAIN_SYNC_COMMITTEE)
//	  i = 0
//	  sync_committee_indices: List[ValidatorIndex] = []
//	  while len(sync_committee_indices) < SYNC_COMMITTEE_SIZE:
//	      shuffled_index = compute_shuffled_index(uint64(i % active_validator_count), active_validator_count, seed)
//	      candidate_index = active_validator_indices[shuffled_index]
//	      random_byte = hash(seed + uint_to_bytes(uint64(i // 32)))[i % 32]
//	      effective_balance = state.validators[candidate_index].effective_balance
//	      if effective_balance * MAX_RANDOM_BYTE >= MAX_EFFECTIVE_BALANCE * random_byte:
//	          sync_committee_indices.append(candidate_index)
//	      i += 1
//	  return sync_committee_indices
func NextSyncCommitteeIndices(state *types.BeaconState, epoch types.Epoch, cfg *config.Config) ([]types.ValidatorIndex, error) {
	active := state.ActiveValidatorIndices(epoch)
	if len(active) == 0 {
		return nil, nil
	}
	activeCount := uint64(len(active))
	seed := Seed(state, epoch, cfg.DomainSyncCommittee, cfg)

	indices := make([]types.ValidatorIndex, 0, cfg.SyncCommitteeSize)
	hashBuf := make([]byte, 0, 40)
	var randomBytes types.Root
	for i := uint64(0); uint64(len(indices)) < cfg.SyncCommitteeSize; i++ {
		shuffled, err := ComputeShuffledIndex(i%activeCount, activeCount, seed, cfg)
		if err != nil {
			return nil, fmt.Errorf("shuffle candidate %d: %w", i, err)
		}
		candidate := active[shuffled]
		if i%32 == 0 {
			hashBuf = append(hashBuf[:0], seed[:]...)
			hashBuf = binary.LittleEndian.AppendUint64(hashBuf, i/32)
			randomBytes = ssz.Hash(hashBuf)
		}
		randomByte := uint64(randomBytes[i%32])
		effectiveBalance := uint64(state.Validators[candidate].EffectiveBalance)
		if effectiveBalance*maxRandomByte >= uint64(cfg.MaxEffectiveBalance)*randomByte {
			indices = append(indices, candidate)
		}
	}
	return indices, nil
}
