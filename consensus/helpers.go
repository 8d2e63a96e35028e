// Package consensus implements genesis state construction and deposit
// processing: the canonical derivation of the chain's initial state from
// an eth1 anchor block and an ordered deposit sequence.
package consensus

import (
	"encoding/binary"
	"fmt"

	"github.com/geanlabs/beam/config"
	"github.com/geanlabs/beam/ssz"
	"github.com/geanlabs/beam/types"
)

// ComputeForkDataRoot hashes a fork version with the genesis validators
// root.
//
// Spec pseudocode definition:
//
//	def compute_fork_data_root(current_version: Version, genesis_validators_root: Root) -> Root:
//	  return hash_tree_root(ForkData(
//	      current_version=current_version,
//	      genesis_validators_root=genesis_validators_root,
//	  ))
func ComputeForkDataRoot(version types.Version, genesisValidatorsRoot types.Root) types.Root {
	var versionChunk types.Root
	copy(versionChunk[:4], version[:])
	return ssz.HashNodes(versionChunk, genesisValidatorsRoot)
}

// ComputeDomain builds the 32-byte signing domain for a domain type and
// fork version. Deposit domains use a zero genesis validators root so
// deposits stay valid across forks.
//
// Spec pseudocode definition:
//
//	def compute_domain(domain_type: DomainType, fork_version: Version=None, genesis_validators_root: Root=None) -> Domain:
//	  ...
//	  fork_data_root = compute_fork_data_root(fork_version, genesis_validators_root)
//	  return Domain(domain_type + fork_data_root[:28])
func ComputeDomain(domainType types.DomainType, forkVersion types.Version, genesisValidatorsRoot types.Root) types.Domain {
	forkDataRoot := ComputeForkDataRoot(forkVersion, genesisValidatorsRoot)
	var domain types.Domain
	copy(domain[:4], domainType[:])
	copy(domain[4:], forkDataRoot[:28])
	return domain
}

// ComputeSigningRoot mixes an object root with a signing domain.
//
// Spec pseudocode definition:
//
//	def compute_signing_root(ssz_object: SSZObject, domain: Domain) -> Root:
//	  return hash_tree_root(SigningData(object_root=hash_tree_root(ssz_object), domain=domain))
func ComputeSigningRoot(objectRoot types.Root, domain types.Domain) types.Root {
	return ssz.HashNodes(objectRoot, types.Root(domain))
}

// Seed derives the shuffling seed for an epoch and domain from the randao
// mix one lookahead window back.
//
// Spec pseudocode definition:
//
//	def get_seed(state: BeaconState, epoch: Epoch, domain_type: DomainType) -> Bytes32:
//	  mix = get_randao_mix(state, Epoch(epoch + EPOCHS_PER_HISTORICAL_VECTOR - MIN_SEED_LOOKAHEAD - 1))
//	  return hash(domain_type + uint_to_bytes(epoch) + mix)
func Seed(state *types.BeaconState, epoch types.Epoch, domainType types.DomainType, cfg *config.Config) types.Root {
	mixEpoch := types.Epoch(uint64(epoch) + cfg.EpochsPerHistoricalVector - cfg.MinSeedLookahead - 1)
	mix := state.RandaoMix(mixEpoch)
	buf := make([]byte, 0, 4+8+32)
	buf = append(buf, domainType[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(epoch))
	buf = append(buf, mix[:]...)
	return ssz.Hash(buf)
}

// ComputeShuffledIndex runs the swap-or-not shuffle for a single index.
//
// Spec pseudocode definition:
//
//	def compute_shuffled_index(index: uint64, index_count: uint64, seed: Bytes32) -> uint64:
//	  assert index < index_count
//	  for current_round in range(SHUFFLE_ROUND_COUNT):
//	      pivot = bytes_to_uint64(hash(seed + uint_to_bytes(uint8(current_round)))[0:8]) % index_count
//	      flip = (pivot + index_count - index) % index_count
//	      position = max(index, flip)
//	      source = hash(seed + uint_to_bytes(uint8(current_round)) + uint_to_bytes(uint32(position // 256)))
//	      byte = source[(position % 256) // 8]
//	      bit = (byte >> (position % 8)) % 2
//	      index = flip if bit else index
//	  return index
func ComputeShuffledIndex(index, indexCount uint64, seed types.Root, cfg *config.Config) (uint64, error) {
	if indexCount == 0 {
		return 0, fmt.Errorf("shuffle over empty index set")
	}
	if index >= indexCount {
		return 0, fmt.Errorf("shuffle index %d out of range %d", index, indexCount)
	}
	buf := make([]byte, 0, 32+1+4)
	for round := uint64(0); round < cfg.ShuffleRoundCount; round++ {
		buf = append(buf[:0], seed[:]...)
		buf = append(buf, byte(round))
		h := ssz.Hash(buf)
		pivot := binary.LittleEndian.Uint64(h[:8]) % indexCount
		flip := (pivot + indexCount - index) % indexCount
		position := max(index, flip)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(position/256))
		source := ssz.Hash(buf)
		b := source[(position%256)/8]
		if (b>>(position%8))&1 == 1 {
			index = flip
		}
	}
	return index, nil
}
