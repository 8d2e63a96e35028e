// Package interop builds deterministic validator keys and genesis states
// for local devnets and tests. Keys are derived from the validator index
// alone, so every client that follows the same scheme produces the same
// genesis.
package interop

import (
	"encoding/binary"
	"fmt"

	"github.com/geanlabs/beam/config"
	"github.com/geanlabs/beam/consensus"
	"github.com/geanlabs/beam/crypto/bls"
	"github.com/geanlabs/beam/ssz"
	"github.com/geanlabs/beam/types"
)

// mockEth1BlockHash anchors interop genesis states to a recognizable
// placeholder instead of a real eth1 block.
var mockEth1BlockHash = types.Hash32{
	0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42,
	0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42,
	0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42,
	0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42, 0x42,
}

// DeterministicKeys derives count secret keys from validator indices:
// the key for index i is sha256 of the 32-byte little-endian encoding of
// i, reduced into the curve order.
func DeterministicKeys(count uint64) ([]*bls.SecretKey, error) {
	keys := make([]*bls.SecretKey, count)
	var buf [32]byte
	for i := uint64(0); i < count; i++ {
		binary.LittleEndian.PutUint64(buf[:8], i)
		digest := ssz.Hash(buf[:])
		key, err := bls.SecretKeyFromBytes(digest[:])
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
		keys[i] = key
	}
	return keys, nil
}

// DeterministicDeposits builds full-balance deposits for the first count
// deterministic keys, each with a signed proof of possession and a
// Merkle proof against the final deposit tree.
func DeterministicDeposits(count uint64, cfg *config.Config) ([]*types.Deposit, error) {
	keys, err := DeterministicKeys(count)
	if err != nil {
		return nil, err
	}
	data := make([]types.DepositData, count)
	for i, key := range keys {
		pubkey := key.PublicKey()
		data[i] = types.DepositData{
			Pubkey:                pubkey,
			WithdrawalCredentials: withdrawalCredentials(pubkey, cfg),
			Amount:                cfg.MaxEffectiveBalance,
		}
		message := &types.DepositMessage{
			Pubkey:                data[i].Pubkey,
			WithdrawalCredentials: data[i].WithdrawalCredentials,
			Amount:                data[i].Amount,
		}
		messageRoot, err := message.HashTreeRoot()
		if err != nil {
			return nil, fmt.Errorf("deposit message %d: %w", i, err)
		}
		domain := consensus.ComputeDomain(cfg.DomainDeposit, cfg.GenesisForkVersion, types.Root{})
		signingRoot := consensus.ComputeSigningRoot(messageRoot, domain)
		data[i].Signature = key.Sign(signingRoot[:])
	}
	return DepositsWithProofs(data)
}

// DepositsWithProofs wraps pre-signed deposit data with Merkle proofs
// against the tree containing all of them, in order.
func DepositsWithProofs(data []types.DepositData) ([]*types.Deposit, error) {
	deposits := make([]*types.Deposit, len(data))
	trie := ssz.NewDepositTrie()
	for i := range data {
		leaf, err := data[i].HashTreeRoot()
		if err != nil {
			return nil, fmt.Errorf("deposit data %d: %w", i, err)
		}
		if err := trie.Insert(leaf); err != nil {
			return nil, fmt.Errorf("deposit trie insert %d: %w", i, err)
		}
		deposits[i] = &types.Deposit{Data: data[i]}
	}
	for i := range deposits {
		proof, err := trie.MerkleProof(uint64(i))
		if err != nil {
			return nil, fmt.Errorf("deposit proof %d: %w", i, err)
		}
		deposits[i].Proof = proof
	}
	return deposits, nil
}

// GenesisStateFromDeposits builds a genesis state from externally signed
// deposit data, anchored to the mock eth1 block. A nonzero genesisTime
// overrides the derived time.
func GenesisStateFromDeposits(genesisTime uint64, data []types.DepositData, cfg *config.Config) (*types.BeaconState, error) {
	deposits, err := DepositsWithProofs(data)
	if err != nil {
		return nil, err
	}
	var eth1Timestamp uint64
	if genesisTime > cfg.GenesisDelay {
		eth1Timestamp = genesisTime - cfg.GenesisDelay
	}
	state, err := consensus.InitializeBeaconStateFromEth1(mockEth1BlockHash, eth1Timestamp, deposits, cfg)
	if err != nil {
		return nil, err
	}
	if genesisTime != 0 {
		state.GenesisTime = genesisTime
	}
	return state, nil
}

// GenerateGenesisState builds a sealed genesis state with count
// deterministic full-balance validators. A nonzero genesisTime overrides
// the time derived from the mock eth1 timestamp.
func GenerateGenesisState(genesisTime, count uint64, cfg *config.Config) (*types.BeaconState, error) {
	deposits, err := DeterministicDeposits(count, cfg)
	if err != nil {
		return nil, err
	}
	var eth1Timestamp uint64
	if genesisTime > cfg.GenesisDelay {
		eth1Timestamp = genesisTime - cfg.GenesisDelay
	}
	state, err := consensus.InitializeBeaconStateFromEth1(mockEth1BlockHash, eth1Timestamp, deposits, cfg)
	if err != nil {
		return nil, err
	}
	if genesisTime != 0 {
		state.GenesisTime = genesisTime
	}
	return state, nil
}

func withdrawalCredentials(pubkey types.BLSPubkey, cfg *config.Config) types.Root {
	creds := ssz.Hash(pubkey[:])
	creds[0] = cfg.BLSWithdrawalPrefixByte
	return creds
}
