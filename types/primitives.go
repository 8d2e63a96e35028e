// Package types defines the primitive and composite types for the beacon
// consensus core: deposits, validators, the genesis-time beacon state and
// the execution payload handed to the execution engine.
package types

import (
	"encoding/hex"
	"fmt"
)

// Primitive types.
type Slot uint64
type Epoch uint64
type Gwei uint64
type ValidatorIndex uint64
type CommitteeIndex uint64
type Root [32]byte

// Hash32 is a 32-byte digest from the execution layer (block hashes,
// randao seeds). Same shape as Root, distinct role.
type Hash32 = Root

// VersionedHash is a commitment-derived blob identifier. The first byte
// carries the commitment version.
type VersionedHash = Root

// Version is a 4-byte fork version identifier.
type Version [4]byte

// DomainType is a 4-byte signature domain discriminator.
type DomainType [4]byte

// Domain is the 32-byte signing domain (domain type mixed with fork data).
type Domain [32]byte

// BLSPubkey is a compressed BLS12-381 G1 point.
type BLSPubkey [48]byte

// BLSSignature is a compressed BLS12-381 G2 point.
type BLSSignature [96]byte

// KzgCommitment is a compressed commitment to a blob polynomial.
type KzgCommitment [48]byte

// ExecutionAddress is a 20-byte execution-layer account address.
type ExecutionAddress [20]byte

// LogsBloom is the execution block's log bloom filter.
type LogsBloom [256]byte

// Capacity bounds baked into the container types. Config.Validate checks
// the loaded network parameters against these at startup.
const (
	ValidatorRegistryLimit   uint64 = 1 << 40
	DepositContractTreeDepth uint64 = 32
	DepositDataListLimit     uint64 = 1 << DepositContractTreeDepth
)

// FarFutureEpoch is the sentinel for "not yet scheduled" activation and
// exit epochs.
const FarFutureEpoch Epoch = 1<<64 - 1

// GenesisEpoch is the epoch of slot 0.
const GenesisEpoch Epoch = 0

func (r Root) IsZero() bool { return r == Root{} }

// Short returns a short hex representation of the root (first 4 bytes).
func (r Root) Short() string {
	return fmt.Sprintf("%x", r[:4])
}

func (r Root) String() string {
	return "0x" + hex.EncodeToString(r[:])
}

func (p BLSPubkey) String() string {
	return "0x" + hex.EncodeToString(p[:])
}

// RootFromHex parses a 32-byte hex string, with or without 0x prefix.
func RootFromHex(s string) (Root, error) {
	var r Root
	b, err := bytesFromHex(s, 32)
	if err != nil {
		return r, err
	}
	copy(r[:], b)
	return r, nil
}

// PubkeyFromHex parses a 48-byte hex string, with or without 0x prefix.
func PubkeyFromHex(s string) (BLSPubkey, error) {
	var p BLSPubkey
	b, err := bytesFromHex(s, 48)
	if err != nil {
		return p, err
	}
	copy(p[:], b)
	return p, nil
}

func bytesFromHex(s string, want int) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s) != want*2 {
		return nil, fmt.Errorf("invalid hex length: got %d chars, want %d", len(s), want*2)
	}
	return hex.DecodeString(s)
}
