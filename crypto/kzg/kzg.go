// Package kzg holds the commitment-to-hash plumbing the payload
// validation path needs. Full polynomial commitment verification lives
// behind the execution engine boundary; the consensus side only ever
// derives and compares versioned hashes.
package kzg

import (
	"github.com/minio/sha256-simd"

	"github.com/geanlabs/beam/types"
)

// VersionedHashVersionKzg is the version byte prefixing a hashed KZG
// commitment.
const VersionedHashVersionKzg = byte(0x01)

// CommitmentToVersionedHash derives the versioned hash identifying a
// blob: the commitment's sha256 digest with the first byte replaced by
// the version.
func CommitmentToVersionedHash(commitment types.KzgCommitment) types.VersionedHash {
	h := sha256.Sum256(commitment[:])
	h[0] = VersionedHashVersionKzg
	return types.VersionedHash(h)
}
