// Package engine mediates between the beacon chain and an execution
// client. Payload validation runs three checks in a fixed order, and the
// error returned identifies the first check that failed, so callers can
// distinguish a malformed block hash from a blob commitment mismatch from
// an execution-level rejection.
package engine

import (
	"context"
	"errors"

	"github.com/geanlabs/beam/crypto/kzg"
	"github.com/geanlabs/beam/types"
)

var (
	// ErrInvalidBlockHash means the payload's declared block hash does
	// not commit to its contents.
	ErrInvalidBlockHash = errors.New("engine: invalid payload block hash")

	// ErrInvalidVersionedHashes means the versioned hashes attached to
	// the payload do not match the blob commitments of its transactions.
	ErrInvalidVersionedHashes = errors.New("engine: invalid versioned hashes")

	// ErrInvalidPayload means the execution client rejected the payload,
	// or could not be reached to judge it.
	ErrInvalidPayload = errors.New("engine: invalid payload")
)

// NewPayloadRequest carries an execution payload together with the
// consensus-side data needed to validate it.
type NewPayloadRequest struct {
	ExecutionPayload      *types.ExecutionPayload
	VersionedHashes       []types.VersionedHash
	ParentBeaconBlockRoot types.Root
}

// BuildNewPayloadRequest assembles a validation request for a payload,
// deriving the expected versioned hashes from the blob commitments the
// beacon block body carries.
func BuildNewPayloadRequest(payload *types.ExecutionPayload, commitments []types.KzgCommitment, parentBeaconBlockRoot types.Root) *NewPayloadRequest {
	hashes := make([]types.VersionedHash, len(commitments))
	for i, c := range commitments {
		hashes[i] = kzg.CommitmentToVersionedHash(c)
	}
	return &NewPayloadRequest{
		ExecutionPayload:      payload,
		VersionedHashes:       hashes,
		ParentBeaconBlockRoot: parentBeaconBlockRoot,
	}
}

// ExecutionEngine validates and imports execution payloads. Every method
// reports failure through one of the package sentinels so callers can
// branch on errors.Is.
type ExecutionEngine interface {
	// IsValidBlockHash checks that the payload's block hash commits to
	// its contents. Returns nil or ErrInvalidBlockHash.
	IsValidBlockHash(ctx context.Context, req *NewPayloadRequest) error

	// IsValidVersionedHashes checks the request's versioned hashes
	// against the blob commitments referenced by the payload's
	// transactions. Returns nil or ErrInvalidVersionedHashes.
	IsValidVersionedHashes(ctx context.Context, req *NewPayloadRequest) error

	// NotifyNewPayload submits the payload for execution. Returns nil
	// for a valid payload; a rejection or an unreachable client both
	// surface as ErrInvalidPayload, and an execution client that spots
	// a bad block hash itself surfaces as ErrInvalidBlockHash.
	NotifyNewPayload(ctx context.Context, req *NewPayloadRequest) error
}

// VerifyAndNotifyNewPayload runs the full payload validation sequence:
// block hash, then versioned hashes, then execution. The first failure
// wins; later checks never run once an earlier one has rejected, so a
// payload that is broken in several ways reports the earliest breakage.
func VerifyAndNotifyNewPayload(ctx context.Context, eng ExecutionEngine, req *NewPayloadRequest) error {
	if err := eng.IsValidBlockHash(ctx, req); err != nil {
		return err
	}
	if err := eng.IsValidVersionedHashes(ctx, req); err != nil {
		return err
	}
	return eng.NotifyNewPayload(ctx, req)
}
