package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/geanlabs/beam/crypto/kzg"
	"github.com/geanlabs/beam/types"
)

// recordingEngine notes which checks ran and fails the ones it is told
// to fail.
type recordingEngine struct {
	calls []string

	blockHashErr       error
	versionedHashesErr error
	payloadErr         error
}

func (r *recordingEngine) IsValidBlockHash(ctx context.Context, req *NewPayloadRequest) error {
	r.calls = append(r.calls, "block_hash")
	return r.blockHashErr
}

func (r *recordingEngine) IsValidVersionedHashes(ctx context.Context, req *NewPayloadRequest) error {
	r.calls = append(r.calls, "versioned_hashes")
	return r.versionedHashesErr
}

func (r *recordingEngine) NotifyNewPayload(ctx context.Context, req *NewPayloadRequest) error {
	r.calls = append(r.calls, "new_payload")
	return r.payloadErr
}

func TestVerifyAndNotifyOrdering(t *testing.T) {
	req := &NewPayloadRequest{ExecutionPayload: &types.ExecutionPayload{}}

	tests := []struct {
		name      string
		eng       *recordingEngine
		wantErr   error
		wantCalls []string
	}{
		{
			name:      "all pass",
			eng:       &recordingEngine{},
			wantErr:   nil,
			wantCalls: []string{"block_hash", "versioned_hashes", "new_payload"},
		},
		{
			name:      "block hash fails first",
			eng:       &recordingEngine{blockHashErr: ErrInvalidBlockHash},
			wantErr:   ErrInvalidBlockHash,
			wantCalls: []string{"block_hash"},
		},
		{
			name: "block hash shadows later failures",
			eng: &recordingEngine{
				blockHashErr:       ErrInvalidBlockHash,
				versionedHashesErr: ErrInvalidVersionedHashes,
				payloadErr:         ErrInvalidPayload,
			},
			wantErr:   ErrInvalidBlockHash,
			wantCalls: []string{"block_hash"},
		},
		{
			name: "versioned hashes fail second",
			eng: &recordingEngine{
				versionedHashesErr: ErrInvalidVersionedHashes,
				payloadErr:         ErrInvalidPayload,
			},
			wantErr:   ErrInvalidVersionedHashes,
			wantCalls: []string{"block_hash", "versioned_hashes"},
		},
		{
			name:      "payload fails last",
			eng:       &recordingEngine{payloadErr: ErrInvalidPayload},
			wantErr:   ErrInvalidPayload,
			wantCalls: []string{"block_hash", "versioned_hashes", "new_payload"},
		},
	}

	for _, tt := range tests {
		err := VerifyAndNotifyNewPayload(context.Background(), tt.eng, req)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.wantErr)
		}
		if len(tt.eng.calls) != len(tt.wantCalls) {
			t.Errorf("%s: calls = %v, want %v", tt.name, tt.eng.calls, tt.wantCalls)
			continue
		}
		for i := range tt.wantCalls {
			if tt.eng.calls[i] != tt.wantCalls[i] {
				t.Errorf("%s: calls = %v, want %v", tt.name, tt.eng.calls, tt.wantCalls)
				break
			}
		}
	}
}

func TestStubEngine(t *testing.T) {
	req := &NewPayloadRequest{ExecutionPayload: &types.ExecutionPayload{}}
	ctx := context.Background()

	valid := &StubEngine{ExecutionValid: true}
	if err := VerifyAndNotifyNewPayload(ctx, valid, req); err != nil {
		t.Errorf("valid stub: %v", err)
	}

	// An invalid stub always surfaces as a block hash failure: the
	// first check fails before anything else can.
	invalid := &StubEngine{ExecutionValid: false}
	err := VerifyAndNotifyNewPayload(ctx, invalid, req)
	if !errors.Is(err, ErrInvalidBlockHash) {
		t.Errorf("invalid stub: err = %v, want ErrInvalidBlockHash", err)
	}
	if errors.Is(err, ErrInvalidPayload) || errors.Is(err, ErrInvalidVersionedHashes) {
		t.Error("invalid stub must not report later checks")
	}
}

func TestBuildNewPayloadRequest(t *testing.T) {
	payload := &types.ExecutionPayload{BlockNumber: 7}
	var root types.Root
	root[0] = 0xaa

	commitments := []types.KzgCommitment{{0x01}, {0x02}}
	req := BuildNewPayloadRequest(payload, commitments, root)

	if req.ExecutionPayload != payload {
		t.Error("payload not carried through")
	}
	if req.ParentBeaconBlockRoot != root {
		t.Error("parent beacon block root not carried through")
	}
	if len(req.VersionedHashes) != len(commitments) {
		t.Fatalf("got %d versioned hashes, want %d", len(req.VersionedHashes), len(commitments))
	}
	for i, h := range req.VersionedHashes {
		want := kzg.CommitmentToVersionedHash(commitments[i])
		if h != want {
			t.Errorf("hash %d = %x, want %x", i, h, want)
		}
	}
	if req.VersionedHashes[0] == req.VersionedHashes[1] {
		t.Error("distinct commitments must yield distinct hashes")
	}

	empty := BuildNewPayloadRequest(payload, nil, root)
	if len(empty.VersionedHashes) != 0 {
		t.Errorf("nil commitments: got %d hashes", len(empty.VersionedHashes))
	}
}
