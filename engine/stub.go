package engine

import "context"

// StubEngine stands in for an execution client in tests and offline
// tooling. It answers every check according to a single validity switch:
// when ExecutionValid is false the very first check fails, so a stubbed
// rejection always looks like a bad block hash to the caller.
type StubEngine struct {
	ExecutionValid bool
}

var _ ExecutionEngine = (*StubEngine)(nil)

func (s *StubEngine) IsValidBlockHash(ctx context.Context, req *NewPayloadRequest) error {
	if !s.ExecutionValid {
		return ErrInvalidBlockHash
	}
	return nil
}

func (s *StubEngine) IsValidVersionedHashes(ctx context.Context, req *NewPayloadRequest) error {
	if !s.ExecutionValid {
		return ErrInvalidVersionedHashes
	}
	return nil
}

func (s *StubEngine) NotifyNewPayload(ctx context.Context, req *NewPayloadRequest) error {
	if !s.ExecutionValid {
		return ErrInvalidPayload
	}
	return nil
}
