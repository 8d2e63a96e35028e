// Package storage defines persistence for beacon states and block
// headers, keyed by their hash tree roots.
package storage

import (
	"errors"

	"github.com/geanlabs/beam/types"
)

// ErrNotFound is returned when the requested root has no entry.
var ErrNotFound = errors.New("storage: not found")

// Store persists beacon states and block headers. Implementations must
// be safe for concurrent use.
type Store interface {
	GetState(root types.Root) (*types.BeaconState, error)
	PutState(root types.Root, state *types.BeaconState) error
	GetHeader(root types.Root) (*types.BeaconBlockHeader, error)
	PutHeader(root types.Root, header *types.BeaconBlockHeader) error

	// GenesisState is the state stored under the genesis root marker,
	// if one has been sealed.
	GenesisState() (*types.BeaconState, error)
	PutGenesisState(state *types.BeaconState) error

	Close() error
}
