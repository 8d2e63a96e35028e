// Package memory is an in-memory storage.Store, used by tests and
// short-lived tooling.
package memory

import (
	"sync"

	"github.com/geanlabs/beam/storage"
	"github.com/geanlabs/beam/types"
)

// Store is an in-memory implementation of storage.Store.
type Store struct {
	mu          sync.RWMutex
	states      map[types.Root]*types.BeaconState
	headers     map[types.Root]*types.BeaconBlockHeader
	genesisRoot types.Root
	hasGenesis  bool
}

var _ storage.Store = (*Store)(nil)

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		states:  make(map[types.Root]*types.BeaconState),
		headers: make(map[types.Root]*types.BeaconBlockHeader),
	}
}

func (m *Store) GetState(root types.Root) (*types.BeaconState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[root]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s, nil
}

func (m *Store) PutState(root types.Root, state *types.BeaconState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[root] = state
	return nil
}

func (m *Store) GetHeader(root types.Root) (*types.BeaconBlockHeader, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.headers[root]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return h, nil
}

func (m *Store) PutHeader(root types.Root, header *types.BeaconBlockHeader) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.headers[root] = header
	return nil
}

func (m *Store) GenesisState() (*types.BeaconState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.hasGenesis {
		return nil, storage.ErrNotFound
	}
	s, ok := m.states[m.genesisRoot]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s, nil
}

func (m *Store) PutGenesisState(state *types.BeaconState) error {
	root, err := state.HashTreeRoot()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[root] = state
	m.genesisRoot = root
	m.hasGenesis = true
	return nil
}

func (m *Store) Close() error { return nil }
