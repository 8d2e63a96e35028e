// Package pebbledb is a storage.Store backed by a Pebble key-value
// database. Values are SSZ-encoded and snappy-compressed; keys are the
// hash tree root prefixed by a one-byte namespace.
package pebbledb

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/golang/snappy"

	"github.com/geanlabs/beam/config"
	"github.com/geanlabs/beam/storage"
	"github.com/geanlabs/beam/types"
)

// Key namespaces.
const (
	prefixState  = 's'
	prefixHeader = 'h'
)

// genesisRootKey holds the root of the sealed genesis state.
var genesisRootKey = []byte("genesis-root")

// Store persists states and headers in a Pebble database. Decoding a
// state needs the config-sized container dimensions, so the store keeps
// a config reference.
type Store struct {
	db  *pebble.DB
	cfg *config.Config
}

var _ storage.Store = (*Store)(nil)

// Open opens (or creates) a Pebble database at path.
func Open(path string, cfg *config.Config) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebbledb: open %s: %w", path, err)
	}
	return &Store{db: db, cfg: cfg}, nil
}

func (s *Store) GetState(root types.Root) (*types.BeaconState, error) {
	buf, err := s.get(stateKey(root))
	if err != nil {
		return nil, err
	}
	state, err := types.UnmarshalBeaconState(buf, s.cfg.EpochsPerHistoricalVector, s.cfg.SyncCommitteeSize)
	if err != nil {
		return nil, fmt.Errorf("pebbledb: decode state %s: %w", root.Short(), err)
	}
	return state, nil
}

func (s *Store) PutState(root types.Root, state *types.BeaconState) error {
	buf, err := state.MarshalSSZ()
	if err != nil {
		return fmt.Errorf("pebbledb: encode state %s: %w", root.Short(), err)
	}
	return s.put(stateKey(root), buf)
}

func (s *Store) GetHeader(root types.Root) (*types.BeaconBlockHeader, error) {
	buf, err := s.get(headerKey(root))
	if err != nil {
		return nil, err
	}
	header := new(types.BeaconBlockHeader)
	if err := header.UnmarshalSSZ(buf); err != nil {
		return nil, fmt.Errorf("pebbledb: decode header %s: %w", root.Short(), err)
	}
	return header, nil
}

func (s *Store) PutHeader(root types.Root, header *types.BeaconBlockHeader) error {
	buf, err := header.MarshalSSZ()
	if err != nil {
		return fmt.Errorf("pebbledb: encode header %s: %w", root.Short(), err)
	}
	return s.put(headerKey(root), buf)
}

func (s *Store) GenesisState() (*types.BeaconState, error) {
	rootBytes, err := s.get(genesisRootKey)
	if err != nil {
		return nil, err
	}
	if len(rootBytes) != len(types.Root{}) {
		return nil, fmt.Errorf("pebbledb: malformed genesis root marker (%d bytes)", len(rootBytes))
	}
	var root types.Root
	copy(root[:], rootBytes)
	return s.GetState(root)
}

func (s *Store) PutGenesisState(state *types.BeaconState) error {
	root, err := state.HashTreeRoot()
	if err != nil {
		return fmt.Errorf("pebbledb: genesis state root: %w", err)
	}
	if err := s.PutState(root, state); err != nil {
		return err
	}
	return s.put(genesisRootKey, root[:])
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key []byte) ([]byte, error) {
	compressed, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("pebbledb: get: %w", err)
	}
	defer closer.Close()
	buf, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("pebbledb: decompress: %w", err)
	}
	return buf, nil
}

func (s *Store) put(key, value []byte) error {
	if err := s.db.Set(key, snappy.Encode(nil, value), pebble.Sync); err != nil {
		return fmt.Errorf("pebbledb: set: %w", err)
	}
	return nil
}

func stateKey(root types.Root) []byte {
	return append([]byte{prefixState}, root[:]...)
}

func headerKey(root types.Root) []byte {
	return append([]byte{prefixHeader}, root[:]...)
}
