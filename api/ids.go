package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geanlabs/beam/types"
)

// StateId selects a state in API paths: a named checkpoint, a slot, or
// a state root.
type StateId struct {
	kind stateIdKind
	slot types.Slot
	root types.Root
}

type stateIdKind uint8

const (
	stateIdHead stateIdKind = iota
	stateIdGenesis
	stateIdFinalized
	stateIdJustified
	stateIdSlot
	stateIdRoot
)

func StateIdHead() StateId      { return StateId{kind: stateIdHead} }
func StateIdGenesis() StateId   { return StateId{kind: stateIdGenesis} }
func StateIdFinalized() StateId { return StateId{kind: stateIdFinalized} }
func StateIdJustified() StateId { return StateId{kind: stateIdJustified} }

func StateIdSlot(slot types.Slot) StateId {
	return StateId{kind: stateIdSlot, slot: slot}
}

func StateIdRoot(root types.Root) StateId {
	return StateId{kind: stateIdRoot, root: root}
}

// ParseStateId interprets a path segment as a state selector.
func ParseStateId(s string) (StateId, error) {
	switch s {
	case "head":
		return StateIdHead(), nil
	case "genesis":
		return StateIdGenesis(), nil
	case "finalized":
		return StateIdFinalized(), nil
	case "justified":
		return StateIdJustified(), nil
	}
	if strings.HasPrefix(s, "0x") {
		root, err := types.RootFromHex(s)
		if err != nil {
			return StateId{}, fmt.Errorf("api: state id %q: %w", s, err)
		}
		return StateIdRoot(root), nil
	}
	slot, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return StateId{}, fmt.Errorf("api: state id %q: %w", s, err)
	}
	return StateIdSlot(types.Slot(slot)), nil
}

func (id StateId) String() string {
	switch id.kind {
	case stateIdGenesis:
		return "genesis"
	case stateIdFinalized:
		return "finalized"
	case stateIdJustified:
		return "justified"
	case stateIdSlot:
		return strconv.FormatUint(uint64(id.slot), 10)
	case stateIdRoot:
		return id.root.String()
	default:
		return "head"
	}
}

// BlockId selects a block in API paths: a named checkpoint, a slot, or
// a block root.
type BlockId struct {
	kind blockIdKind
	slot types.Slot
	root types.Root
}

type blockIdKind uint8

const (
	blockIdHead blockIdKind = iota
	blockIdGenesis
	blockIdFinalized
	blockIdSlot
	blockIdRoot
)

func BlockIdHead() BlockId      { return BlockId{kind: blockIdHead} }
func BlockIdGenesis() BlockId   { return BlockId{kind: blockIdGenesis} }
func BlockIdFinalized() BlockId { return BlockId{kind: blockIdFinalized} }

func BlockIdSlot(slot types.Slot) BlockId {
	return BlockId{kind: blockIdSlot, slot: slot}
}

func BlockIdRoot(root types.Root) BlockId {
	return BlockId{kind: blockIdRoot, root: root}
}

// ParseBlockId interprets a path segment as a block selector.
func ParseBlockId(s string) (BlockId, error) {
	switch s {
	case "head":
		return BlockIdHead(), nil
	case "genesis":
		return BlockIdGenesis(), nil
	case "finalized":
		return BlockIdFinalized(), nil
	}
	if strings.HasPrefix(s, "0x") {
		root, err := types.RootFromHex(s)
		if err != nil {
			return BlockId{}, fmt.Errorf("api: block id %q: %w", s, err)
		}
		return BlockIdRoot(root), nil
	}
	slot, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return BlockId{}, fmt.Errorf("api: block id %q: %w", s, err)
	}
	return BlockIdSlot(types.Slot(slot)), nil
}

func (id BlockId) String() string {
	switch id.kind {
	case blockIdGenesis:
		return "genesis"
	case blockIdFinalized:
		return "finalized"
	case blockIdSlot:
		return strconv.FormatUint(uint64(id.slot), 10)
	case blockIdRoot:
		return id.root.String()
	default:
		return "head"
	}
}
