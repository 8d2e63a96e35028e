// Package clock provides time-to-slot conversion for the beacon chain.
//
// The slot clock bridges wall-clock time to the discrete slot-based time
// model used by consensus. Every node must agree on slot boundaries to
// coordinate block proposals and attestations.
package clock

import (
	"time"

	"github.com/geanlabs/beam/types"
)

// SlotClock converts wall-clock time to consensus slots and epochs.
// All time values are in seconds (Unix timestamps).
type SlotClock struct {
	GenesisTime    uint64 // Unix timestamp when slot 0 began
	secondsPerSlot uint64
	slotsPerEpoch  uint64
	timeFunc       func() time.Time // Injectable for testing
}

// New creates a SlotClock with the given genesis time and slot timing.
func New(genesisTime, secondsPerSlot, slotsPerEpoch uint64) *SlotClock {
	return &SlotClock{
		GenesisTime:    genesisTime,
		secondsPerSlot: secondsPerSlot,
		slotsPerEpoch:  slotsPerEpoch,
		timeFunc:       time.Now,
	}
}

// NewWithTimeFunc creates a SlotClock with a custom time source (for testing).
func NewWithTimeFunc(genesisTime, secondsPerSlot, slotsPerEpoch uint64, timeFunc func() time.Time) *SlotClock {
	c := New(genesisTime, secondsPerSlot, slotsPerEpoch)
	c.timeFunc = timeFunc
	return c
}

// secondsSinceGenesis returns seconds elapsed since genesis (0 if before genesis).
func (c *SlotClock) secondsSinceGenesis() uint64 {
	now := uint64(c.timeFunc().Unix())
	if now < c.GenesisTime {
		return 0
	}
	return now - c.GenesisTime
}

// CurrentSlot returns the current slot number (0 if before genesis).
func (c *SlotClock) CurrentSlot() types.Slot {
	return types.Slot(c.secondsSinceGenesis() / c.secondsPerSlot)
}

// CurrentEpoch returns the epoch the current slot belongs to.
func (c *SlotClock) CurrentEpoch() types.Epoch {
	return types.Epoch(uint64(c.CurrentSlot()) / c.slotsPerEpoch)
}

// SlotStartTime returns the Unix timestamp when a given slot starts.
func (c *SlotClock) SlotStartTime(slot types.Slot) uint64 {
	return c.GenesisTime + uint64(slot)*c.secondsPerSlot
}

// EpochStartSlot returns the first slot of an epoch.
func (c *SlotClock) EpochStartSlot(epoch types.Epoch) types.Slot {
	return types.Slot(uint64(epoch) * c.slotsPerEpoch)
}

// IsBeforeGenesis returns true if current time is before genesis.
func (c *SlotClock) IsBeforeGenesis() bool {
	return uint64(c.timeFunc().Unix()) < c.GenesisTime
}
