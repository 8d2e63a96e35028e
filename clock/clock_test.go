package clock

import (
	"testing"
	"time"

	"github.com/geanlabs/beam/types"
)

func fixedTime(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

func TestCurrentSlot(t *testing.T) {
	genesis := uint64(1000)

	tests := []struct {
		now  int64
		want types.Slot
	}{
		{999, 0},  // before genesis
		{1000, 0}, // genesis
		{1005, 0}, // mid slot
		{1006, 1},
		{1012, 2},
		{1000 + 6*100, 100},
	}
	for _, tt := range tests {
		c := NewWithTimeFunc(genesis, 6, 8, fixedTime(tt.now))
		if got := c.CurrentSlot(); got != tt.want {
			t.Errorf("now=%d: CurrentSlot = %d, want %d", tt.now, got, tt.want)
		}
	}
}

func TestCurrentEpoch(t *testing.T) {
	genesis := uint64(1000)

	tests := []struct {
		now  int64
		want types.Epoch
	}{
		{1000, 0},
		{1000 + 6*7, 0}, // last slot of epoch 0
		{1000 + 6*8, 1}, // first slot of epoch 1
		{1000 + 6*17, 2},
	}
	for _, tt := range tests {
		c := NewWithTimeFunc(genesis, 6, 8, fixedTime(tt.now))
		if got := c.CurrentEpoch(); got != tt.want {
			t.Errorf("now=%d: CurrentEpoch = %d, want %d", tt.now, got, tt.want)
		}
	}
}

func TestSlotStartTime(t *testing.T) {
	c := New(1000, 12, 32)
	if got := c.SlotStartTime(0); got != 1000 {
		t.Errorf("SlotStartTime(0) = %d, want 1000", got)
	}
	if got := c.SlotStartTime(10); got != 1120 {
		t.Errorf("SlotStartTime(10) = %d, want 1120", got)
	}
}

func TestEpochStartSlot(t *testing.T) {
	c := New(0, 12, 32)
	if got := c.EpochStartSlot(3); got != 96 {
		t.Errorf("EpochStartSlot(3) = %d, want 96", got)
	}
}

func TestIsBeforeGenesis(t *testing.T) {
	c := NewWithTimeFunc(1000, 6, 8, fixedTime(999))
	if !c.IsBeforeGenesis() {
		t.Error("999 should be before genesis at 1000")
	}
	c = NewWithTimeFunc(1000, 6, 8, fixedTime(1000))
	if c.IsBeforeGenesis() {
		t.Error("1000 should not be before genesis at 1000")
	}
}
