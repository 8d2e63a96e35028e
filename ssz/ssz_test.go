package ssz

import (
	"testing"

	"github.com/geanlabs/beam/types"
)

func TestHash(t *testing.T) {
	h := Hash([]byte("hello"))
	if h.IsZero() {
		t.Error("hash should not be zero")
	}

	h2 := Hash([]byte("hello"))
	if h != h2 {
		t.Error("hash should be deterministic")
	}
}

func TestHashNodes(t *testing.T) {
	a := types.Root{1}
	b := types.Root{2}

	h := HashNodes(a, b)
	if h.IsZero() {
		t.Error("hash should not be zero")
	}

	h2 := HashNodes(b, a)
	if h == h2 {
		t.Error("order should matter")
	}
}

func TestZeroHashes(t *testing.T) {
	if !ZeroHashes[0].IsZero() {
		t.Error("depth 0 zero hash should be the zero root")
	}
	for i := 1; i <= MaxTreeDepth; i++ {
		want := HashNodes(ZeroHashes[i-1], ZeroHashes[i-1])
		if ZeroHashes[i] != want {
			t.Errorf("ZeroHashes[%d] broken", i)
		}
	}
}

func TestUint64Root(t *testing.T) {
	r := Uint64Root(100)
	if r[0] != 100 {
		t.Errorf("expected first byte to be 100, got %d", r[0])
	}
	for i := 8; i < 32; i++ {
		if r[i] != 0 {
			t.Errorf("byte %d should be 0", i)
		}
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		limit uint64
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{16, 4},
		{17, 5},
		{1 << 32, 32},
		{1 << 40, 40},
	}
	for _, tt := range tests {
		if got := Depth(tt.limit); got != tt.want {
			t.Errorf("Depth(%d) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestMerkleize(t *testing.T) {
	chunk := types.Root{1, 2, 3}
	root := Merkleize([]types.Root{chunk}, 0)
	if root != chunk {
		t.Error("single chunk should be its own root")
	}

	a := types.Root{1}
	b := types.Root{2}
	root2 := Merkleize([]types.Root{a, b}, 0)
	if root2 != HashNodes(a, b) {
		t.Error("two chunks should hash to their pair")
	}

	// Odd count pads with a zero chunk.
	root3 := Merkleize([]types.Root{a, b, chunk}, 0)
	want := HashNodes(HashNodes(a, b), HashNodes(chunk, ZeroHashes[0]))
	if root3 != want {
		t.Error("three chunks should pad the last pair with a zero chunk")
	}
}

func TestMerkleizeWithLimit(t *testing.T) {
	a := types.Root{1}

	// A single chunk in a limit-4 tree sits above two levels of zero
	// siblings.
	root := Merkleize([]types.Root{a}, 4)
	want := HashNodes(HashNodes(a, ZeroHashes[0]), ZeroHashes[1])
	if root != want {
		t.Error("limit should size the tree beyond the chunk count")
	}

	if Merkleize(nil, 8) != ZeroHashes[3] {
		t.Error("empty input should give the zero subtree root")
	}
}

func TestMixInLength(t *testing.T) {
	root := types.Root{7}
	mixed := MixInLength(root, 3)
	if mixed != HashNodes(root, Uint64Root(3)) {
		t.Error("length mix-in should hash root with little-endian length")
	}
	if MixInLength(root, 3) == MixInLength(root, 4) {
		t.Error("different lengths should give different roots")
	}
}

func TestEmptyListRoot(t *testing.T) {
	if EmptyListRoot(16) != MixInLength(ZeroHashes[4], 0) {
		t.Error("empty list root should be zero subtree with zero length")
	}
	if EmptyListRoot(16) == EmptyListRoot(32) {
		t.Error("limit should affect the empty list root")
	}
}

func TestPackBytes(t *testing.T) {
	chunks := PackBytes(make([]byte, 33))
	if len(chunks) != 2 {
		t.Fatalf("33 bytes should pack into 2 chunks, got %d", len(chunks))
	}
	if !chunks[1].IsZero() {
		t.Error("trailing chunk should be zero padded")
	}

	if len(PackBytes(nil)) != 0 {
		t.Error("no bytes should pack into no chunks")
	}
}
