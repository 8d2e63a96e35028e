// Package ssz provides the Merkle hashing primitives used alongside the
// fastssz hasher: zero-subtree roots, length mix-ins and small-scale
// merkleization for places where no container type exists (default block
// body roots, incremental deposit roots).
package ssz

import (
	"encoding/binary"
	"math/bits"

	"github.com/minio/sha256-simd"

	"github.com/geanlabs/beam/types"
)

// BytesPerChunk is the SSZ chunk width.
const BytesPerChunk = 32

// MaxTreeDepth bounds the precomputed zero-subtree table. Depth 64 covers
// every list limit this core uses (the validator registry limit is 2^40).
const MaxTreeDepth = 64

// ZeroHashes[i] is the root of a fully zero subtree of depth i.
var ZeroHashes [MaxTreeDepth + 1]types.Root

func init() {
	for i := 0; i < MaxTreeDepth; i++ {
		ZeroHashes[i+1] = HashNodes(ZeroHashes[i], ZeroHashes[i])
	}
}

// Hash returns the sha256 digest of data.
func Hash(data []byte) types.Root {
	return types.Root(sha256.Sum256(data))
}

// HashNodes hashes the concatenation of two tree nodes.
func HashNodes(a, b types.Root) types.Root {
	h := sha256.New()
	h.Write(a[:])
	h.Write(b[:])
	var out types.Root
	copy(out[:], h.Sum(nil))
	return out
}

// Uint64Root packs a uint64 into a little-endian chunk.
func Uint64Root(v uint64) types.Root {
	var out types.Root
	binary.LittleEndian.PutUint64(out[:8], v)
	return out
}

// MixInLength hashes a root with the little-endian encoding of length,
// finishing an SSZ list merkleization.
func MixInLength(root types.Root, length uint64) types.Root {
	return HashNodes(root, Uint64Root(length))
}

// Depth returns the tree depth needed to hold limit chunks.
func Depth(limit uint64) int {
	if limit <= 1 {
		return 0
	}
	return bits.Len64(limit - 1)
}

// Merkleize hashes chunks into a single root over a tree sized for limit
// chunks. A limit of 0 sizes the tree to the input.
func Merkleize(chunks []types.Root, limit uint64) types.Root {
	n := uint64(len(chunks))
	if limit == 0 {
		limit = n
	}
	depth := Depth(limit)
	if n == 0 {
		return ZeroHashes[depth]
	}
	level := make([]types.Root, len(chunks))
	copy(level, chunks)
	for d := 0; d < depth; d++ {
		if len(level)%2 == 1 {
			level = append(level, ZeroHashes[d])
		}
		next := level[:len(level)/2]
		for i := range next {
			next[i] = HashNodes(level[2*i], level[2*i+1])
		}
		level = next
	}
	return level[0]
}

// EmptyListRoot returns the root of an empty SSZ list whose merkleization
// spans limit chunks.
func EmptyListRoot(limit uint64) types.Root {
	return MixInLength(ZeroHashes[Depth(limit)], 0)
}

// PackBytes splits a byte vector into zero-padded chunks.
func PackBytes(b []byte) []types.Root {
	n := (len(b) + BytesPerChunk - 1) / BytesPerChunk
	chunks := make([]types.Root, n)
	for i := 0; i < n; i++ {
		end := (i + 1) * BytesPerChunk
		if end > len(b) {
			end = len(b)
		}
		copy(chunks[i][:], b[i*BytesPerChunk:end])
	}
	return chunks
}

// BytesRoot merkleizes a fixed-size byte vector.
func BytesRoot(b []byte) types.Root {
	chunks := PackBytes(b)
	return Merkleize(chunks, uint64(len(chunks)))
}
