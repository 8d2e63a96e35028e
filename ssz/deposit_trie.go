package ssz

import (
	"errors"

	"github.com/geanlabs/beam/types"
)

// DepositTrie is an incremental Merkle tree over deposit data roots,
// shaped exactly like the eth1 deposit contract's tree: a fixed depth of
// DepositContractTreeDepth with the deposit count mixed into the root.
// Its root therefore equals the SSZ list root of the same deposit data,
// which is what Eth1Data.DepositRoot records.
type DepositTrie struct {
	branch [types.DepositContractTreeDepth]types.Root
	leaves []types.Root
	count  uint64
}

// ErrTrieFull is returned once the tree's fixed capacity is exhausted.
var ErrTrieFull = errors.New("deposit trie capacity exceeded")

// NewDepositTrie returns an empty deposit tree.
func NewDepositTrie() *DepositTrie {
	return &DepositTrie{}
}

// Insert appends a deposit data root as the next leaf.
func (t *DepositTrie) Insert(leaf types.Root) error {
	if t.count >= 1<<types.DepositContractTreeDepth {
		return ErrTrieFull
	}
	t.leaves = append(t.leaves, leaf)
	node := leaf
	i := t.count
	for h := 0; ; h++ {
		if i%2 == 0 {
			t.branch[h] = node
			break
		}
		node = HashNodes(t.branch[h], node)
		i /= 2
	}
	t.count++
	return nil
}

// Count returns the number of leaves inserted.
func (t *DepositTrie) Count() uint64 { return t.count }

// Root returns the tree root with the leaf count mixed in.
func (t *DepositTrie) Root() types.Root {
	node := ZeroHashes[0]
	size := t.count
	for h := 0; h < int(types.DepositContractTreeDepth); h++ {
		if size&1 == 1 {
			node = HashNodes(t.branch[h], node)
		} else {
			node = HashNodes(node, ZeroHashes[h])
		}
		size >>= 1
	}
	return MixInLength(node, t.count)
}

// MerkleProof returns the inclusion branch for leaf index, one node per
// tree level plus the count mix-in as the final element.
func (t *DepositTrie) MerkleProof(index uint64) ([types.DepositContractTreeDepth + 1]types.Root, error) {
	var proof [types.DepositContractTreeDepth + 1]types.Root
	if index >= t.count {
		return proof, errors.New("leaf index past end of deposit trie")
	}
	level := make([]types.Root, len(t.leaves))
	copy(level, t.leaves)
	idx := index
	for h := 0; h < int(types.DepositContractTreeDepth); h++ {
		sibling := idx ^ 1
		if sibling < uint64(len(level)) {
			proof[h] = level[sibling]
		} else {
			proof[h] = ZeroHashes[h]
		}
		if len(level)%2 == 1 {
			level = append(level, ZeroHashes[h])
		}
		next := level[:len(level)/2]
		for i := range next {
			next[i] = HashNodes(level[2*i], level[2*i+1])
		}
		level = next
		idx /= 2
	}
	proof[types.DepositContractTreeDepth] = Uint64Root(t.count)
	return proof, nil
}

// VerifyMerkleBranch folds a leaf up through a branch and compares the
// result against root. The index selects the left/right orientation at
// each level.
func VerifyMerkleBranch(leaf types.Root, branch []types.Root, index uint64, root types.Root) bool {
	node := leaf
	for h, sibling := range branch {
		if (index>>uint(h))&1 == 1 {
			node = HashNodes(sibling, node)
		} else {
			node = HashNodes(node, sibling)
		}
	}
	return node == root
}
