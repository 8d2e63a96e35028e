package ssz

import (
	"testing"

	"github.com/geanlabs/beam/types"
)

func TestDepositTrieEmptyRoot(t *testing.T) {
	trie := NewDepositTrie()
	want := EmptyListRoot(types.DepositDataListLimit)
	if got := trie.Root(); got != want {
		t.Errorf("empty trie root = %s, want %s", got.Short(), want.Short())
	}
}

func TestDepositTrieRootTracksInserts(t *testing.T) {
	trie := NewDepositTrie()
	var prev types.Root
	for i := 0; i < 5; i++ {
		if err := trie.Insert(types.Root{byte(i + 1)}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		root := trie.Root()
		if root == prev {
			t.Errorf("root unchanged after insert %d", i)
		}
		prev = root
	}
	if trie.Count() != 5 {
		t.Errorf("Count = %d, want 5", trie.Count())
	}
}

func TestDepositTrieSmallRoots(t *testing.T) {
	// Fold the first leaves up by hand through the zero-subtree levels.
	l0 := types.Root{1}
	l1 := types.Root{2}

	trie := NewDepositTrie()
	if err := trie.Insert(l0); err != nil {
		t.Fatal(err)
	}
	node := l0
	for h := 0; h < int(types.DepositContractTreeDepth); h++ {
		node = HashNodes(node, ZeroHashes[h])
	}
	if got := trie.Root(); got != MixInLength(node, 1) {
		t.Error("single leaf root mismatch")
	}

	if err := trie.Insert(l1); err != nil {
		t.Fatal(err)
	}
	node = HashNodes(l0, l1)
	for h := 1; h < int(types.DepositContractTreeDepth); h++ {
		node = HashNodes(node, ZeroHashes[h])
	}
	if got := trie.Root(); got != MixInLength(node, 2) {
		t.Error("two leaf root mismatch")
	}
}

func TestDepositTrieMatchesListRoot(t *testing.T) {
	// The incremental trie and the SSZ list merkleization must agree at
	// every size, since Eth1Data.DepositRoot is defined by both.
	trie := NewDepositTrie()
	var leaves []*types.DepositData
	for i := 0; i < 6; i++ {
		data := &types.DepositData{Amount: types.Gwei(i + 1)}
		data.Pubkey[0] = byte(i)
		leaves = append(leaves, data)

		leaf, err := data.HashTreeRoot()
		if err != nil {
			t.Fatalf("leaf %d: %v", i, err)
		}
		if err := trie.Insert(leaf); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		listRoot, err := types.DepositDataListRoot(leaves)
		if err != nil {
			t.Fatalf("list root %d: %v", i, err)
		}
		if got := trie.Root(); got != listRoot {
			t.Errorf("size %d: trie root %s != list root %s", i+1, got.Short(), listRoot.Short())
		}
	}
}

func TestDepositTrieMerkleProof(t *testing.T) {
	trie := NewDepositTrie()
	leaves := []types.Root{{1}, {2}, {3}, {4}, {5}}
	for _, leaf := range leaves {
		if err := trie.Insert(leaf); err != nil {
			t.Fatal(err)
		}
	}
	root := trie.Root()
	for i, leaf := range leaves {
		proof, err := trie.MerkleProof(uint64(i))
		if err != nil {
			t.Fatalf("proof %d: %v", i, err)
		}
		if !VerifyMerkleBranch(leaf, proof[:], uint64(i), root) {
			t.Errorf("proof %d does not verify", i)
		}
		// A proof must not verify for the wrong leaf.
		if VerifyMerkleBranch(types.Root{0xff}, proof[:], uint64(i), root) {
			t.Errorf("proof %d verified a bogus leaf", i)
		}
	}

	if _, err := trie.MerkleProof(uint64(len(leaves))); err == nil {
		t.Error("expected error for out-of-range proof index")
	}
}
