package consensus

import (
	"errors"
	"testing"

	"github.com/geanlabs/beam/config"
	"github.com/geanlabs/beam/ssz"
	"github.com/geanlabs/beam/types"
)

func TestProcessDepositSkipsSignatureCheck(t *testing.T) {
	cfg := config.Minimal()
	deposit, _ := makeDeposit(t, 1, cfg.MaxEffectiveBalance, cfg)
	deposit.Data.Signature[5] ^= 0x01

	// The admission path does not re-check proofs of possession;
	// deposits handed to it are pre-validated upstream.
	state := &types.BeaconState{}
	if err := ProcessDeposit(state, deposit, cfg); err != nil {
		t.Fatalf("ProcessDeposit = %v, want nil", err)
	}
	if len(state.Validators) != 1 {
		t.Fatalf("registry size = %d, want 1", len(state.Validators))
	}
	if state.Balances[0] != cfg.MaxEffectiveBalance {
		t.Errorf("balance = %d, want %d", state.Balances[0], cfg.MaxEffectiveBalance)
	}
}

func TestApplyDepositRejectsBadSignature(t *testing.T) {
	cfg := config.Minimal()
	deposit, _ := makeDeposit(t, 1, cfg.MaxEffectiveBalance, cfg)
	deposit.Data.Signature[5] ^= 0x01

	state := &types.BeaconState{}
	err := ApplyDeposit(state, deposit, cfg)
	if !errors.Is(err, ErrDepositSignature) {
		t.Errorf("err = %v, want ErrDepositSignature", err)
	}
	if len(state.Validators) != 0 {
		t.Error("rejected deposit must not touch the registry")
	}

	// The same deposit with an intact signature is admitted.
	good, _ := makeDeposit(t, 1, cfg.MaxEffectiveBalance, cfg)
	if err := ApplyDeposit(state, good, cfg); err != nil {
		t.Fatalf("ApplyDeposit = %v, want nil", err)
	}
	if len(state.Validators) != 1 {
		t.Fatalf("registry size = %d, want 1", len(state.Validators))
	}
}

func TestApplyDepositTopUpSkipsSignatureCheck(t *testing.T) {
	cfg := config.Minimal()
	deposit, _ := makeDeposit(t, 1, cfg.MaxEffectiveBalance, cfg)

	state := &types.BeaconState{}
	if err := ApplyDeposit(state, deposit, cfg); err != nil {
		t.Fatal(err)
	}

	// A top-up for a known pubkey needs no valid signature.
	topUp, _ := makeDeposit(t, 1, cfg.EffectiveBalanceIncrement, cfg)
	topUp.Data.Signature[0] ^= 0xff
	if err := ApplyDeposit(state, topUp, cfg); err != nil {
		t.Fatalf("top-up rejected: %v", err)
	}
	if len(state.Validators) != 1 {
		t.Fatalf("registry size = %d, want 1", len(state.Validators))
	}
	want := cfg.MaxEffectiveBalance + cfg.EffectiveBalanceIncrement
	if state.Balances[0] != want {
		t.Errorf("balance = %d, want %d", state.Balances[0], want)
	}
}

func TestVerifyDepositProof(t *testing.T) {
	cfg := config.Minimal()
	deposits := makeDeposits(t, 3, cfg)

	trie := ssz.NewDepositTrie()
	state := &types.BeaconState{}
	for i, deposit := range deposits {
		leaf, err := deposit.Data.HashTreeRoot()
		if err != nil {
			t.Fatal(err)
		}
		if err := trie.Insert(leaf); err != nil {
			t.Fatal(err)
		}
		proof, err := trie.MerkleProof(uint64(i))
		if err != nil {
			t.Fatal(err)
		}
		deposit.Proof = proof

		state.Eth1Data.DepositRoot = trie.Root()
		state.Eth1Data.DepositCount = uint64(i + 1)
		if err := VerifyDepositProof(state, deposit, uint64(i)); err != nil {
			t.Errorf("deposit %d: %v", i, err)
		}
	}

	// A tampered leaf must fail against the same root.
	bad := *deposits[2]
	bad.Data.Amount++
	if err := VerifyDepositProof(state, &bad, 2); err == nil {
		t.Error("expected proof failure for tampered deposit data")
	}
}

func TestVerifyDepositProofByIndex(t *testing.T) {
	cfg := config.Minimal()
	deposits := makeDeposits(t, 3, cfg)

	// Build the full tree first; every deposit gets a proof against the
	// final root.
	trie := ssz.NewDepositTrie()
	for _, deposit := range deposits {
		leaf, err := deposit.Data.HashTreeRoot()
		if err != nil {
			t.Fatal(err)
		}
		if err := trie.Insert(leaf); err != nil {
			t.Fatal(err)
		}
	}
	state := &types.BeaconState{}
	state.Eth1Data.DepositRoot = trie.Root()
	state.Eth1Data.DepositCount = uint64(len(deposits))

	for i, deposit := range deposits {
		proof, err := trie.MerkleProof(uint64(i))
		if err != nil {
			t.Fatal(err)
		}
		deposit.Proof = proof
		if err := VerifyDepositProof(state, deposit, uint64(i)); err != nil {
			t.Errorf("deposit %d against final root: %v", i, err)
		}
	}

	// Branches are index-specific: a valid proof presented at another
	// position must fail.
	if err := VerifyDepositProof(state, deposits[0], 1); err == nil {
		t.Error("expected proof failure at the wrong index")
	}

	// An index outside the tree is an error, including on an empty tree.
	if err := VerifyDepositProof(state, deposits[0], 3); err == nil {
		t.Error("expected failure for index past the deposit count")
	}
	empty := &types.BeaconState{}
	if err := VerifyDepositProof(empty, deposits[0], 0); err == nil {
		t.Error("expected failure against an empty deposit tree")
	}
}
