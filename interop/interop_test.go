package interop

import (
	"testing"

	"github.com/geanlabs/beam/config"
	"github.com/geanlabs/beam/consensus"
	"github.com/geanlabs/beam/crypto/bls"
	"github.com/geanlabs/beam/ssz"
	"github.com/geanlabs/beam/types"
)

func TestDeterministicKeys(t *testing.T) {
	keys, err := DeterministicKeys(4)
	if err != nil {
		t.Fatal(err)
	}
	again, err := DeterministicKeys(4)
	if err != nil {
		t.Fatal(err)
	}
	for i := range keys {
		if keys[i].PublicKey() != again[i].PublicKey() {
			t.Errorf("key %d not deterministic", i)
		}
		for j := i + 1; j < len(keys); j++ {
			if keys[i].PublicKey() == keys[j].PublicKey() {
				t.Errorf("keys %d and %d collide", i, j)
			}
		}
	}
}

func TestDeterministicDeposits(t *testing.T) {
	cfg := config.Minimal()
	deposits, err := DeterministicDeposits(3, cfg)
	if err != nil {
		t.Fatal(err)
	}

	trie := ssz.NewDepositTrie()
	for _, d := range deposits {
		leaf, err := d.Data.HashTreeRoot()
		if err != nil {
			t.Fatal(err)
		}
		if err := trie.Insert(leaf); err != nil {
			t.Fatal(err)
		}
	}
	root := trie.Root()

	domain := consensus.ComputeDomain(cfg.DomainDeposit, cfg.GenesisForkVersion, types.Root{})
	for i, d := range deposits {
		if d.Data.Amount != cfg.MaxEffectiveBalance {
			t.Errorf("deposit %d amount = %d", i, d.Data.Amount)
		}
		if d.Data.WithdrawalCredentials[0] != cfg.BLSWithdrawalPrefixByte {
			t.Errorf("deposit %d credentials missing prefix", i)
		}

		// The proof of possession must verify.
		message := &types.DepositMessage{
			Pubkey:                d.Data.Pubkey,
			WithdrawalCredentials: d.Data.WithdrawalCredentials,
			Amount:                d.Data.Amount,
		}
		messageRoot, err := message.HashTreeRoot()
		if err != nil {
			t.Fatal(err)
		}
		signingRoot := consensus.ComputeSigningRoot(messageRoot, domain)
		if !bls.Verify(d.Data.Signature, signingRoot[:], d.Data.Pubkey) {
			t.Errorf("deposit %d signature does not verify", i)
		}

		// The Merkle proof must verify against the final tree.
		leaf, err := d.Data.HashTreeRoot()
		if err != nil {
			t.Fatal(err)
		}
		if !ssz.VerifyMerkleBranch(leaf, d.Proof[:], uint64(i), root) {
			t.Errorf("deposit %d proof does not verify", i)
		}
	}
}

func TestGenerateGenesisState(t *testing.T) {
	cfg := config.Minimal()
	genesisTime := uint64(1700000000)

	state, err := GenerateGenesisState(genesisTime, 4, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if state.GenesisTime != genesisTime {
		t.Errorf("GenesisTime = %d, want %d", state.GenesisTime, genesisTime)
	}
	if len(state.Validators) != 4 {
		t.Fatalf("validators = %d, want 4", len(state.Validators))
	}
	for i, v := range state.Validators {
		if v.EffectiveBalance != cfg.MaxEffectiveBalance {
			t.Errorf("validator %d effective balance = %d", i, v.EffectiveBalance)
		}
		if v.ActivationEpoch != types.GenesisEpoch {
			t.Errorf("validator %d not active at genesis", i)
		}
	}
	if state.Eth1Data.BlockHash != mockEth1BlockHash {
		t.Error("eth1 block hash should be the interop placeholder")
	}

	// Same inputs, same state root.
	again, err := GenerateGenesisState(genesisTime, 4, cfg)
	if err != nil {
		t.Fatal(err)
	}
	r1, err := state.HashTreeRoot()
	if err != nil {
		t.Fatal(err)
	}
	r2, err := again.HashTreeRoot()
	if err != nil {
		t.Fatal(err)
	}
	if r1 != r2 {
		t.Error("interop genesis should be fully deterministic")
	}
}

func TestGenesisStateFromDeposits(t *testing.T) {
	cfg := config.Minimal()
	deposits, err := DeterministicDeposits(3, cfg)
	if err != nil {
		t.Fatal(err)
	}
	data := make([]types.DepositData, len(deposits))
	for i, d := range deposits {
		data[i] = d.Data
	}

	state, err := GenesisStateFromDeposits(1700000000, data, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if state.GenesisTime != 1700000000 {
		t.Errorf("genesis time = %d, want 1700000000", state.GenesisTime)
	}
	if len(state.Validators) != 3 {
		t.Fatalf("got %d validators, want 3", len(state.Validators))
	}

	// The same deposit data must produce the same state as the
	// deterministic generator.
	direct, err := GenerateGenesisState(1700000000, 3, cfg)
	if err != nil {
		t.Fatal(err)
	}
	wantRoot, err := direct.HashTreeRoot()
	if err != nil {
		t.Fatal(err)
	}
	gotRoot, err := state.HashTreeRoot()
	if err != nil {
		t.Fatal(err)
	}
	if gotRoot != wantRoot {
		t.Errorf("state root = %x, want %x", gotRoot, wantRoot)
	}
}
