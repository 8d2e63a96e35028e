package types

import "testing"

func TestForkHashTreeRoot(t *testing.T) {
	f := &Fork{
		PreviousVersion: Version{1, 0, 0, 0},
		CurrentVersion:  Version{1, 0, 0, 0},
		Epoch:           0,
	}
	r1, err := f.HashTreeRoot()
	if err != nil {
		t.Fatal(err)
	}
	r2, err := f.HashTreeRoot()
	if err != nil {
		t.Fatal(err)
	}
	if r1 != r2 {
		t.Error("root should be deterministic")
	}

	f.Epoch = 1
	r3, err := f.HashTreeRoot()
	if err != nil {
		t.Fatal(err)
	}
	if r3 == r1 {
		t.Error("changing a field should change the root")
	}
}

func TestValidatorHashTreeRootFieldSensitivity(t *testing.T) {
	base := func() *Validator {
		return &Validator{
			EffectiveBalance:           32_000_000_000,
			ActivationEligibilityEpoch: FarFutureEpoch,
			ActivationEpoch:            FarFutureEpoch,
			ExitEpoch:                  FarFutureEpoch,
			WithdrawableEpoch:          FarFutureEpoch,
		}
	}
	baseRoot, err := base().HashTreeRoot()
	if err != nil {
		t.Fatal(err)
	}

	mutations := map[string]func(*Validator){
		"pubkey":            func(v *Validator) { v.Pubkey[0] = 1 },
		"credentials":       func(v *Validator) { v.WithdrawalCredentials[0] = 1 },
		"effective balance": func(v *Validator) { v.EffectiveBalance = 0 },
		"slashed":           func(v *Validator) { v.Slashed = true },
		"activation epoch":  func(v *Validator) { v.ActivationEpoch = 0 },
	}
	for name, mutate := range mutations {
		v := base()
		mutate(v)
		root, err := v.HashTreeRoot()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if root == baseRoot {
			t.Errorf("%s mutation did not change the root", name)
		}
	}
}

func TestValidatorRegistryRoot(t *testing.T) {
	empty, err := ValidatorRegistryRoot(nil)
	if err != nil {
		t.Fatal(err)
	}
	if empty.IsZero() {
		t.Error("empty registry root should be a mixed-in zero tree, not zero")
	}

	one := []*Validator{{EffectiveBalance: 32_000_000_000}}
	r1, err := ValidatorRegistryRoot(one)
	if err != nil {
		t.Fatal(err)
	}
	if r1 == empty {
		t.Error("registry root should depend on contents")
	}

	two := append(one, &Validator{EffectiveBalance: 16_000_000_000})
	r2, err := ValidatorRegistryRoot(two)
	if err != nil {
		t.Fatal(err)
	}
	if r2 == r1 {
		t.Error("registry root should depend on length")
	}
}

func TestDepositDataListRoot(t *testing.T) {
	empty, err := DepositDataListRoot(nil)
	if err != nil {
		t.Fatal(err)
	}

	var leaves []*DepositData
	var prev Root = empty
	for i := 0; i < 3; i++ {
		leaves = append(leaves, &DepositData{Amount: Gwei(i)})
		root, err := DepositDataListRoot(leaves)
		if err != nil {
			t.Fatal(err)
		}
		if root == prev {
			t.Errorf("root unchanged after leaf %d", i)
		}
		prev = root
	}
}

func TestSyncCommitteeHashTreeRoot(t *testing.T) {
	c := &SyncCommittee{Pubkeys: make([]BLSPubkey, 32)}
	r1, err := c.HashTreeRoot()
	if err != nil {
		t.Fatal(err)
	}

	c.Pubkeys[7][0] = 0xaa
	r2, err := c.HashTreeRoot()
	if err != nil {
		t.Fatal(err)
	}
	if r1 == r2 {
		t.Error("member change should change the committee root")
	}

	c.AggregatePubkey[0] = 0xbb
	r3, err := c.HashTreeRoot()
	if err != nil {
		t.Fatal(err)
	}
	if r3 == r2 {
		t.Error("aggregate change should change the committee root")
	}
}
