package types

import (
	fssz "github.com/ferranbt/fastssz"
)

// Hash tree roots are hand-rolled against the fastssz hasher. The state
// shape here is config-sized (randao vector, sync committee width), which
// sszgen cannot express, so the walkers are written out instead of
// generated.

func hashRoot(v interface {
	HashTreeRootWith(hh *fssz.Hasher) error
}) (Root, error) {
	hh := fssz.DefaultHasherPool.Get()
	defer fssz.DefaultHasherPool.Put(hh)
	if err := v.HashTreeRootWith(hh); err != nil {
		return Root{}, err
	}
	root, err := hh.HashRoot()
	if err != nil {
		return Root{}, err
	}
	return Root(root), nil
}

// HashTreeRoot of the fork record.
func (f *Fork) HashTreeRoot() (Root, error) { return hashRoot(f) }

func (f *Fork) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(f.PreviousVersion[:])
	hh.PutBytes(f.CurrentVersion[:])
	hh.PutUint64(uint64(f.Epoch))
	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot of the eth1 anchor record.
func (e *Eth1Data) HashTreeRoot() (Root, error) { return hashRoot(e) }

func (e *Eth1Data) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(e.DepositRoot[:])
	hh.PutUint64(e.DepositCount)
	hh.PutBytes(e.BlockHash[:])
	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot of the deposit data; this is the leaf hashed into the
// deposit tree.
func (d *DepositData) HashTreeRoot() (Root, error) { return hashRoot(d) }

func (d *DepositData) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(d.Pubkey[:])
	hh.PutBytes(d.WithdrawalCredentials[:])
	hh.PutUint64(uint64(d.Amount))
	hh.PutBytes(d.Signature[:])
	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot of the unsigned deposit message; this is what the deposit
// signature commits to.
func (d *DepositMessage) HashTreeRoot() (Root, error) { return hashRoot(d) }

func (d *DepositMessage) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(d.Pubkey[:])
	hh.PutBytes(d.WithdrawalCredentials[:])
	hh.PutUint64(uint64(d.Amount))
	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot of a full deposit record, proof included.
func (d *Deposit) HashTreeRoot() (Root, error) { return hashRoot(d) }

func (d *Deposit) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()
	{
		subIndx := hh.Index()
		for i := range d.Proof {
			hh.PutBytes(d.Proof[i][:])
		}
		hh.Merkleize(subIndx)
	}
	if err := d.Data.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot of the signing data envelope.
func (s *SigningData) HashTreeRoot() (Root, error) { return hashRoot(s) }

func (s *SigningData) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(s.ObjectRoot[:])
	hh.PutBytes(s.Domain[:])
	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot of a validator registry record.
func (v *Validator) HashTreeRoot() (Root, error) { return hashRoot(v) }

func (v *Validator) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()
	hh.PutBytes(v.Pubkey[:])
	hh.PutBytes(v.WithdrawalCredentials[:])
	hh.PutUint64(uint64(v.EffectiveBalance))
	hh.PutBool(v.Slashed)
	hh.PutUint64(uint64(v.ActivationEligibilityEpoch))
	hh.PutUint64(uint64(v.ActivationEpoch))
	hh.PutUint64(uint64(v.ExitEpoch))
	hh.PutUint64(uint64(v.WithdrawableEpoch))
	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot of a block header.
func (h *BeaconBlockHeader) HashTreeRoot() (Root, error) { return hashRoot(h) }

func (h *BeaconBlockHeader) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(uint64(h.Slot))
	hh.PutUint64(uint64(h.ProposerIndex))
	hh.PutBytes(h.ParentRoot[:])
	hh.PutBytes(h.StateRoot[:])
	hh.PutBytes(h.BodyRoot[:])
	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot of a sync committee.
func (c *SyncCommittee) HashTreeRoot() (Root, error) { return hashRoot(c) }

func (c *SyncCommittee) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()
	{
		subIndx := hh.Index()
		for i := range c.Pubkeys {
			hh.PutBytes(c.Pubkeys[i][:])
		}
		hh.Merkleize(subIndx)
	}
	hh.PutBytes(c.AggregatePubkey[:])
	hh.Merkleize(indx)
	return nil
}

// HashTreeRoot of the beacon state.
func (s *BeaconState) HashTreeRoot() (Root, error) { return hashRoot(s) }

func (s *BeaconState) HashTreeRootWith(hh *fssz.Hasher) error {
	indx := hh.Index()
	hh.PutUint64(s.GenesisTime)
	hh.PutBytes(s.GenesisValidatorsRoot[:])
	if err := s.Fork.HashTreeRootWith(hh); err != nil {
		return err
	}
	if err := s.Eth1Data.HashTreeRootWith(hh); err != nil {
		return err
	}
	if err := s.LatestBlockHeader.HashTreeRootWith(hh); err != nil {
		return err
	}
	{
		subIndx := hh.Index()
		for i := range s.RandaoMixes {
			hh.PutBytes(s.RandaoMixes[i][:])
		}
		hh.Merkleize(subIndx)
	}
	if err := validatorsRootWith(hh, s.Validators); err != nil {
		return err
	}
	{
		subIndx := hh.Index()
		for _, b := range s.Balances {
			hh.AppendUint64(uint64(b))
		}
		hh.FillUpTo32()
		n := uint64(len(s.Balances))
		hh.MerkleizeWithMixin(subIndx, n, fssz.CalculateLimit(ValidatorRegistryLimit, n, 8))
	}
	if err := s.CurrentSyncCommittee.HashTreeRootWith(hh); err != nil {
		return err
	}
	if err := s.NextSyncCommittee.HashTreeRootWith(hh); err != nil {
		return err
	}
	hh.Merkleize(indx)
	return nil
}

// ValidatorRegistryRoot is the SSZ list root of the registry; the sealed
// genesis state records it as genesis_validators_root.
func ValidatorRegistryRoot(validators []*Validator) (Root, error) {
	hh := fssz.DefaultHasherPool.Get()
	defer fssz.DefaultHasherPool.Put(hh)
	if err := validatorsRootWith(hh, validators); err != nil {
		return Root{}, err
	}
	root, err := hh.HashRoot()
	if err != nil {
		return Root{}, err
	}
	return Root(root), nil
}

func validatorsRootWith(hh *fssz.Hasher, validators []*Validator) error {
	n := uint64(len(validators))
	if n > ValidatorRegistryLimit {
		return fssz.ErrIncorrectListSize
	}
	subIndx := hh.Index()
	for _, v := range validators {
		if err := v.HashTreeRootWith(hh); err != nil {
			return err
		}
	}
	hh.MerkleizeWithMixin(subIndx, n, ValidatorRegistryLimit)
	return nil
}

// DepositDataListRoot is the SSZ list root of deposit data leaves bounded
// by the deposit contract capacity. Eth1Data.DepositRoot carries this
// root for the deposits admitted so far.
func DepositDataListRoot(leaves []*DepositData) (Root, error) {
	hh := fssz.DefaultHasherPool.Get()
	defer fssz.DefaultHasherPool.Put(hh)
	n := uint64(len(leaves))
	if n > DepositDataListLimit {
		return Root{}, fssz.ErrIncorrectListSize
	}
	subIndx := hh.Index()
	for _, d := range leaves {
		if err := d.HashTreeRootWith(hh); err != nil {
			return Root{}, err
		}
	}
	hh.MerkleizeWithMixin(subIndx, n, DepositDataListLimit)
	root, err := hh.HashRoot()
	if err != nil {
		return Root{}, err
	}
	return Root(root), nil
}
