package types

// BeaconState is the chain state in its genesis-time shape. It is built
// once by genesis initialization and sealed; nothing in this core mutates
// a state after it is returned.
//
// Invariant: len(Validators) == len(Balances) at every point after a
// deposit is admitted.
// Invariant: Eth1Data.DepositRoot is the root of the deposits admitted so
// far, recomputed after every admission.
type BeaconState struct {
	GenesisTime           uint64
	GenesisValidatorsRoot Root `ssz-size:"32"`
	Fork                  Fork
	Eth1Data              Eth1Data
	LatestBlockHeader     BeaconBlockHeader

	// RandaoMixes has exactly EpochsPerHistoricalVector entries; at
	// genesis every entry is the eth1 anchor block hash.
	RandaoMixes []Hash32 `ssz-size:"?,32"`

	Validators []*Validator `ssz-max:"1099511627776"`
	Balances   []Gwei       `ssz-max:"1099511627776"`

	CurrentSyncCommittee *SyncCommittee
	NextSyncCommittee    *SyncCommittee
}

// ValidatorIndexByPubkey returns the registry index for a public key.
func (s *BeaconState) ValidatorIndexByPubkey(pubkey BLSPubkey) (ValidatorIndex, bool) {
	for i, v := range s.Validators {
		if v.Pubkey == pubkey {
			return ValidatorIndex(i), true
		}
	}
	return 0, false
}

// ActiveValidatorIndices returns the indices of validators active at the
// given epoch, in registry order.
func (s *BeaconState) ActiveValidatorIndices(epoch Epoch) []ValidatorIndex {
	indices := make([]ValidatorIndex, 0, len(s.Validators))
	for i, v := range s.Validators {
		if v.IsActive(epoch) {
			indices = append(indices, ValidatorIndex(i))
		}
	}
	return indices
}

// RandaoMix returns the mix for the given epoch, modulo the historical
// vector length.
func (s *BeaconState) RandaoMix(epoch Epoch) Hash32 {
	return s.RandaoMixes[uint64(epoch)%uint64(len(s.RandaoMixes))]
}
