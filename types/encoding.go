package types

import (
	"fmt"

	fssz "github.com/ferranbt/fastssz"
)

// SSZ serialization for the containers that cross a storage or tooling
// boundary. The beacon state's randao vector and sync committee widths
// are network parameters, so decoding a state needs those two sizes; see
// UnmarshalBeaconState.

const (
	forkSize        = 16
	eth1DataSize    = 72
	headerSize      = 112
	validatorSize   = 121
	depositDataSize = 184
	depositSize     = 33*32 + depositDataSize
)

func (f *Fork) MarshalSSZTo(dst []byte) []byte {
	dst = append(dst, f.PreviousVersion[:]...)
	dst = append(dst, f.CurrentVersion[:]...)
	dst = fssz.MarshalUint64(dst, uint64(f.Epoch))
	return dst
}

func (f *Fork) UnmarshalSSZ(buf []byte) error {
	if len(buf) != forkSize {
		return fssz.ErrSize
	}
	copy(f.PreviousVersion[:], buf[0:4])
	copy(f.CurrentVersion[:], buf[4:8])
	f.Epoch = Epoch(fssz.UnmarshallUint64(buf[8:16]))
	return nil
}

func (e *Eth1Data) MarshalSSZTo(dst []byte) []byte {
	dst = append(dst, e.DepositRoot[:]...)
	dst = fssz.MarshalUint64(dst, e.DepositCount)
	dst = append(dst, e.BlockHash[:]...)
	return dst
}

func (e *Eth1Data) UnmarshalSSZ(buf []byte) error {
	if len(buf) != eth1DataSize {
		return fssz.ErrSize
	}
	copy(e.DepositRoot[:], buf[0:32])
	e.DepositCount = fssz.UnmarshallUint64(buf[32:40])
	copy(e.BlockHash[:], buf[40:72])
	return nil
}

func (h *BeaconBlockHeader) MarshalSSZ() ([]byte, error) {
	return h.MarshalSSZTo(make([]byte, 0, headerSize)), nil
}

func (h *BeaconBlockHeader) MarshalSSZTo(dst []byte) []byte {
	dst = fssz.MarshalUint64(dst, uint64(h.Slot))
	dst = fssz.MarshalUint64(dst, uint64(h.ProposerIndex))
	dst = append(dst, h.ParentRoot[:]...)
	dst = append(dst, h.StateRoot[:]...)
	dst = append(dst, h.BodyRoot[:]...)
	return dst
}

func (h *BeaconBlockHeader) UnmarshalSSZ(buf []byte) error {
	if len(buf) != headerSize {
		return fssz.ErrSize
	}
	h.Slot = Slot(fssz.UnmarshallUint64(buf[0:8]))
	h.ProposerIndex = ValidatorIndex(fssz.UnmarshallUint64(buf[8:16]))
	copy(h.ParentRoot[:], buf[16:48])
	copy(h.StateRoot[:], buf[48:80])
	copy(h.BodyRoot[:], buf[80:112])
	return nil
}

func (d *DepositData) MarshalSSZTo(dst []byte) []byte {
	dst = append(dst, d.Pubkey[:]...)
	dst = append(dst, d.WithdrawalCredentials[:]...)
	dst = fssz.MarshalUint64(dst, uint64(d.Amount))
	dst = append(dst, d.Signature[:]...)
	return dst
}

func (d *DepositData) UnmarshalSSZ(buf []byte) error {
	if len(buf) != depositDataSize {
		return fssz.ErrSize
	}
	copy(d.Pubkey[:], buf[0:48])
	copy(d.WithdrawalCredentials[:], buf[48:80])
	d.Amount = Gwei(fssz.UnmarshallUint64(buf[80:88]))
	copy(d.Signature[:], buf[88:184])
	return nil
}

func (d *Deposit) MarshalSSZTo(dst []byte) []byte {
	for i := range d.Proof {
		dst = append(dst, d.Proof[i][:]...)
	}
	return d.Data.MarshalSSZTo(dst)
}

func (d *Deposit) UnmarshalSSZ(buf []byte) error {
	if len(buf) != depositSize {
		return fssz.ErrSize
	}
	for i := range d.Proof {
		copy(d.Proof[i][:], buf[i*32:(i+1)*32])
	}
	return d.Data.UnmarshalSSZ(buf[33*32:])
}

func (v *Validator) MarshalSSZTo(dst []byte) []byte {
	dst = append(dst, v.Pubkey[:]...)
	dst = append(dst, v.WithdrawalCredentials[:]...)
	dst = fssz.MarshalUint64(dst, uint64(v.EffectiveBalance))
	dst = fssz.MarshalBool(dst, v.Slashed)
	dst = fssz.MarshalUint64(dst, uint64(v.ActivationEligibilityEpoch))
	dst = fssz.MarshalUint64(dst, uint64(v.ActivationEpoch))
	dst = fssz.MarshalUint64(dst, uint64(v.ExitEpoch))
	dst = fssz.MarshalUint64(dst, uint64(v.WithdrawableEpoch))
	return dst
}

func (v *Validator) UnmarshalSSZ(buf []byte) error {
	if len(buf) != validatorSize {
		return fssz.ErrSize
	}
	copy(v.Pubkey[:], buf[0:48])
	copy(v.WithdrawalCredentials[:], buf[48:80])
	v.EffectiveBalance = Gwei(fssz.UnmarshallUint64(buf[80:88]))
	v.Slashed = fssz.UnmarshalBool(buf[88:89])
	v.ActivationEligibilityEpoch = Epoch(fssz.UnmarshallUint64(buf[89:97]))
	v.ActivationEpoch = Epoch(fssz.UnmarshallUint64(buf[97:105]))
	v.ExitEpoch = Epoch(fssz.UnmarshallUint64(buf[105:113]))
	v.WithdrawableEpoch = Epoch(fssz.UnmarshallUint64(buf[113:121]))
	return nil
}

func (c *SyncCommittee) sizeSSZ() int {
	return 48*len(c.Pubkeys) + 48
}

func (c *SyncCommittee) MarshalSSZTo(dst []byte) []byte {
	for i := range c.Pubkeys {
		dst = append(dst, c.Pubkeys[i][:]...)
	}
	dst = append(dst, c.AggregatePubkey[:]...)
	return dst
}

func (c *SyncCommittee) unmarshalSSZ(buf []byte, size int) error {
	if len(buf) != 48*size+48 {
		return fssz.ErrSize
	}
	c.Pubkeys = make([]BLSPubkey, size)
	for i := 0; i < size; i++ {
		copy(c.Pubkeys[i][:], buf[i*48:(i+1)*48])
	}
	copy(c.AggregatePubkey[:], buf[size*48:])
	return nil
}

// SizeSSZ returns the serialized size of the state.
func (s *BeaconState) SizeSSZ() int {
	fixed := s.fixedSizeSSZ()
	return fixed + validatorSize*len(s.Validators) + 8*len(s.Balances)
}

func (s *BeaconState) fixedSizeSSZ() int {
	return 240 + 32*len(s.RandaoMixes) + 4 + 4 +
		s.CurrentSyncCommittee.sizeSSZ() + s.NextSyncCommittee.sizeSSZ()
}

// MarshalSSZ serializes the state.
func (s *BeaconState) MarshalSSZ() ([]byte, error) {
	return s.MarshalSSZTo(make([]byte, 0, s.SizeSSZ()))
}

// MarshalSSZTo serializes the state appending to dst.
func (s *BeaconState) MarshalSSZTo(dst []byte) ([]byte, error) {
	if s.CurrentSyncCommittee == nil || s.NextSyncCommittee == nil {
		return nil, fmt.Errorf("state has no sync committees")
	}
	offset := s.fixedSizeSSZ()

	dst = fssz.MarshalUint64(dst, s.GenesisTime)
	dst = append(dst, s.GenesisValidatorsRoot[:]...)
	dst = s.Fork.MarshalSSZTo(dst)
	dst = s.Eth1Data.MarshalSSZTo(dst)
	dst = s.LatestBlockHeader.MarshalSSZTo(dst)
	for i := range s.RandaoMixes {
		dst = append(dst, s.RandaoMixes[i][:]...)
	}
	dst = fssz.WriteOffset(dst, offset)
	offset += validatorSize * len(s.Validators)
	dst = fssz.WriteOffset(dst, offset)
	dst = s.CurrentSyncCommittee.MarshalSSZTo(dst)
	dst = s.NextSyncCommittee.MarshalSSZTo(dst)

	for _, v := range s.Validators {
		dst = v.MarshalSSZTo(dst)
	}
	for _, b := range s.Balances {
		dst = fssz.MarshalUint64(dst, uint64(b))
	}
	return dst, nil
}

// UnmarshalBeaconState decodes a state serialized by MarshalSSZ. The
// randao vector length and sync committee size are network parameters
// and must match the encoding side's configuration.
func UnmarshalBeaconState(buf []byte, epochsPerHistoricalVector, syncCommitteeSize uint64) (*BeaconState, error) {
	s := &BeaconState{
		RandaoMixes:          make([]Hash32, epochsPerHistoricalVector),
		CurrentSyncCommittee: &SyncCommittee{},
		NextSyncCommittee:    &SyncCommittee{},
	}
	committeeSize := int(48*syncCommitteeSize + 48)
	fixed := 240 + 32*int(epochsPerHistoricalVector) + 8 + 2*committeeSize
	if len(buf) < fixed {
		return nil, fssz.ErrSize
	}

	s.GenesisTime = fssz.UnmarshallUint64(buf[0:8])
	copy(s.GenesisValidatorsRoot[:], buf[8:40])
	if err := s.Fork.UnmarshalSSZ(buf[40:56]); err != nil {
		return nil, err
	}
	if err := s.Eth1Data.UnmarshalSSZ(buf[56:128]); err != nil {
		return nil, err
	}
	if err := s.LatestBlockHeader.UnmarshalSSZ(buf[128:240]); err != nil {
		return nil, err
	}
	pos := 240
	for i := range s.RandaoMixes {
		copy(s.RandaoMixes[i][:], buf[pos:pos+32])
		pos += 32
	}
	o1 := fssz.ReadOffset(buf[pos : pos+4])
	o2 := fssz.ReadOffset(buf[pos+4 : pos+8])
	pos += 8
	if err := s.CurrentSyncCommittee.unmarshalSSZ(buf[pos:pos+committeeSize], int(syncCommitteeSize)); err != nil {
		return nil, err
	}
	pos += committeeSize
	if err := s.NextSyncCommittee.unmarshalSSZ(buf[pos:pos+committeeSize], int(syncCommitteeSize)); err != nil {
		return nil, err
	}
	pos += committeeSize

	if o1 != uint64(fixed) || o2 < o1 || o2 > uint64(len(buf)) {
		return nil, fssz.ErrOffset
	}
	if (o2-o1)%validatorSize != 0 || (uint64(len(buf))-o2)%8 != 0 {
		return nil, fssz.ErrSize
	}
	nVals := (o2 - o1) / validatorSize
	nBals := (uint64(len(buf)) - o2) / 8
	s.Validators = make([]*Validator, nVals)
	for i := uint64(0); i < nVals; i++ {
		v := &Validator{}
		if err := v.UnmarshalSSZ(buf[o1+i*validatorSize : o1+(i+1)*validatorSize]); err != nil {
			return nil, err
		}
		s.Validators[i] = v
	}
	s.Balances = make([]Gwei, nBals)
	for i := uint64(0); i < nBals; i++ {
		s.Balances[i] = Gwei(fssz.UnmarshallUint64(buf[o2+i*8 : o2+(i+1)*8]))
	}
	return s, nil
}
