package types

import "github.com/holiman/uint256"

// SSZ containers. Hash tree roots and serialization are hand-rolled in
// hashing.go and encoding.go on top of fastssz helpers; the tags document
// the wire shape.

// Fork identifies the active fork version window.
type Fork struct {
	PreviousVersion Version `ssz-size:"4"`
	CurrentVersion  Version `ssz-size:"4"`
	Epoch           Epoch
}

// Eth1Data anchors the beacon state to an execution-layer block and the
// deposit tree as of that block.
type Eth1Data struct {
	DepositRoot  Root `ssz-size:"32"`
	DepositCount uint64
	BlockHash    Hash32 `ssz-size:"32"`
}

// DepositData is the validator-supplied part of a deposit.
type DepositData struct {
	Pubkey                BLSPubkey `ssz-size:"48"`
	WithdrawalCredentials Root      `ssz-size:"32"`
	Amount                Gwei
	Signature             BLSSignature `ssz-size:"96"`
}

// DepositMessage is DepositData without the signature; its hash tree root
// is what the deposit signature commits to.
type DepositMessage struct {
	Pubkey                BLSPubkey `ssz-size:"48"`
	WithdrawalCredentials Root      `ssz-size:"32"`
	Amount                Gwei
}

// Deposit is a deposit record with its Merkle inclusion proof against the
// deposit tree root. The proof has one node per tree level plus the
// length mix-in.
type Deposit struct {
	Proof [DepositContractTreeDepth + 1]Hash32 `ssz-size:"33,32"`
	Data  DepositData
}

// SigningData binds an object root to a signing domain.
type SigningData struct {
	ObjectRoot Root   `ssz-size:"32"`
	Domain     Domain `ssz-size:"32"`
}

// Validator is the registry record derived from deposits.
type Validator struct {
	Pubkey                     BLSPubkey `ssz-size:"48"`
	WithdrawalCredentials      Root      `ssz-size:"32"`
	EffectiveBalance           Gwei
	Slashed                    bool
	ActivationEligibilityEpoch Epoch
	ActivationEpoch            Epoch
	ExitEpoch                  Epoch
	WithdrawableEpoch          Epoch
}

// IsActive reports whether the validator is active at the given epoch.
func (v *Validator) IsActive(epoch Epoch) bool {
	return v.ActivationEpoch <= epoch && epoch < v.ExitEpoch
}

// BeaconBlockHeader summarizes a block without its body.
type BeaconBlockHeader struct {
	Slot          Slot
	ProposerIndex ValidatorIndex
	ParentRoot    Root `ssz-size:"32"`
	StateRoot     Root `ssz-size:"32"`
	BodyRoot      Root `ssz-size:"32"`
}

// SyncCommittee is the rotating signing committee. Pubkeys has exactly
// the configured sync committee size and may contain duplicates for
// small validator sets.
type SyncCommittee struct {
	Pubkeys         []BLSPubkey `ssz-size:"?,48"`
	AggregatePubkey BLSPubkey   `ssz-size:"48"`
}

// Withdrawal is a validator balance withdrawal included in an execution
// payload.
type Withdrawal struct {
	Index          uint64
	ValidatorIndex ValidatorIndex
	Address        ExecutionAddress `ssz-size:"20"`
	Amount         Gwei
}

// ExecutionPayload is the execution-layer block body proposed by a beacon
// block. It crosses the engine boundary as JSON and is never SSZ-hashed
// here; the block hash check rebuilds the execution header instead.
type ExecutionPayload struct {
	ParentHash    Hash32 `ssz-size:"32"`
	FeeRecipient  ExecutionAddress
	StateRoot     Root `ssz-size:"32"`
	ReceiptsRoot  Root `ssz-size:"32"`
	LogsBloom     LogsBloom
	PrevRandao    Hash32 `ssz-size:"32"`
	BlockNumber   uint64
	GasLimit      uint64
	GasUsed       uint64
	Timestamp     uint64
	ExtraData     []byte `ssz-max:"32"`
	BaseFeePerGas *uint256.Int
	BlockHash     Hash32   `ssz-size:"32"`
	Transactions  [][]byte `ssz-max:"1048576,1073741824"`
	Withdrawals   []Withdrawal
	BlobGasUsed   uint64
	ExcessBlobGas uint64
}
