package consensus

import (
	"errors"
	"fmt"

	"github.com/geanlabs/beam/config"
	"github.com/geanlabs/beam/crypto/bls"
	"github.com/geanlabs/beam/ssz"
	"github.com/geanlabs/beam/types"
)

// ErrRegistryFull is returned when admitting a deposit would grow the
// validator registry past its limit.
var ErrRegistryFull = errors.New("consensus: validator registry full")

// ErrDepositSignature marks a deposit whose proof of possession failed.
// Such a deposit is rejected without touching the state; the caller
// skips it and continues the batch.
var ErrDepositSignature = errors.New("consensus: invalid deposit signature")

// ProcessDeposit admits a single deposit without checking its proof of
// possession: a deposit for an unknown pubkey appends a new validator, a
// deposit for a known pubkey tops up its balance. Genesis construction
// uses this entry point; deposits reaching genesis are already validated
// upstream by the anchor block, so their signatures are not re-checked.
func ProcessDeposit(state *types.BeaconState, deposit *types.Deposit, cfg *config.Config) error {
	data := &deposit.Data
	index, known := state.ValidatorIndexByPubkey(data.Pubkey)
	if known {
		state.Balances[index] += data.Amount
		return nil
	}
	if uint64(len(state.Validators)) >= cfg.ValidatorRegistryLimit {
		return ErrRegistryFull
	}
	state.Validators = append(state.Validators, &types.Validator{
		Pubkey:                     data.Pubkey,
		WithdrawalCredentials:      data.WithdrawalCredentials,
		ActivationEligibilityEpoch: types.FarFutureEpoch,
		ActivationEpoch:            types.FarFutureEpoch,
		ExitEpoch:                  types.FarFutureEpoch,
		WithdrawableEpoch:          types.FarFutureEpoch,
	})
	state.Balances = append(state.Balances, data.Amount)
	return nil
}

// ApplyDeposit is the block-processing entry point: a deposit for an
// unknown pubkey must carry a valid proof of possession, and a bad
// signature rejects that single deposit with ErrDepositSignature,
// leaving the state untouched. Top-ups for known pubkeys skip the check,
// since the registered validator already proved key possession.
//
// Spec pseudocode definition:
//
//	def apply_deposit(state, pubkey, withdrawal_credentials, amount, signature):
//	  validator_pubkeys = [v.pubkey for v in state.validators]
//	  if pubkey not in validator_pubkeys:
//	      if is_valid_deposit_signature(pubkey, withdrawal_credentials, amount, signature):
//	          add_validator_to_registry(state, pubkey, withdrawal_credentials, amount)
//	  else:
//	      index = ValidatorIndex(validator_pubkeys.index(pubkey))
//	      increase_balance(state, index, amount)
func ApplyDeposit(state *types.BeaconState, deposit *types.Deposit, cfg *config.Config) error {
	if _, known := state.ValidatorIndexByPubkey(deposit.Data.Pubkey); !known {
		if err := verifyDepositSignature(&deposit.Data, cfg); err != nil {
			return err
		}
	}
	return ProcessDeposit(state, deposit, cfg)
}

// verifyDepositSignature checks the proof of possession over the deposit
// message. Deposit domains are computed against the genesis fork version
// with a zeroed genesis validators root, so deposits stay valid across
// forks.
func verifyDepositSignature(data *types.DepositData, cfg *config.Config) error {
	message := &types.DepositMessage{
		Pubkey:                data.Pubkey,
		WithdrawalCredentials: data.WithdrawalCredentials,
		Amount:                data.Amount,
	}
	messageRoot, err := message.HashTreeRoot()
	if err != nil {
		return fmt.Errorf("deposit message root: %w", err)
	}
	domain := ComputeDomain(cfg.DomainDeposit, cfg.GenesisForkVersion, types.Root{})
	root := ComputeSigningRoot(messageRoot, domain)
	if !bls.Verify(data.Signature, root[:], data.Pubkey) {
		return ErrDepositSignature
	}
	return nil
}

// VerifyDepositProof checks a deposit's Merkle branch against the deposit
// root the state currently holds. index is the deposit's position in the
// eth1 deposit tree, the admitting caller's processing cursor; Merkle
// branches are index-specific, so the same proof fails at any other
// position. The branch covers the full contract tree depth plus the
// length mix-in.
func VerifyDepositProof(state *types.BeaconState, deposit *types.Deposit, index uint64) error {
	if index >= state.Eth1Data.DepositCount {
		return fmt.Errorf("consensus: deposit index %d outside tree of %d", index, state.Eth1Data.DepositCount)
	}
	leaf, err := deposit.Data.HashTreeRoot()
	if err != nil {
		return fmt.Errorf("deposit data root: %w", err)
	}
	if !ssz.VerifyMerkleBranch(leaf, deposit.Proof[:], index, state.Eth1Data.DepositRoot) {
		return errors.New("consensus: deposit proof does not match eth1 deposit root")
	}
	return nil
}
