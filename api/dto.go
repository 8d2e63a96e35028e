package api

import "github.com/geanlabs/beam/types"

// GenesisDetails is the response body of /eth/v1/beacon/genesis.
type GenesisDetails struct {
	GenesisTime           Uint64String  `json:"genesis_time"`
	GenesisValidatorsRoot types.Root    `json:"genesis_validators_root"`
	GenesisForkVersion    types.Version `json:"genesis_fork_version"`
}

// DepositContract describes the deposit contract the node follows.
type DepositContract struct {
	ChainId Uint64String `json:"chain_id"`
	Address string       `json:"address"`
}

// DepositSnapshot is an EIP-4881 snapshot of the deposit tree: the
// finalized frontier nodes plus enough metadata to resume the tree.
type DepositSnapshot struct {
	Finalized            []types.Root `json:"finalized"`
	DepositRoot          types.Root   `json:"deposit_root"`
	DepositCount         Uint64String `json:"deposit_count"`
	ExecutionBlockHash   types.Hash32 `json:"execution_block_hash"`
	ExecutionBlockHeight Uint64String `json:"execution_block_height"`
}

// RootData wraps a single root, the smallest response shape in the API.
type RootData struct {
	Root types.Root `json:"root"`
}

// Checkpoint pairs an epoch with the block root it points at.
type Checkpoint struct {
	Epoch Uint64String `json:"epoch"`
	Root  types.Root   `json:"root"`
}

// FinalityCheckpoints is the response body of
// /eth/v1/beacon/states/{state_id}/finality_checkpoints.
type FinalityCheckpoints struct {
	PreviousJustified Checkpoint `json:"previous_justified"`
	CurrentJustified  Checkpoint `json:"current_justified"`
	Finalized         Checkpoint `json:"finalized"`
}

// ValidatorStatus is the lifecycle label the API derives from a
// validator's epochs and the current epoch.
type ValidatorStatus string

const (
	StatusPendingInitialized ValidatorStatus = "pending_initialized"
	StatusPendingQueued      ValidatorStatus = "pending_queued"
	StatusActiveOngoing      ValidatorStatus = "active_ongoing"
	StatusActiveExiting      ValidatorStatus = "active_exiting"
	StatusActiveSlashed      ValidatorStatus = "active_slashed"
	StatusExitedUnslashed    ValidatorStatus = "exited_unslashed"
	StatusExitedSlashed      ValidatorStatus = "exited_slashed"
	StatusWithdrawalPossible ValidatorStatus = "withdrawal_possible"
	StatusWithdrawalDone     ValidatorStatus = "withdrawal_done"
)

// ValidatorInfo mirrors the registry entry inside a validator response.
type ValidatorInfo struct {
	Pubkey                     types.BLSPubkey `json:"pubkey"`
	WithdrawalCredentials      types.Root      `json:"withdrawal_credentials"`
	EffectiveBalance           Uint64String    `json:"effective_balance"`
	Slashed                    bool            `json:"slashed"`
	ActivationEligibilityEpoch Uint64String    `json:"activation_eligibility_epoch"`
	ActivationEpoch            Uint64String    `json:"activation_epoch"`
	ExitEpoch                  Uint64String    `json:"exit_epoch"`
	WithdrawableEpoch          Uint64String    `json:"withdrawable_epoch"`
}

// ValidatorSummary is one element of a
// /eth/v1/beacon/states/{state_id}/validators response.
type ValidatorSummary struct {
	Index     Uint64String    `json:"index"`
	Balance   Uint64String    `json:"balance"`
	Status    ValidatorStatus `json:"status"`
	Validator ValidatorInfo   `json:"validator"`
}

// SyncStatus is the response body of /eth/v1/node/syncing.
type SyncStatus struct {
	HeadSlot     Uint64String `json:"head_slot"`
	SyncDistance Uint64String `json:"sync_distance"`
	IsSyncing    bool         `json:"is_syncing"`
	IsOptimistic bool         `json:"is_optimistic"`
	ElOffline    bool         `json:"el_offline"`
}

// PeerSummary is one element of a /eth/v1/node/peers response.
type PeerSummary struct {
	PeerId             string `json:"peer_id"`
	Enr                string `json:"enr,omitempty"`
	LastSeenP2pAddress string `json:"last_seen_p2p_address"`
	State              string `json:"state"`
	Direction          string `json:"direction"`
}

// ProposerDuty is one element of a proposer duties response.
type ProposerDuty struct {
	Pubkey         types.BLSPubkey `json:"pubkey"`
	ValidatorIndex Uint64String    `json:"validator_index"`
	Slot           Uint64String    `json:"slot"`
}

// AttestationDuty is one element of an attester duties response.
type AttestationDuty struct {
	Pubkey                  types.BLSPubkey `json:"pubkey"`
	ValidatorIndex          Uint64String    `json:"validator_index"`
	CommitteeIndex          Uint64String    `json:"committee_index"`
	CommitteeLength         Uint64String    `json:"committee_length"`
	CommitteesAtSlot        Uint64String    `json:"committees_at_slot"`
	ValidatorCommitteeIndex Uint64String    `json:"validator_committee_index"`
	Slot                    Uint64String    `json:"slot"`
}

// SyncCommitteeDuty is one element of a sync committee duties response.
type SyncCommitteeDuty struct {
	Pubkey                        types.BLSPubkey `json:"pubkey"`
	ValidatorIndex                Uint64String    `json:"validator_index"`
	ValidatorSyncCommitteeIndices []Uint64String  `json:"validator_sync_committee_indices"`
}

// CommitteeDescriptor is one element of a
// /eth/v1/beacon/states/{state_id}/committees response.
type CommitteeDescriptor struct {
	Index      Uint64String   `json:"index"`
	Slot       Uint64String   `json:"slot"`
	Validators []Uint64String `json:"validators"`
}

// SyncCommitteeDescriptor is the response body of
// /eth/v1/beacon/states/{state_id}/sync_committees.
type SyncCommitteeDescriptor struct {
	Validators          []Uint64String   `json:"validators"`
	ValidatorAggregates [][]Uint64String `json:"validator_aggregates"`
}
