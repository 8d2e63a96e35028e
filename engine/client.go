package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/golang-jwt/jwt/v4"

	"github.com/geanlabs/beam/types"
)

const (
	newPayloadMethod = "engine_newPayloadV3"

	// defaultCallTimeout bounds each engine call so a hung execution
	// client cannot stall block processing indefinitely.
	defaultCallTimeout = 8 * time.Second
)

// Engine API payload statuses.
const (
	statusValid            = "VALID"
	statusInvalid          = "INVALID"
	statusInvalidBlockHash = "INVALID_BLOCK_HASH"
	statusSyncing          = "SYNCING"
	statusAccepted         = "ACCEPTED"
)

// Client talks to an execution client over the authenticated engine API.
// The block hash and versioned hash checks run locally over the raw
// payload; only NotifyNewPayload goes over the wire.
type Client struct {
	rpc     *rpc.Client
	log     *slog.Logger
	timeout time.Duration
}

var _ ExecutionEngine = (*Client)(nil)

// NewClient dials the engine API at endpoint. A 32-byte jwtSecret
// enables the token auth execution clients require on their engine
// port; pass nil for an unauthenticated endpoint.
func NewClient(ctx context.Context, endpoint string, jwtSecret []byte, log *slog.Logger) (*Client, error) {
	var opts []rpc.ClientOption
	if len(jwtSecret) > 0 {
		if len(jwtSecret) != 32 {
			return nil, fmt.Errorf("engine: jwt secret must be 32 bytes, got %d", len(jwtSecret))
		}
		opts = append(opts, rpc.WithHTTPAuth(jwtAuth(append([]byte(nil), jwtSecret...))))
	}
	c, err := rpc.DialOptions(ctx, endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("engine: dial %s: %w", endpoint, err)
	}
	return &Client{rpc: c, log: log, timeout: defaultCallTimeout}, nil
}

// Close tears down the underlying RPC connection.
func (c *Client) Close() {
	c.rpc.Close()
}

// IsValidBlockHash reassembles the execution block header from the
// payload and checks that its hash matches the payload's declared block
// hash. A payload whose transactions do not even decode cannot hash to
// anything, so decode failures reject here too.
func (c *Client) IsValidBlockHash(ctx context.Context, req *NewPayloadRequest) error {
	p := req.ExecutionPayload
	txs, err := decodeTransactions(p.Transactions)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBlockHash, err)
	}
	withdrawals := make(gethtypes.Withdrawals, len(p.Withdrawals))
	for i, w := range p.Withdrawals {
		withdrawals[i] = &gethtypes.Withdrawal{
			Index:     w.Index,
			Validator: uint64(w.ValidatorIndex),
			Address:   common.Address(w.Address),
			Amount:    uint64(w.Amount),
		}
	}
	withdrawalsHash := gethtypes.DeriveSha(withdrawals, trie.NewStackTrie(nil))
	blobGasUsed := p.BlobGasUsed
	excessBlobGas := p.ExcessBlobGas
	parentBeaconRoot := common.Hash(req.ParentBeaconBlockRoot)
	header := &gethtypes.Header{
		ParentHash:       common.Hash(p.ParentHash),
		UncleHash:        gethtypes.EmptyUncleHash,
		Coinbase:         common.Address(p.FeeRecipient),
		Root:             common.Hash(p.StateRoot),
		TxHash:           gethtypes.DeriveSha(gethtypes.Transactions(txs), trie.NewStackTrie(nil)),
		ReceiptHash:      common.Hash(p.ReceiptsRoot),
		Bloom:            gethtypes.Bloom(p.LogsBloom),
		Difficulty:       common.Big0,
		Number:           new(big.Int).SetUint64(p.BlockNumber),
		GasLimit:         p.GasLimit,
		GasUsed:          p.GasUsed,
		Time:             p.Timestamp,
		Extra:            p.ExtraData,
		MixDigest:        common.Hash(p.PrevRandao),
		BaseFee:          p.BaseFeePerGas.ToBig(),
		WithdrawalsHash:  &withdrawalsHash,
		BlobGasUsed:      &blobGasUsed,
		ExcessBlobGas:    &excessBlobGas,
		ParentBeaconRoot: &parentBeaconRoot,
	}
	if got := header.Hash(); got != common.Hash(p.BlockHash) {
		c.log.Debug("payload block hash mismatch",
			"declared", p.BlockHash.String(), "computed", types.Hash32(got).String())
		return ErrInvalidBlockHash
	}
	return nil
}

// IsValidVersionedHashes checks that the request's versioned hashes are
// exactly the blob hashes of the payload's transactions, in transaction
// order.
func (c *Client) IsValidVersionedHashes(ctx context.Context, req *NewPayloadRequest) error {
	txs, err := decodeTransactions(req.ExecutionPayload.Transactions)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidVersionedHashes, err)
	}
	var derived []types.VersionedHash
	for _, tx := range txs {
		for _, h := range tx.BlobHashes() {
			derived = append(derived, types.VersionedHash(h))
		}
	}
	if len(derived) != len(req.VersionedHashes) {
		return fmt.Errorf("%w: %d hashes for %d blob commitments",
			ErrInvalidVersionedHashes, len(req.VersionedHashes), len(derived))
	}
	for i, h := range derived {
		if h != req.VersionedHashes[i] {
			return fmt.Errorf("%w: mismatch at index %d", ErrInvalidVersionedHashes, i)
		}
	}
	return nil
}

// NotifyNewPayload submits the payload over engine_newPayloadV3 and maps
// the status it gets back. Only VALID imports; SYNCING and ACCEPTED are
// treated as rejections because this core does not import optimistically,
// and a transport failure or timeout is indistinguishable from a
// rejection to the caller.
func (c *Client) NotifyNewPayload(ctx context.Context, req *NewPayloadRequest) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	hashes := make([]common.Hash, len(req.VersionedHashes))
	for i, h := range req.VersionedHashes {
		hashes[i] = common.Hash(h)
	}
	var status payloadStatusJSON
	err := c.rpc.CallContext(ctx, &status, newPayloadMethod,
		payloadToJSON(req.ExecutionPayload), hashes, common.Hash(req.ParentBeaconBlockRoot))
	if err != nil {
		c.log.Error("engine call failed", "method", newPayloadMethod, "err", err)
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	switch status.Status {
	case statusValid:
		return nil
	case statusInvalidBlockHash:
		return ErrInvalidBlockHash
	case statusInvalid:
		if status.ValidationError != nil {
			return fmt.Errorf("%w: %s", ErrInvalidPayload, *status.ValidationError)
		}
		return ErrInvalidPayload
	case statusSyncing, statusAccepted:
		c.log.Warn("execution client not synced for payload",
			"status", status.Status, "block_hash", req.ExecutionPayload.BlockHash.String())
		return fmt.Errorf("%w: execution client returned %s", ErrInvalidPayload, status.Status)
	default:
		return fmt.Errorf("%w: unknown payload status %q", ErrInvalidPayload, status.Status)
	}
}

// jwtAuth signs a fresh HS256 token per request, the scheme execution
// clients require on their engine port.
func jwtAuth(secret []byte) func(http.Header) error {
	return func(h http.Header) error {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iat": time.Now().Unix(),
		})
		signed, err := token.SignedString(secret)
		if err != nil {
			return fmt.Errorf("engine: sign jwt: %w", err)
		}
		h.Set("Authorization", "Bearer "+signed)
		return nil
	}
}

func decodeTransactions(raw [][]byte) (gethtypes.Transactions, error) {
	txs := make(gethtypes.Transactions, len(raw))
	for i, b := range raw {
		tx := new(gethtypes.Transaction)
		if err := tx.UnmarshalBinary(b); err != nil {
			return nil, fmt.Errorf("transaction %d: %v", i, err)
		}
		txs[i] = tx
	}
	return txs, nil
}
