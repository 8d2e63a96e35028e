package engine

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/geanlabs/beam/types"
)

// Engine API wire forms. Quantities are 0x-prefixed hex per the
// execution API spec, which hexutil gives us for free.

type executionPayloadJSON struct {
	ParentHash    common.Hash      `json:"parentHash"`
	FeeRecipient  common.Address   `json:"feeRecipient"`
	StateRoot     common.Hash      `json:"stateRoot"`
	ReceiptsRoot  common.Hash      `json:"receiptsRoot"`
	LogsBloom     hexutil.Bytes    `json:"logsBloom"`
	PrevRandao    common.Hash      `json:"prevRandao"`
	BlockNumber   hexutil.Uint64   `json:"blockNumber"`
	GasLimit      hexutil.Uint64   `json:"gasLimit"`
	GasUsed       hexutil.Uint64   `json:"gasUsed"`
	Timestamp     hexutil.Uint64   `json:"timestamp"`
	ExtraData     hexutil.Bytes    `json:"extraData"`
	BaseFeePerGas *hexutil.Big     `json:"baseFeePerGas"`
	BlockHash     common.Hash      `json:"blockHash"`
	Transactions  []hexutil.Bytes  `json:"transactions"`
	Withdrawals   []withdrawalJSON `json:"withdrawals"`
	BlobGasUsed   hexutil.Uint64   `json:"blobGasUsed"`
	ExcessBlobGas hexutil.Uint64   `json:"excessBlobGas"`
}

type withdrawalJSON struct {
	Index          hexutil.Uint64 `json:"index"`
	ValidatorIndex hexutil.Uint64 `json:"validatorIndex"`
	Address        common.Address `json:"address"`
	Amount         hexutil.Uint64 `json:"amount"`
}

type payloadStatusJSON struct {
	Status          string       `json:"status"`
	LatestValidHash *common.Hash `json:"latestValidHash"`
	ValidationError *string      `json:"validationError"`
}

func payloadToJSON(p *types.ExecutionPayload) *executionPayloadJSON {
	out := &executionPayloadJSON{
		ParentHash:    common.Hash(p.ParentHash),
		FeeRecipient:  common.Address(p.FeeRecipient),
		StateRoot:     common.Hash(p.StateRoot),
		ReceiptsRoot:  common.Hash(p.ReceiptsRoot),
		LogsBloom:     hexutil.Bytes(p.LogsBloom[:]),
		PrevRandao:    common.Hash(p.PrevRandao),
		BlockNumber:   hexutil.Uint64(p.BlockNumber),
		GasLimit:      hexutil.Uint64(p.GasLimit),
		GasUsed:       hexutil.Uint64(p.GasUsed),
		Timestamp:     hexutil.Uint64(p.Timestamp),
		ExtraData:     hexutil.Bytes(p.ExtraData),
		BaseFeePerGas: (*hexutil.Big)(p.BaseFeePerGas.ToBig()),
		BlockHash:     common.Hash(p.BlockHash),
		Transactions:  make([]hexutil.Bytes, len(p.Transactions)),
		Withdrawals:   make([]withdrawalJSON, len(p.Withdrawals)),
		BlobGasUsed:   hexutil.Uint64(p.BlobGasUsed),
		ExcessBlobGas: hexutil.Uint64(p.ExcessBlobGas),
	}
	for i, tx := range p.Transactions {
		out.Transactions[i] = hexutil.Bytes(tx)
	}
	for i, w := range p.Withdrawals {
		out.Withdrawals[i] = withdrawalJSON{
			Index:          hexutil.Uint64(w.Index),
			ValidatorIndex: hexutil.Uint64(w.ValidatorIndex),
			Address:        common.Address(w.Address),
			Amount:         hexutil.Uint64(w.Amount),
		}
	}
	return out
}
