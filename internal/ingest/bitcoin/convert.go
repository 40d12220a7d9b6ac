// Package bitcoin feeds ingestion from a bitcoin node. Transaction structure
// always comes from re-decoding the raw bytes; the node's parsed view is only
// used for cross-checks.
package bitcoin

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
	"github.com/goodnatureofminers/txsplit7000-backend/internal/rawtx"
	"github.com/goodnatureofminers/txsplit7000-backend/pkg/safe"
)

// ParseBits parses the hex bits field into its compact 32-bit form.
func ParseBits(value string) (uint32, error) {
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(parsed), nil
}

// BuildBlock maps a verbose block result onto the storage model.
func BuildBlock(src btcjson.GetBlockVerboseTxResult, network model.Network) (model.Block, error) {
	bits, err := ParseBits(src.Bits)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d bits parse: %w", src.Height, err)
	}
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block height %d overflow: %w", src.Height, err)
	}
	size, err := safe.Uint32(src.Size)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d size overflow: %w", src.Height, err)
	}
	txCount, err := safe.Uint32(len(src.Tx))
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d tx count overflow: %w", src.Height, err)
	}

	return model.Block{
		Network:    network,
		Height:     height,
		Hash:       src.Hash,
		Version:    src.Version,
		PrevBlock:  src.PreviousHash,
		MerkleRoot: src.MerkleRoot,
		Timestamp:  time.Unix(src.Time, 0).UTC(),
		Bits:       bits,
		Nonce:      src.Nonce,
		Size:       size,
		TxCount:    txCount,
	}, nil
}

// ConvertTransactions decodes every raw transaction in src and flattens the
// result into storage rows. A txid recomputed from the bytes that disagrees
// with the node's aborts the whole block.
func ConvertTransactions(src btcjson.GetBlockVerboseTxResult, block model.Block) ([]model.Transaction, []model.TransactionInput, []model.TransactionOutput, error) {
	txs := make([]model.Transaction, 0, len(src.Tx))
	inputs := make([]model.TransactionInput, 0, len(src.Tx))
	outputs := make([]model.TransactionOutput, 0, 2*len(src.Tx))

	for _, raw := range src.Tx {
		decoded, err := rawtx.DecodeHex(raw.Hex)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("decode tx %s in block %d: %w", raw.Txid, block.Height, err)
		}
		txid := decoded.TxID().String()
		if txid != raw.Txid {
			return nil, nil, nil, fmt.Errorf("block %d: recomputed txid %s, node reports %s", block.Height, txid, raw.Txid)
		}

		tx, err := buildTransaction(decoded, txid, block)
		if err != nil {
			return nil, nil, nil, err
		}
		txs = append(txs, tx)
		inputs = append(inputs, buildInputs(decoded, txid, block)...)
		outputs = append(outputs, buildOutputs(decoded, txid, block)...)
	}
	return txs, inputs, outputs, nil
}

func buildTransaction(tx *rawtx.Transaction, txid string, block model.Block) (model.Transaction, error) {
	size, err := safe.Uint32(tx.SerializeSize())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s size overflow: %w", txid, err)
	}
	vsize, err := safe.Uint32(tx.VSize())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s vsize overflow: %w", txid, err)
	}
	weight, err := safe.Uint32(tx.Weight())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s weight overflow: %w", txid, err)
	}
	inputCount, err := safe.Uint32(len(tx.Inputs))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s input count overflow: %w", txid, err)
	}
	outputCount, err := safe.Uint32(len(tx.Outputs))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("tx %s output count overflow: %w", txid, err)
	}

	return model.Transaction{
		Network:     block.Network,
		BlockHeight: block.Height,
		BlockTime:   block.Timestamp,
		TxID:        txid,
		WTxID:       tx.WTxID().String(),
		Version:     tx.Version,
		SegWit:      tx.SegWit,
		Flag:        tx.Flag,
		Size:        size,
		VSize:       vsize,
		Weight:      weight,
		LockTime:    tx.LockTime,
		InputCount:  inputCount,
		OutputCount: outputCount,
	}, nil
}

func buildInputs(tx *rawtx.Transaction, txid string, block model.Block) []model.TransactionInput {
	rows := make([]model.TransactionInput, 0, len(tx.Inputs))
	for i, in := range tx.Inputs {
		row := model.TransactionInput{
			Network:       block.Network,
			BlockHeight:   block.Height,
			BlockTime:     block.Timestamp,
			TxID:          txid,
			Index:         uint32(i),
			PrevTxID:      in.PrevTxID.String(),
			PrevVout:      in.PrevVout,
			ScriptSigSize: uint32(len(in.ScriptSig)),
			ScriptSig:     hex.EncodeToString(in.ScriptSig),
			Sequence:      in.Sequence,
			IsCoinbase:    in.PrevTxID == (chainhash.Hash{}) && in.PrevVout == math.MaxUint32,
		}
		if i < len(tx.Witness) {
			row.Witness = witnessHex(tx.Witness[i])
		}
		rows = append(rows, row)
	}
	return rows
}

func witnessHex(stack rawtx.WitnessStack) []string {
	items := make([]string, 0, len(stack.Items))
	for _, item := range stack.Items {
		items = append(items, hex.EncodeToString(item.Data))
	}
	return items
}

func buildOutputs(tx *rawtx.Transaction, txid string, block model.Block) []model.TransactionOutput {
	rows := make([]model.TransactionOutput, 0, len(tx.Outputs))
	for i, out := range tx.Outputs {
		rows = append(rows, model.TransactionOutput{
			Network:      block.Network,
			BlockHeight:  block.Height,
			BlockTime:    block.Timestamp,
			TxID:         txid,
			Index:        uint32(i),
			Value:        out.Value,
			PkScriptSize: uint32(len(out.PkScript)),
			PkScript:     hex.EncodeToString(out.PkScript),
		})
	}
	return rows
}
