package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

// InsertTransactionInputs stores decoded input rows, witness items included.
func (r *Repository) InsertTransactionInputs(ctx context.Context, inputs []model.TransactionInput) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transaction_inputs", firstNetwork(inputs), err, start)
	}()

	if len(inputs) == 0 {
		return nil
	}

	const query = `
INSERT INTO rawtx_inputs (
	network,
	block_height,
	block_time,
	txid,
	input_index,
	prev_txid,
	prev_vout,
	script_sig_size,
	script_sig,
	sequence,
	is_coinbase,
	witness
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transaction inputs batch: %w", err)
	}

	for _, input := range inputs {
		if err = batch.Append(
			string(input.Network),
			input.BlockHeight,
			input.BlockTime,
			input.TxID,
			input.Index,
			input.PrevTxID,
			input.PrevVout,
			input.ScriptSigSize,
			input.ScriptSig,
			input.Sequence,
			input.IsCoinbase,
			input.Witness,
		); err != nil {
			return fmt.Errorf("append transaction input: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transaction inputs: %w", err)
	}
	return nil
}
