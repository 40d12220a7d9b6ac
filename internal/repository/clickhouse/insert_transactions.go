package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

// InsertTransactions stores decoded transaction rows.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.Transaction) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", firstNetwork(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	const query = `
INSERT INTO rawtx_transactions (
	network,
	block_height,
	block_time,
	txid,
	wtxid,
	version,
	is_segwit,
	flag,
	size,
	vsize,
	weight,
	locktime,
	input_count,
	output_count
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, tx := range txs {
		if err = batch.Append(
			string(tx.Network),
			tx.BlockHeight,
			tx.BlockTime,
			tx.TxID,
			tx.WTxID,
			tx.Version,
			tx.SegWit,
			tx.Flag,
			tx.Size,
			tx.VSize,
			tx.Weight,
			tx.LockTime,
			tx.InputCount,
			tx.OutputCount,
		); err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}
