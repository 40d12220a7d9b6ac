package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

// InsertBlocks stores decoded block header rows.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_blocks", firstNetwork(blocks), err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	const query = `
INSERT INTO rawtx_blocks (
	network,
	height,
	hash,
	version,
	prev_block,
	merkle_root,
	timestamp,
	bits,
	nonce,
	size,
	tx_count
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		if err = batch.Append(
			string(block.Network),
			block.Height,
			block.Hash,
			block.Version,
			block.PrevBlock,
			block.MerkleRoot,
			block.Timestamp,
			block.Bits,
			block.Nonce,
			block.Size,
			block.TxCount,
		); err != nil {
			return fmt.Errorf("append block: %w", err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}
