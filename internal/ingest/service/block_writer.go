package service

import (
	"context"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
	"github.com/goodnatureofminers/txsplit7000-backend/pkg/batcher"
	"go.uber.org/zap"
)

type blockWriter struct {
	repo         Repository
	logger       *zap.Logger
	blockBatcher *batcher.Batcher[model.InsertBlock]
}

func newBlockWriter(repo Repository, logger *zap.Logger) *blockWriter {
	w := &blockWriter{
		repo:   repo,
		logger: logger,
	}

	w.blockBatcher = batcher.New[model.InsertBlock](
		logger.Named("blockBatcher"),
		w.flush,
		blockBatcherCapacity,
		blockBatcherFlushInterval,
		blockBatcherFlushRate,
	)
	return w
}

func (w *blockWriter) Start(ctx context.Context) {
	w.blockBatcher.Start(ctx)
}

func (w *blockWriter) Stop() {
	w.blockBatcher.Stop()
}

func (w *blockWriter) WriteBlock(ctx context.Context, b model.InsertBlock) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return w.blockBatcher.Add(ctx, b)
}

// flush lands component rows before their blocks: a visible block height
// means every transaction, input, and output behind it is already stored.
func (w *blockWriter) flush(ctx context.Context, insertBlocks []model.InsertBlock) error {
	blocks := make([]model.Block, 0, len(insertBlocks))
	txs := make([]model.Transaction, 0, len(insertBlocks))
	inputs := make([]model.TransactionInput, 0, len(insertBlocks))
	outputs := make([]model.TransactionOutput, 0, len(insertBlocks))

	for _, block := range insertBlocks {
		blocks = append(blocks, block.Block)

		txs = append(txs, block.Txs...)
		if len(txs) >= transactionFlushThreshold {
			if err := w.repo.InsertTransactions(ctx, txs); err != nil {
				return err
			}
			w.logger.Debug("InsertTransactions", zap.Int("count", len(txs)))
			txs = txs[:0]
		}

		inputs = append(inputs, block.Inputs...)
		if len(inputs) >= inputFlushThreshold {
			if err := w.repo.InsertTransactionInputs(ctx, inputs); err != nil {
				return err
			}
			w.logger.Debug("InsertTransactionInputs", zap.Int("count", len(inputs)))
			inputs = inputs[:0]
		}

		outputs = append(outputs, block.Outputs...)
		if len(outputs) >= outputFlushThreshold {
			if err := w.repo.InsertTransactionOutputs(ctx, outputs); err != nil {
				return err
			}
			w.logger.Debug("InsertTransactionOutputs", zap.Int("count", len(outputs)))
			outputs = outputs[:0]
		}
	}

	if err := w.repo.InsertTransactions(ctx, txs); err != nil {
		return err
	}
	if err := w.repo.InsertTransactionInputs(ctx, inputs); err != nil {
		return err
	}
	if err := w.repo.InsertTransactionOutputs(ctx, outputs); err != nil {
		return err
	}

	return w.repo.InsertBlocks(ctx, blocks)
}
