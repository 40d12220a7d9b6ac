// Package chain defines the boundary between block sources and ingestion.
package chain

import (
	"context"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

// Source provides fully decoded blocks for ingestion.
type Source interface {
	LatestHeight(ctx context.Context) (uint64, error)
	FetchBlock(ctx context.Context, height uint64) (*DecodedBlock, error)
}

// DecodedBlock is one block flattened into storage rows.
type DecodedBlock struct {
	Block   model.Block
	Txs     []model.Transaction
	Inputs  []model.TransactionInput
	Outputs []model.TransactionOutput
}
