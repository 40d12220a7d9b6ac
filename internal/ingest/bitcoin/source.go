package bitcoin

import (
	"context"
	"fmt"
	"math"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/ingest/chain"
	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
	"github.com/goodnatureofminers/txsplit7000-backend/pkg/safe"
)

// Source implements chain.Source against a bitcoin node.
type Source struct {
	rpc     NodeClient
	network model.Network
}

// NewSource creates a Source for the given network.
func NewSource(rpc NodeClient, network model.Network) *Source {
	return &Source{
		rpc:     rpc,
		network: network,
	}
}

// LatestHeight returns the node's best block height.
func (s *Source) LatestHeight(_ context.Context) (uint64, error) {
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, err
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchBlock retrieves the block at height and re-decodes every transaction
// from its raw hex.
func (s *Source) FetchBlock(ctx context.Context, height uint64) (*chain.DecodedBlock, error) {
	if height > math.MaxInt64 {
		return nil, fmt.Errorf("block height %d exceeds rpc limit", height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash, err := s.rpc.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	src, err := s.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}

	block, err := BuildBlock(*src, s.network)
	if err != nil {
		return nil, err
	}
	txs, inputs, outputs, err := ConvertTransactions(*src, block)
	if err != nil {
		return nil, err
	}

	return &chain.DecodedBlock{
		Block:   block,
		Txs:     txs,
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}
