package service

import (
	"context"
	"sort"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

type missingHeightFetcher struct {
	repository Repository
	source     Source
	network    model.Network
	limit      uint64
}

func (f *missingHeightFetcher) Fetch(ctx context.Context) ([]uint64, error) {
	latest, err := f.source.LatestHeight(ctx)
	if err != nil {
		return nil, err
	}

	heights, err := f.repository.RandomMissingBlockHeights(ctx, f.network, latest, f.limit)
	if err != nil {
		return nil, err
	}

	sort.Slice(heights, func(i, j int) bool { return heights[i] < heights[j] })
	return heights, nil
}
