package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

func (s *RepositorySuite) TestRandomMissingBlockHeights() {
	now := time.Now().UTC().Truncate(time.Second)
	blocks := []model.Block{
		newBlock(0, "a", now),
		newBlock(1, "b", now.Add(time.Second)),
		newBlock(2, "c", now.Add(2*time.Second)),
		newBlock(4, "d", now.Add(3*time.Second)),
	}
	s.seedBlocks(blocks)

	s.metrics.EXPECT().Observe("random_missing_block_heights", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	missing, err := s.repo.RandomMissingBlockHeights(s.testCtx, model.Mainnet, 5, 2)
	s.Require().NoError(err)
	s.ElementsMatch([]uint64{3, 5}, missing)
}

func (s *RepositorySuite) TestRandomMissingBlockHeightsAllPresent() {
	now := time.Now().UTC().Truncate(time.Second)
	blocks := []model.Block{
		newBlock(0, "a", now),
		newBlock(1, "b", now.Add(time.Second)),
		newBlock(2, "c", now.Add(2*time.Second)),
		newBlock(3, "d", now.Add(3*time.Second)),
	}
	s.seedBlocks(blocks)

	s.metrics.EXPECT().Observe("random_missing_block_heights", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	missing, err := s.repo.RandomMissingBlockHeights(s.testCtx, model.Mainnet, 3, 5)
	s.Require().NoError(err)
	s.Empty(missing)
}

func (s *RepositorySuite) TestRandomMissingBlockHeightsIgnoresOtherNetworks() {
	now := time.Now().UTC().Truncate(time.Second)
	testnetBlock := newBlock(1, "e", now)
	testnetBlock.Network = model.Testnet3
	s.seedBlocks([]model.Block{newBlock(0, "a", now), testnetBlock})

	s.metrics.EXPECT().Observe("random_missing_block_heights", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	missing, err := s.repo.RandomMissingBlockHeights(s.testCtx, model.Mainnet, 1, 5)
	s.Require().NoError(err)
	s.ElementsMatch([]uint64{1}, missing)
}
