package clickhouse

import (
	"time"

	"github.com/golang/mock/gomock"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

func (s *RepositorySuite) TestInsertBlocks() {
	now := time.Now().UTC().Truncate(time.Second)
	blocks := []model.Block{
		newBlock(0, "a", now),
		newBlock(1, "b", now.Add(time.Second)),
	}

	s.metrics.EXPECT().Observe("insert_blocks", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertBlocks(s.testCtx, blocks))
	s.Equal(uint64(len(blocks)), s.countRows("rawtx_blocks"))
}

func (s *RepositorySuite) TestInsertBlocksRoundTripsHeaderFields() {
	now := time.Now().UTC().Truncate(time.Second)
	block := newBlock(170, "c", now)
	block.Version = 2
	block.Bits = 0x1b04864c
	block.Nonce = 274148111

	s.metrics.EXPECT().Observe("insert_blocks", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertBlocks(s.testCtx, []model.Block{block}))

	rows, err := s.repo.conn.Query(s.testCtx, `
SELECT hash, version, bits, nonce, timestamp
FROM rawtx_blocks
WHERE network = ? AND height = ?`, model.Mainnet, block.Height)
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(rows.Close())
	}()

	var (
		hash    string
		version int32
		bits    uint32
		nonce   uint32
		ts      time.Time
	)
	s.Require().True(rows.Next())
	s.Require().NoError(rows.Scan(&hash, &version, &bits, &nonce, &ts))
	s.Equal(block.Hash, hash)
	s.Equal(block.Version, version)
	s.Equal(block.Bits, bits)
	s.Equal(block.Nonce, nonce)
	s.Equal(block.Timestamp, ts.UTC())
}
