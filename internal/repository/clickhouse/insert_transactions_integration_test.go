package clickhouse

import (
	"strings"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

func (s *RepositorySuite) TestInsertTransactions() {
	now := time.Now().UTC().Truncate(time.Second)
	txs := []model.Transaction{
		newTransaction(0, "a", now),
		newTransaction(1, "b", now.Add(time.Second)),
	}

	s.metrics.EXPECT().Observe("insert_transactions", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactions(s.testCtx, txs))
	s.Equal(uint64(len(txs)), s.countRows("rawtx_transactions"))
}

func (s *RepositorySuite) TestInsertTransactionsKeepsWitnessIdentity() {
	now := time.Now().UTC().Truncate(time.Second)
	tx := newTransaction(481824, "c", now)
	tx.SegWit = true
	tx.Flag = 1
	tx.WTxID = strings.Repeat("d", 64)
	tx.Size = 218
	tx.VSize = 137
	tx.Weight = 545

	s.metrics.EXPECT().Observe("insert_transactions", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactions(s.testCtx, []model.Transaction{tx}))

	rows, err := s.repo.conn.Query(s.testCtx, `
SELECT wtxid, is_segwit, flag, vsize, weight
FROM rawtx_transactions
WHERE network = ? AND txid = ?`, model.Mainnet, tx.TxID)
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(rows.Close())
	}()

	var (
		wtxid    string
		isSegwit bool
		flag     uint8
		vsize    uint32
		weight   uint32
	)
	s.Require().True(rows.Next())
	s.Require().NoError(rows.Scan(&wtxid, &isSegwit, &flag, &vsize, &weight))
	s.Equal(tx.WTxID, wtxid)
	s.True(isSegwit)
	s.Equal(tx.Flag, flag)
	s.Equal(tx.VSize, vsize)
	s.Equal(tx.Weight, weight)
}
