package clickhouse

import (
	"strings"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

func (s *RepositorySuite) TestInsertTransactionOutputs() {
	now := time.Now().UTC().Truncate(time.Second)
	outputs := []model.TransactionOutput{
		{
			Network:      model.Mainnet,
			BlockHeight:  170,
			BlockTime:    now,
			TxID:         strings.Repeat("a", 64),
			Index:        0,
			Value:        1000000000,
			PkScriptSize: 67,
			PkScript:     "4104ae1a62fe",
		},
		{
			Network:      model.Mainnet,
			BlockHeight:  170,
			BlockTime:    now,
			TxID:         strings.Repeat("a", 64),
			Index:        1,
			Value:        4000000000,
			PkScriptSize: 67,
			PkScript:     "410411db93e1",
		},
	}

	s.metrics.EXPECT().Observe("insert_transaction_outputs", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactionOutputs(s.testCtx, outputs))
	s.Equal(uint64(len(outputs)), s.countRows("rawtx_outputs"))

	rows, err := s.repo.conn.Query(s.testCtx, `
SELECT value, pk_script
FROM rawtx_outputs
WHERE network = ? AND txid = ? AND output_index = ?`, model.Mainnet, outputs[1].TxID, outputs[1].Index)
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(rows.Close())
	}()

	var (
		value    uint64
		pkScript string
	)
	s.Require().True(rows.Next())
	s.Require().NoError(rows.Scan(&value, &pkScript))
	s.Equal(outputs[1].Value, value)
	s.Equal(outputs[1].PkScript, pkScript)
}
