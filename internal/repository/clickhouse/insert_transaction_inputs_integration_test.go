package clickhouse

import (
	"strings"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/goodnatureofminers/txsplit7000-backend/internal/model"
)

func (s *RepositorySuite) TestInsertTransactionInputs() {
	now := time.Now().UTC().Truncate(time.Second)
	inputs := []model.TransactionInput{
		{
			Network:       model.Mainnet,
			BlockHeight:   170,
			BlockTime:     now,
			TxID:          strings.Repeat("a", 64),
			Index:         0,
			PrevTxID:      strings.Repeat("b", 64),
			PrevVout:      0,
			ScriptSigSize: 72,
			ScriptSig:     "4730440220",
			Sequence:      0xffffffff,
			IsCoinbase:    false,
			Witness:       []string{"3044022001", "02c1"},
		},
		{
			Network:     model.Mainnet,
			BlockHeight: 170,
			BlockTime:   now,
			TxID:        strings.Repeat("a", 64),
			Index:       1,
			PrevTxID:    strings.Repeat("0", 64),
			PrevVout:    0xffffffff,
			ScriptSig:   "04ffff001d",
			Sequence:    0xffffffff,
			IsCoinbase:  true,
		},
	}

	s.metrics.EXPECT().Observe("insert_transaction_inputs", model.Mainnet, gomock.Nil(), gomock.Any()).Times(1)

	s.Require().NoError(s.repo.InsertTransactionInputs(s.testCtx, inputs))
	s.Equal(uint64(len(inputs)), s.countRows("rawtx_inputs"))

	rows, err := s.repo.conn.Query(s.testCtx, `
SELECT witness, is_coinbase
FROM rawtx_inputs
WHERE network = ? AND txid = ? AND input_index = ?`, model.Mainnet, inputs[0].TxID, inputs[0].Index)
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(rows.Close())
	}()

	var (
		witness    []string
		isCoinbase bool
	)
	s.Require().True(rows.Next())
	s.Require().NoError(rows.Scan(&witness, &isCoinbase))
	s.Equal(inputs[0].Witness, witness)
	s.False(isCoinbase)
}
