package model

// InsertBlock groups a decoded block with its flattened component rows for
// batch insertion.
type InsertBlock struct {
	Block   Block
	Txs     []Transaction
	Inputs  []TransactionInput
	Outputs []TransactionOutput
}
