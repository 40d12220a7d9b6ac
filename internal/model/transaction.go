package model

import "time"

// Transaction carries identity and size figures recomputed from the raw
// serialization of a transaction.
type Transaction struct {
	Network     Network
	BlockHeight uint64
	BlockTime   time.Time
	TxID        string
	WTxID       string
	Version     int32
	SegWit      bool
	Flag        uint8
	Size        uint32
	VSize       uint32
	Weight      uint32
	LockTime    uint32
	InputCount  uint32
	OutputCount uint32
}

// TransactionInput is one decoded input row, witness items included.
type TransactionInput struct {
	Network       Network
	BlockHeight   uint64
	BlockTime     time.Time
	TxID          string
	Index         uint32
	PrevTxID      string
	PrevVout      uint32
	ScriptSigSize uint32
	ScriptSig     string
	Sequence      uint32
	IsCoinbase    bool
	Witness       []string
}

// TransactionOutput is one decoded output row.
type TransactionOutput struct {
	Network      Network
	BlockHeight  uint64
	BlockTime    time.Time
	TxID         string
	Index        uint32
	Value        uint64
	PkScriptSize uint32
	PkScript     string
}
