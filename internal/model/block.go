// Package model defines domain models for decoded raw-transaction storage.
package model

import "time"

// Block describes a bitcoin block stored in ClickHouse. Header fields come
// from the node's verbose block response; the per-transaction rows behind a
// block are recomputed from raw bytes instead.
type Block struct {
	Network    Network
	Height     uint64
	Hash       string
	Version    int32
	PrevBlock  string
	MerkleRoot string
	Timestamp  time.Time
	Bits       uint32
	Nonce      uint32
	Size       uint32
	TxCount    uint32
}
