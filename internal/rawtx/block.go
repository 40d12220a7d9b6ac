package rawtx

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HeaderSize is the fixed wire size of a block header.
const HeaderSize = 80

// minTxSize is the smallest possible transaction footprint: version, two
// zero counts and a locktime.
const minTxSize = versionSize + 1 + 1 + lockTimeSize

// BlockHeader is the fixed 80-byte block prelude. Hashes are kept in wire
// byte order; Timestamp and Bits stay in their raw wire representation.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// Block is a decoded block: the header, the transaction count prefix and
// every transaction in block order.
type Block struct {
	Header  BlockHeader
	TxCount CompactSize
	Txs     []*Transaction
}

// DecodeHeader parses exactly one 80-byte header from buf.
func DecodeHeader(buf []byte) (*BlockHeader, error) {
	c := NewCursor(buf)
	h, err := decodeHeader(c)
	if err != nil {
		return nil, err
	}
	if c.Remaining() != 0 {
		return nil, fmt.Errorf("%d bytes after header: %w", c.Remaining(), ErrTrailingData)
	}
	return h, nil
}

// DecodeHeaderHex parses an 80-byte header from a hex string.
func DecodeHeaderHex(s string) (*BlockHeader, error) {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidEncoding)
	}
	return DecodeHeader(buf)
}

// DecodeBlock parses a full serialized block: header, transaction count and
// transactions, consuming buf exactly.
func DecodeBlock(buf []byte) (*Block, error) {
	c := NewCursor(buf)
	h, err := decodeHeader(c)
	if err != nil {
		return nil, err
	}
	b := &Block{Header: *h}
	if b.TxCount, err = takeCompactSize(c, "transaction count"); err != nil {
		return nil, err
	}
	if err := checkCount(c, b.TxCount.Value, minTxSize, "transaction count"); err != nil {
		return nil, err
	}
	b.Txs = make([]*Transaction, 0, b.TxCount.Value)
	for i := 0; i < int(b.TxCount.Value); i++ {
		tx, err := decodeTransaction(c)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		b.Txs = append(b.Txs, tx)
	}
	if c.Remaining() != 0 {
		return nil, fmt.Errorf("%d bytes after last transaction: %w", c.Remaining(), ErrTrailingData)
	}
	return b, nil
}

func decodeHeader(c *Cursor) (*BlockHeader, error) {
	var h BlockHeader
	version, err := takeUint32(c, "header version")
	if err != nil {
		return nil, err
	}
	h.Version = int32(version)
	raw, err := c.Take(chainhash.HashSize)
	if err != nil {
		return nil, fmt.Errorf("prev block hash: %w", err)
	}
	copy(h.PrevBlock[:], raw)
	if raw, err = c.Take(chainhash.HashSize); err != nil {
		return nil, fmt.Errorf("merkle root: %w", err)
	}
	copy(h.MerkleRoot[:], raw)
	if h.Timestamp, err = takeUint32(c, "timestamp"); err != nil {
		return nil, err
	}
	if h.Bits, err = takeUint32(c, "bits"); err != nil {
		return nil, err
	}
	if h.Nonce, err = takeUint32(c, "nonce"); err != nil {
		return nil, err
	}
	return &h, nil
}

// Serialize re-encodes the header into its 80-byte wire form.
func (h *BlockHeader) Serialize() []byte {
	buf := make([]byte, 0, HeaderSize)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Version))
	buf = append(buf, h.PrevBlock[:]...)
	buf = append(buf, h.MerkleRoot[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.Timestamp)
	buf = binary.LittleEndian.AppendUint32(buf, h.Bits)
	return binary.LittleEndian.AppendUint32(buf, h.Nonce)
}

// BlockHash returns the double-SHA256 of the serialized header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	return chainhash.DoubleHashH(h.Serialize())
}
