// Package breaker deliberately corrupts block header fields to produce
// negative fixtures for decoder and validator testing.
package breaker

import (
	"fmt"
	"math"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/crypto/rand"
	"github.com/goodnatureofminers/txsplit7000-backend/internal/rawtx"
)

// Field names a block header field to corrupt.
type Field string

const (
	FieldVersion    Field = "version"
	FieldPrevBlock  Field = "prevblock"
	FieldMerkleRoot Field = "merkleroot"
	FieldTimestamp  Field = "timestamp"
	FieldBits       Field = "bits"
	FieldNonce      Field = "nonce"
	FieldAll        Field = "all"
)

const (
	// maxVersionValue replaces the version when no override is given.
	maxVersionValue = 0x3FFFFFFF
	// bitsMask flips the target mantissa while keeping the exponent byte.
	bitsMask = 0x00FFFFFF
	// yearSeconds pushes timestamps far past the two-hour future rule.
	yearSeconds = 31_536_000
)

// Config controls which fields are corrupted and how.
type Config struct {
	// Fields to corrupt; empty means FieldAll.
	Fields []Field
	// VersionOverride replaces the version instead of the default value.
	VersionOverride *int32
	// TimestampOffset shifts the original timestamp by a signed amount of
	// seconds instead of jumping a year past the present.
	TimestampOffset *int64
	// ZeroHashes zeroes hash fields instead of randomizing them.
	ZeroHashes bool
}

// Change records one corrupted field with printable before/after values.
type Change struct {
	Field  Field
	Before string
	After  string
}

// Processor applies configured corruptions to block headers.
type Processor struct {
	cfg Config
	now func() time.Time
}

// New constructs a Processor. An empty field list corrupts every field.
func New(cfg Config) *Processor {
	if len(cfg.Fields) == 0 {
		cfg.Fields = []Field{FieldAll}
	}
	return &Processor{cfg: cfg, now: time.Now}
}

// Break returns a corrupted copy of h along with the change log. The input
// header is left untouched.
func (p *Processor) Break(h rawtx.BlockHeader) (rawtx.BlockHeader, []Change) {
	changes := make([]Change, 0, 6)

	if p.enabled(FieldVersion) {
		before := h.Version
		h.Version = p.version()
		changes = append(changes, change(FieldVersion, fmt.Sprintf("%d", before), fmt.Sprintf("%d", h.Version)))
	}
	if p.enabled(FieldPrevBlock) {
		before := h.PrevBlock
		h.PrevBlock = p.hash()
		changes = append(changes, change(FieldPrevBlock, before.String(), h.PrevBlock.String()))
	}
	if p.enabled(FieldMerkleRoot) {
		before := h.MerkleRoot
		h.MerkleRoot = p.hash()
		changes = append(changes, change(FieldMerkleRoot, before.String(), h.MerkleRoot.String()))
	}
	if p.enabled(FieldTimestamp) {
		before := h.Timestamp
		h.Timestamp = p.timestamp(before)
		changes = append(changes, change(FieldTimestamp, fmt.Sprintf("%d", before), fmt.Sprintf("%d", h.Timestamp)))
	}
	if p.enabled(FieldBits) {
		before := h.Bits
		h.Bits = before ^ bitsMask
		changes = append(changes, change(FieldBits, fmt.Sprintf("0x%08x", before), fmt.Sprintf("0x%08x", h.Bits)))
	}
	if p.enabled(FieldNonce) {
		before := h.Nonce
		h.Nonce = ^before
		changes = append(changes, change(FieldNonce, fmt.Sprintf("%d", before), fmt.Sprintf("%d", h.Nonce)))
	}

	return h, changes
}

func (p *Processor) enabled(f Field) bool {
	for _, have := range p.cfg.Fields {
		if have == f || have == FieldAll {
			return true
		}
	}
	return false
}

func (p *Processor) version() int32 {
	if p.cfg.VersionOverride != nil {
		return *p.cfg.VersionOverride
	}
	return maxVersionValue
}

func (p *Processor) hash() chainhash.Hash {
	var h chainhash.Hash
	if p.cfg.ZeroHashes {
		return h
	}
	rand.Read(h[:])
	return h
}

func (p *Processor) timestamp(current uint32) uint32 {
	if p.cfg.TimestampOffset != nil {
		shifted := int64(current) + *p.cfg.TimestampOffset
		return clampUint32(shifted)
	}
	return clampUint32(p.now().Unix() + yearSeconds)
}

func clampUint32(v int64) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

func change(f Field, before, after string) Change {
	return Change{Field: f, Before: before, After: after}
}
