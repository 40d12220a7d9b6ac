package rawtx

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Compact size discriminant bytes. A first byte below csUint16 is the value
// itself; the discriminants announce a 2, 4 or 8 byte little-endian tail.
const (
	csUint16 = 0xfd
	csUint32 = 0xfe
	csUint64 = 0xff
)

// CompactSize is a decoded variable-width integer together with the encoding
// width actually used on the wire (1, 3, 5 or 9 bytes). Widths vary per
// occurrence and are not required to be minimal, so byte-exact re-encoding
// needs both.
type CompactSize struct {
	Value uint64
	Width int
}

// DecodeCompactSize reads one compact size integer from c. A missing first
// byte fails with ErrInsufficientData; a first byte whose announced
// continuation cannot be supplied fails with ErrTruncatedVarInt.
func DecodeCompactSize(c *Cursor) (CompactSize, error) {
	first, err := c.Take(1)
	if err != nil {
		return CompactSize{}, err
	}
	var tail int
	switch first[0] {
	case csUint16:
		tail = 2
	case csUint32:
		tail = 4
	case csUint64:
		tail = 8
	default:
		return CompactSize{Value: uint64(first[0]), Width: 1}, nil
	}
	rest, err := c.Take(tail)
	if err != nil {
		return CompactSize{}, fmt.Errorf("compact size 0x%02x wants %d continuation bytes at offset %d, have %d: %w",
			first[0], tail, c.Offset(), c.Remaining(), ErrTruncatedVarInt)
	}
	cs := CompactSize{Width: 1 + tail}
	switch tail {
	case 2:
		cs.Value = uint64(binary.LittleEndian.Uint16(rest))
	case 4:
		cs.Value = uint64(binary.LittleEndian.Uint32(rest))
	default:
		cs.Value = binary.LittleEndian.Uint64(rest)
	}
	return cs, nil
}

// AppendCompactSize appends the canonical minimal encoding of v to dst.
func AppendCompactSize(dst []byte, v uint64) []byte {
	switch {
	case v < csUint16:
		return append(dst, byte(v))
	case v <= math.MaxUint16:
		return binary.LittleEndian.AppendUint16(append(dst, csUint16), uint16(v))
	case v <= math.MaxUint32:
		return binary.LittleEndian.AppendUint32(append(dst, csUint32), uint32(v))
	default:
		return binary.LittleEndian.AppendUint64(append(dst, csUint64), v)
	}
}

// CompactSizeLen reports the canonical encoded length of v.
func CompactSizeLen(v uint64) int {
	switch {
	case v < csUint16:
		return 1
	case v <= math.MaxUint16:
		return 3
	case v <= math.MaxUint32:
		return 5
	default:
		return 9
	}
}

// Bytes returns the wire encoding of cs, preserving its recorded width.
func (cs CompactSize) Bytes() []byte {
	return cs.append(make([]byte, 0, cs.wireWidth()))
}

// append re-encodes cs using its recorded wire width so that decoded
// transactions round-trip byte for byte, including non-minimal prefixes.
// A zero or inconsistent width falls back to the canonical encoding.
func (cs CompactSize) append(dst []byte) []byte {
	switch cs.Width {
	case 1:
		if cs.Value < csUint16 {
			return append(dst, byte(cs.Value))
		}
	case 3:
		if cs.Value <= math.MaxUint16 {
			return binary.LittleEndian.AppendUint16(append(dst, csUint16), uint16(cs.Value))
		}
	case 5:
		if cs.Value <= math.MaxUint32 {
			return binary.LittleEndian.AppendUint32(append(dst, csUint32), uint32(cs.Value))
		}
	case 9:
		return binary.LittleEndian.AppendUint64(append(dst, csUint64), cs.Value)
	}
	return AppendCompactSize(dst, cs.Value)
}

// wireWidth reports the length (cs CompactSize).append would produce.
func (cs CompactSize) wireWidth() int {
	switch cs.Width {
	case 1:
		if cs.Value < csUint16 {
			return 1
		}
	case 3:
		if cs.Value <= math.MaxUint16 {
			return 3
		}
	case 5:
		if cs.Value <= math.MaxUint32 {
			return 5
		}
	case 9:
		return 9
	}
	return CompactSizeLen(cs.Value)
}
