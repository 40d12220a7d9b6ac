package rawtx

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Fixed field widths of the transaction wire format.
const (
	versionSize    = 4
	markerFlagSize = 2
	prevVoutSize   = 4
	sequenceSize   = 4
	valueSize      = 8
	lockTimeSize   = 4

	witnessMarker = 0x00

	// Smallest possible wire footprints, used to reject announced counts
	// that could not fit in the remaining bytes before anything is
	// allocated for them.
	minInputSize  = chainhash.HashSize + prevVoutSize + 1 + sequenceSize
	minOutputSize = valueSize + 1
	minItemSize   = 1
)

// Decode parses exactly one serialized transaction from buf. Bytes left over
// after the locktime fail with ErrTrailingData.
func Decode(buf []byte) (*Transaction, error) {
	c := NewCursor(buf)
	tx, err := decodeTransaction(c)
	if err != nil {
		return nil, err
	}
	if c.Remaining() != 0 {
		return nil, fmt.Errorf("%d bytes after locktime at offset %d: %w",
			c.Remaining(), c.Offset(), ErrTrailingData)
	}
	return tx, nil
}

// DecodeHex decodes a hex-encoded transaction. Non-hex input, or input that
// decodes to fewer bytes than the version field, fails with
// ErrInvalidEncoding before structural parsing starts.
func DecodeHex(s string) (*Transaction, error) {
	buf, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidEncoding)
	}
	if len(buf) < versionSize {
		return nil, fmt.Errorf("%d bytes is shorter than the version field: %w",
			len(buf), ErrInvalidEncoding)
	}
	return Decode(buf)
}

// decodeTransaction reads one transaction and leaves the cursor on the first
// byte after it, so callers can decode concatenated transactions.
func decodeTransaction(c *Cursor) (*Transaction, error) {
	version, err := takeUint32(c, "version")
	if err != nil {
		return nil, err
	}
	tx := &Transaction{Version: int32(version)}

	tx.Flag, tx.SegWit = sniffSegWit(c)

	tx.InputCount, err = takeCompactSize(c, "input count")
	if err != nil {
		return nil, err
	}
	if err := checkCount(c, tx.InputCount.Value, minInputSize, "input count"); err != nil {
		return nil, err
	}
	tx.Inputs = make([]Input, 0, tx.InputCount.Value)
	for i := 0; i < int(tx.InputCount.Value); i++ {
		in, err := decodeInput(c, i)
		if err != nil {
			return nil, err
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	tx.OutputCount, err = takeCompactSize(c, "output count")
	if err != nil {
		return nil, err
	}
	if err := checkCount(c, tx.OutputCount.Value, minOutputSize, "output count"); err != nil {
		return nil, err
	}
	tx.Outputs = make([]Output, 0, tx.OutputCount.Value)
	for i := 0; i < int(tx.OutputCount.Value); i++ {
		out, err := decodeOutput(c, i)
		if err != nil {
			return nil, err
		}
		tx.Outputs = append(tx.Outputs, out)
	}

	if tx.SegWit {
		tx.Witness = make([]WitnessStack, 0, len(tx.Inputs))
		for i := range tx.Inputs {
			stack, err := decodeWitnessStack(c, i)
			if err != nil {
				return nil, err
			}
			tx.Witness = append(tx.Witness, stack)
		}
	}

	tx.LockTime, err = takeUint32(c, "locktime")
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// sniffSegWit peeks two bytes after the version. A zero byte followed by a
// non-zero byte marks a witness serialization; both are then consumed as
// marker and flag. Anything else, including 0x00 0x00, leaves the cursor
// untouched and the transaction is read as legacy.
func sniffSegWit(c *Cursor) (flag byte, ok bool) {
	b, err := c.Peek(markerFlagSize)
	if err != nil {
		return 0, false
	}
	if b[0] != witnessMarker || b[1] == 0x00 {
		return 0, false
	}
	_ = c.Skip(markerFlagSize)
	return b[1], true
}

func decodeInput(c *Cursor, idx int) (Input, error) {
	var in Input
	raw, err := c.Take(chainhash.HashSize)
	if err != nil {
		return Input{}, fmt.Errorf("input %d prev txid: %w", idx, err)
	}
	copy(in.PrevTxID[:], raw)
	if in.PrevVout, err = takeUint32(c, fmt.Sprintf("input %d prev vout", idx)); err != nil {
		return Input{}, err
	}
	if in.ScriptSigLen, err = takeCompactSize(c, fmt.Sprintf("input %d script length", idx)); err != nil {
		return Input{}, err
	}
	script, err := takeBytes(c, in.ScriptSigLen.Value, fmt.Sprintf("input %d script", idx))
	if err != nil {
		return Input{}, err
	}
	in.ScriptSig = script
	if in.Sequence, err = takeUint32(c, fmt.Sprintf("input %d sequence", idx)); err != nil {
		return Input{}, err
	}
	return in, nil
}

func decodeOutput(c *Cursor, idx int) (Output, error) {
	var out Output
	raw, err := c.Take(valueSize)
	if err != nil {
		return Output{}, fmt.Errorf("output %d value: %w", idx, err)
	}
	out.Value = binary.LittleEndian.Uint64(raw)
	if out.PkScriptLen, err = takeCompactSize(c, fmt.Sprintf("output %d script length", idx)); err != nil {
		return Output{}, err
	}
	script, err := takeBytes(c, out.PkScriptLen.Value, fmt.Sprintf("output %d script", idx))
	if err != nil {
		return Output{}, err
	}
	out.PkScript = script
	return out, nil
}

func decodeWitnessStack(c *Cursor, idx int) (WitnessStack, error) {
	count, err := takeCompactSize(c, fmt.Sprintf("input %d witness count", idx))
	if err != nil {
		return WitnessStack{}, err
	}
	if err := checkCount(c, count.Value, minItemSize, fmt.Sprintf("input %d witness count", idx)); err != nil {
		return WitnessStack{}, err
	}
	stack := WitnessStack{Count: count, Items: make([]WitnessItem, 0, count.Value)}
	for i := 0; i < int(count.Value); i++ {
		size, err := takeCompactSize(c, fmt.Sprintf("input %d witness item %d length", idx, i))
		if err != nil {
			return WitnessStack{}, err
		}
		data, err := takeBytes(c, size.Value, fmt.Sprintf("input %d witness item %d", idx, i))
		if err != nil {
			return WitnessStack{}, err
		}
		stack.Items = append(stack.Items, WitnessItem{Size: size, Data: data})
	}
	return stack, nil
}

func takeUint32(c *Cursor, field string) (uint32, error) {
	b, err := c.Take(4)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return binary.LittleEndian.Uint32(b), nil
}

func takeCompactSize(c *Cursor, field string) (CompactSize, error) {
	cs, err := DecodeCompactSize(c)
	if err != nil {
		return CompactSize{}, fmt.Errorf("%s: %w", field, err)
	}
	return cs, nil
}

// takeBytes reads n length-prefixed bytes and copies them out of the decode
// buffer. The copy is empty, never nil, when n is zero.
func takeBytes(c *Cursor, n uint64, field string) ([]byte, error) {
	raw, err := c.Take(int(n))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// checkCount rejects an announced element count whose minimum wire footprint
// exceeds the remaining bytes. This caps the slice capacity allocated for a
// count at what the buffer could actually hold.
func checkCount(c *Cursor, count uint64, minSize int, field string) error {
	if count > uint64(c.Remaining()/minSize) {
		return fmt.Errorf("%s %d exceeds %d remaining bytes at offset %d: %w",
			field, count, c.Remaining(), c.Offset(), ErrInsufficientData)
	}
	return nil
}
