package rawtx

import "fmt"

// Cursor reads forward through an immutable byte buffer. It never reads past
// the end and never rewinds; a short read surfaces as ErrInsufficientData
// carrying the offset where the shortfall happened.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor returns a cursor positioned at the start of buf. The cursor
// borrows buf; callers must not mutate it while decoding.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Require fails when fewer than n bytes remain.
func (c *Cursor) Require(n int) error {
	if n < 0 || c.Remaining() < n {
		return fmt.Errorf("need %d bytes at offset %d, have %d: %w",
			n, c.off, c.Remaining(), ErrInsufficientData)
	}
	return nil
}

// Take returns the next n bytes and advances the offset. The returned slice
// aliases the underlying buffer; callers that retain it must copy.
func (c *Cursor) Take(n int) ([]byte, error) {
	if err := c.Require(n); err != nil {
		return nil, err
	}
	out := c.buf[c.off : c.off+n]
	c.off += n
	return out, nil
}

// Peek returns the next n bytes without advancing.
func (c *Cursor) Peek(n int) ([]byte, error) {
	if err := c.Require(n); err != nil {
		return nil, err
	}
	return c.buf[c.off : c.off+n], nil
}

// Skip advances the offset by n bytes.
func (c *Cursor) Skip(n int) error {
	if err := c.Require(n); err != nil {
		return err
	}
	c.off += n
	return nil
}

// Remaining reports how many bytes are left.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.off
}

// Offset reports how many bytes have been consumed.
func (c *Cursor) Offset() int {
	return c.off
}
