package xgbin

import (
	"encoding/binary"
	"math"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
)

// checkBounds reports a FormatError when n bytes are not available at off.
func checkBounds(buf []byte, off, n int, record string) error {
	if off < 0 || n < 0 || off > len(buf) || n > len(buf)-off {
		available := len(buf) - off
		if available < 0 || off < 0 {
			available = 0
		}
		return xgbErrors.NewFormatError(record, off, n, available)
	}
	return nil
}

// Remaining returns the number of bytes available from off to the end of buf.
func Remaining(buf []byte, off int) int {
	if off < 0 || off >= len(buf) {
		return 0
	}
	return len(buf) - off
}

// Int32At decodes a little-endian int32 at off.
func Int32At(buf []byte, off int, record string) (int32, int, error) {
	if err := checkBounds(buf, off, int32Size, record); err != nil {
		return 0, 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf[off:])), int32Size, nil
}

// Uint32At decodes a little-endian uint32 at off.
func Uint32At(buf []byte, off int, record string) (uint32, int, error) {
	if err := checkBounds(buf, off, uint32Size, record); err != nil {
		return 0, 0, err
	}
	return binary.LittleEndian.Uint32(buf[off:]), uint32Size, nil
}

// Float32At decodes a little-endian IEEE-754 float32 at off.
func Float32At(buf []byte, off int, record string) (float32, int, error) {
	if err := checkBounds(buf, off, float32Size, record); err != nil {
		return 0, 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])), float32Size, nil
}

// Int64At decodes a little-endian int64 at off.
func Int64At(buf []byte, off int, record string) (int64, int, error) {
	if err := checkBounds(buf, off, int64Size, record); err != nil {
		return 0, 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf[off:])), int64Size, nil
}

// Uint64At decodes a little-endian uint64 at off.
func Uint64At(buf []byte, off int, record string) (uint64, int, error) {
	if err := checkBounds(buf, off, uint64Size, record); err != nil {
		return 0, 0, err
	}
	return binary.LittleEndian.Uint64(buf[off:]), uint64Size, nil
}

// SkipAt checks that n bytes exist at off and returns n.
func SkipAt(buf []byte, off, n int, record string) (int, error) {
	if err := checkBounds(buf, off, n, record); err != nil {
		return 0, err
	}
	return n, nil
}

// BytesAt returns the n bytes at off without copying.
func BytesAt(buf []byte, off, n int, record string) ([]byte, int, error) {
	if err := checkBounds(buf, off, n, record); err != nil {
		return nil, 0, err
	}
	return buf[off : off+n : off+n], n, nil
}

// Cursor reads consecutive scalars of one record, advancing its offset by
// the width of each read. The first failed read sticks: later reads return
// zero values and Err reports the original failure.
type Cursor struct {
	buf    []byte
	off    int
	record string
	err    error
}

// NewCursor starts a cursor at off, attributing failures to record.
func NewCursor(buf []byte, off int, record string) *Cursor {
	return &Cursor{buf: buf, off: off, record: record}
}

// Offset returns the absolute offset of the next read.
func (c *Cursor) Offset() int { return c.off }

// Err returns the first read failure, if any.
func (c *Cursor) Err() error { return c.err }

// SetRecord changes the record name used for subsequent failures.
func (c *Cursor) SetRecord(record string) { c.record = record }

// Int32 reads a little-endian int32 and advances past it.
func (c *Cursor) Int32() int32 {
	if c.err != nil {
		return 0
	}
	v, n, err := Int32At(c.buf, c.off, c.record)
	c.advance(n, err)
	return v
}

// Uint32 reads a little-endian uint32 and advances past it.
func (c *Cursor) Uint32() uint32 {
	if c.err != nil {
		return 0
	}
	v, n, err := Uint32At(c.buf, c.off, c.record)
	c.advance(n, err)
	return v
}

// Float32 reads a little-endian float32 and advances past it.
func (c *Cursor) Float32() float32 {
	if c.err != nil {
		return 0
	}
	v, n, err := Float32At(c.buf, c.off, c.record)
	c.advance(n, err)
	return v
}

// Int64 reads a little-endian int64 and advances past it.
func (c *Cursor) Int64() int64 {
	if c.err != nil {
		return 0
	}
	v, n, err := Int64At(c.buf, c.off, c.record)
	c.advance(n, err)
	return v
}

// Uint64 reads a little-endian uint64 and advances past it.
func (c *Cursor) Uint64() uint64 {
	if c.err != nil {
		return 0
	}
	v, n, err := Uint64At(c.buf, c.off, c.record)
	c.advance(n, err)
	return v
}

// Skip consumes n bytes without decoding them.
func (c *Cursor) Skip(n int) {
	if c.err != nil {
		return
	}
	n, err := SkipAt(c.buf, c.off, n, c.record)
	c.advance(n, err)
}

// Bytes consumes and returns n raw bytes.
func (c *Cursor) Bytes(n int) []byte {
	if c.err != nil {
		return nil
	}
	b, n, err := BytesAt(c.buf, c.off, n, c.record)
	c.advance(n, err)
	return b
}

func (c *Cursor) advance(n int, err error) {
	if err != nil {
		c.err = err
		return
	}
	c.off += n
}
