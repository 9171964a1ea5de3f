package xgbin

import (
	"math"

	xgbErrors "github.com/YuminosukeSato/xgbleaf/pkg/errors"
)

// ReadName decodes a uint64 length-prefixed ASCII string at off. field names
// the string in errors ("objective", "booster").
func ReadName(buf []byte, off int, field string) (string, int, error) {
	length, n, err := Uint64At(buf, off, RecordName)
	if err != nil {
		return "", 0, err
	}
	body := off + n
	if length > uint64(Remaining(buf, body)) {
		return "", 0, xgbErrors.NewFormatErrorf(RecordName, body, clampInt(length), Remaining(buf, body),
			"%s name length %d exceeds buffer", field, length)
	}
	raw, m, err := BytesAt(buf, body, int(length), RecordName)
	if err != nil {
		return "", 0, err
	}
	for i, b := range raw {
		if b > 0x7f {
			return "", 0, xgbErrors.NewDecodeError(field, body, i, b)
		}
	}
	return string(raw), n + m, nil
}

// ReadLeafVector decodes the optional leaf-vector block at off: a uint64
// count followed by that many float32 values.
func ReadLeafVector(buf []byte, off int) ([]float32, int, error) {
	count, n, err := Uint64At(buf, off, RecordLeafVector)
	if err != nil {
		return nil, 0, err
	}
	body := off + n
	if count == 0 {
		return nil, n, nil
	}
	if count > uint64(Remaining(buf, body)/float32Size) {
		return nil, 0, xgbErrors.NewFormatErrorf(RecordLeafVector, body, floatsSize(count), Remaining(buf, body),
			"leaf vector length %d exceeds buffer", count)
	}
	values := make([]float32, count)
	c := NewCursor(buf, body, RecordLeafVector)
	for i := range values {
		values[i] = c.Float32()
	}
	if err := c.Err(); err != nil {
		return nil, 0, err
	}
	return values, c.Offset() - off, nil
}

func clampInt(v uint64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}

// floatsSize is the byte size of count float32 values, clamped to MaxInt.
func floatsSize(count uint64) int {
	if count > math.MaxInt/float32Size {
		return math.MaxInt
	}
	return int(count) * float32Size
}
