package protocol

import (
	"fmt"

	"github.com/danmuck/nbtarray/internal/protocol/stream"
)

// Encode writes v as one array payload. Length violations are reported
// before any byte is written. On error w is left marked invalid.
func (c *Codec) Encode(w *stream.Writer, v Value) error {
	start := w.Written()
	if err := c.encode(w, v); err != nil {
		w.Fail(err)
		c.observe(opEncode, v.Kind, 0, w.Written()-start, err)
		return err
	}
	c.observe(opEncode, v.Kind, v.Len(), w.Written()-start, nil)
	return nil
}

func (c *Codec) encode(w *stream.Writer, v Value) error {
	if err := w.Err(); err != nil {
		return newError(opEncode, v.Kind, UnknownLength, ErrStreamCorrupted, err)
	}
	if err := v.validate(); err != nil {
		return newError(opEncode, v.Kind, UnknownLength, ErrInvalidValue, err)
	}
	length := int64(v.Len())
	if err := checkEncodeLength(length, c.limits.MaxLength); err != nil {
		return newError(opEncode, v.Kind, length, ErrLength, err)
	}
	if err := w.WriteInt32(int32(length)); err != nil {
		return newError(opEncode, v.Kind, length, ErrStreamCorrupted, err)
	}

	var err error
	switch v.Kind {
	case KindByteArray:
		if length > 0 {
			err = w.Write(v.Bytes)
		}
	case KindIntArray:
		for _, x := range v.Ints {
			if err = w.WriteInt32(x); err != nil {
				break
			}
		}
	case KindLongArray:
		for _, x := range v.Longs {
			if err = w.WriteInt64(x); err != nil {
				break
			}
		}
	}
	if err != nil {
		return newError(opEncode, v.Kind, length, ErrStreamCorrupted, err)
	}
	return nil
}

// checkEncodeLength rejects element counts the int32 prefix or the
// configured ceiling cannot carry.
func checkEncodeLength(length, limit int64) error {
	if limit <= 0 || limit > MaxArrayLength {
		limit = MaxArrayLength
	}
	if length > limit {
		return fmt.Errorf("%d elements exceed max length %d", length, limit)
	}
	return nil
}
