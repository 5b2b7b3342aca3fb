package protocol

import (
	"errors"
	"fmt"
	"slices"

	"github.com/danmuck/nbtarray/internal/protocol/stream"
)

// Decode reads one array payload of the given kind from r. It returns the
// complete array or an error, never a partial array. On error r is left
// marked invalid.
func (c *Codec) Decode(r *stream.Reader, kind Kind) (Value, error) {
	start := r.Consumed()
	v, err := c.decode(r, kind)
	if err != nil {
		r.Fail(err)
		c.observe(opDecode, kind, 0, r.Consumed()-start, err)
		return Value{}, err
	}
	c.observe(opDecode, kind, v.Len(), r.Consumed()-start, nil)
	return v, nil
}

func (c *Codec) decode(r *stream.Reader, kind Kind) (Value, error) {
	length, err := c.readLength(r, kind, opDecode)
	if err != nil {
		return Value{}, err
	}
	n := int(length)

	switch kind {
	case KindByteArray:
		b, err := c.readBytes(r, n)
		if err != nil {
			return Value{}, newError(opDecode, kind, length, ErrTruncated, err)
		}
		return ByteArray(b), nil
	case KindIntArray:
		ints, err := readElements(n, c.limits.ChunkBytes/4, r.ReadInt32)
		if err != nil {
			return Value{}, newError(opDecode, kind, length, ErrTruncated, err)
		}
		return IntArray(ints), nil
	default:
		longs, err := readElements(n, c.limits.ChunkBytes/8, r.ReadInt64)
		if err != nil {
			return Value{}, newError(opDecode, kind, length, ErrTruncated, err)
		}
		return LongArray(longs), nil
	}
}

// Skip validates and discards one array payload without materializing it,
// returning the declared element count.
func (c *Codec) Skip(r *stream.Reader, kind Kind) (int, error) {
	start := r.Consumed()
	length, err := c.readLength(r, kind, opSkip)
	if err == nil {
		if derr := r.Discard(length * int64(kind.Width())); derr != nil {
			err = newError(opSkip, kind, length, ErrTruncated, derr)
		}
	}
	if err != nil {
		r.Fail(err)
		c.observe(opSkip, kind, 0, r.Consumed()-start, err)
		return 0, err
	}
	c.observe(opSkip, kind, int(length), r.Consumed()-start, nil)
	return int(length), nil
}

// readLength reads the int32 prefix and checks it against the format,
// the configured limits and, when known, the bytes left in r.
func (c *Codec) readLength(r *stream.Reader, kind Kind, op string) (int64, error) {
	if !kind.Valid() {
		return 0, newError(op, kind, UnknownLength, ErrInvalidValue, errors.New("unknown kind"))
	}
	if err := r.Err(); err != nil {
		return 0, newError(op, kind, UnknownLength, ErrStreamCorrupted, err)
	}
	raw, err := r.ReadInt32()
	if err != nil {
		return 0, newError(op, kind, UnknownLength, ErrTruncated, err)
	}
	length := int64(raw)
	if err := c.checkDecodeLength(kind, length); err != nil {
		return 0, newError(op, kind, length, ErrLength, err)
	}
	if rem, ok := r.Remaining(); ok {
		if size := length * int64(kind.Width()); size > rem {
			return 0, newError(op, kind, length, ErrTruncated,
				fmt.Errorf("payload needs %d bytes, %d remain", size, rem))
		}
	}
	return length, nil
}

func (c *Codec) checkDecodeLength(kind Kind, length int64) error {
	if length < 0 {
		return errors.New("negative length")
	}
	if length > c.limits.MaxLength {
		return fmt.Errorf("exceeds max length %d", c.limits.MaxLength)
	}
	if size := length * int64(kind.Width()); size > c.limits.MaxBytes {
		return fmt.Errorf("payload of %d bytes exceeds max bytes %d", size, c.limits.MaxBytes)
	}
	return nil
}

// readBytes is the bulk path for byte arrays. Storage grows one chunk at a
// time so a forged length cannot reserve memory the stream never delivers.
func (c *Codec) readBytes(r *stream.Reader, n int) ([]byte, error) {
	chunk := c.limits.ChunkBytes
	out := make([]byte, 0, min(n, chunk))
	for len(out) < n {
		off := len(out)
		step := min(n-off, chunk)
		out = slices.Grow(out, step)[:off+step]
		if err := r.ReadFull(out[off:]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// readElements is the per-element path for int and long arrays.
func readElements[T int32 | int64](n, initial int, read func() (T, error)) ([]T, error) {
	out := make([]T, 0, min(n, initial))
	for i := 0; i < n; i++ {
		v, err := read()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
