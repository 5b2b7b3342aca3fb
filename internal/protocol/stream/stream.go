// Package stream is the numeric codec used by the array payload codec.
//
// Reader and Writer move single fixed-width integers in network byte order
// and carry a sticky status: once a read or write fails, or a caller marks
// the stream with Fail, every later call returns the same error without
// touching the underlying io.Reader/io.Writer.
package stream

import (
	"encoding/binary"
	"errors"
	"io"
)

var (
	ErrShortRead = errors.New("stream: short read")
	ErrInvalid   = errors.New("stream: marked invalid")
)

// lener is satisfied by *bytes.Reader, *bytes.Buffer and *strings.Reader.
type lener interface {
	Len() int
}

// Reader decodes big-endian integers from r.
type Reader struct {
	r        io.Reader
	err      error
	consumed int64
	scratch  [8]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err returns the sticky error, nil while the stream is valid.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) Valid() bool {
	return r.err == nil
}

// Fail marks the stream invalid. The first recorded error wins.
func (r *Reader) Fail(err error) {
	if r.err != nil {
		return
	}
	if err == nil {
		err = ErrInvalid
	}
	r.err = err
}

// Consumed returns the number of bytes read so far.
func (r *Reader) Consumed() int64 {
	return r.consumed
}

// Remaining reports how many bytes are left when the source knows its size.
func (r *Reader) Remaining() (int64, bool) {
	l, ok := r.r.(lener)
	if !ok {
		return 0, false
	}
	return int64(l.Len()), true
}

// ReadFull fills p entirely or fails the stream.
func (r *Reader) ReadFull(p []byte) error {
	if r.err != nil {
		return r.err
	}
	n, err := io.ReadFull(r.r, p)
	r.consumed += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = ErrShortRead
		}
		r.err = err
		return err
	}
	return nil
}

// Discard skips n bytes or fails the stream.
func (r *Reader) Discard(n int64) error {
	if r.err != nil {
		return r.err
	}
	m, err := io.CopyN(io.Discard, r.r, n)
	r.consumed += m
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrShortRead
		}
		r.err = err
		return err
	}
	return nil
}

func (r *Reader) ReadInt8() (int8, error) {
	if err := r.ReadFull(r.scratch[:1]); err != nil {
		return 0, err
	}
	return int8(r.scratch[0]), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	if err := r.ReadFull(r.scratch[:4]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(r.scratch[:4])), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	if err := r.ReadFull(r.scratch[:8]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(r.scratch[:8])), nil
}

// Writer encodes big-endian integers to w.
type Writer struct {
	w       io.Writer
	err     error
	written int64
	scratch [8]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) Valid() bool {
	return w.err == nil
}

// Fail marks the stream invalid. The first recorded error wins.
func (w *Writer) Fail(err error) {
	if w.err != nil {
		return
	}
	if err == nil {
		err = ErrInvalid
	}
	w.err = err
}

// Written returns the number of bytes accepted by the underlying writer.
func (w *Writer) Written() int64 {
	return w.written
}

func (w *Writer) Write(p []byte) error {
	if w.err != nil {
		return w.err
	}
	n, err := w.w.Write(p)
	w.written += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = err
		return err
	}
	return nil
}

func (w *Writer) WriteInt8(v int8) error {
	w.scratch[0] = byte(v)
	return w.Write(w.scratch[:1])
}

func (w *Writer) WriteInt32(v int32) error {
	binary.BigEndian.PutUint32(w.scratch[:4], uint32(v))
	return w.Write(w.scratch[:4])
}

func (w *Writer) WriteInt64(v int64) error {
	binary.BigEndian.PutUint64(w.scratch[:8], uint64(v))
	return w.Write(w.scratch[:8])
}
