package stream

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntegersRoundTripBigEndian(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteInt8(-1))
	require.NoError(t, w.WriteInt32(math.MinInt32))
	require.NoError(t, w.WriteInt64(0x0102030405060708))
	require.Equal(t, int64(13), w.Written())
	require.Equal(t, []byte{0xFF, 0x80, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8}, buf.Bytes())

	r := NewReader(bytes.NewReader(buf.Bytes()))
	b, err := r.ReadInt8()
	require.NoError(t, err)
	require.Equal(t, int8(-1), b)
	i, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(math.MinInt32), i)
	l, err := r.ReadInt64()
	require.NoError(t, err)
	require.Equal(t, int64(0x0102030405060708), l)
	require.Equal(t, int64(13), r.Consumed())
	require.True(t, r.Valid())
}

func TestReaderShortReadIsSticky(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0, 0}))
	_, err := r.ReadInt32()
	require.ErrorIs(t, err, ErrShortRead)
	require.False(t, r.Valid())
	require.Equal(t, int64(2), r.Consumed())

	_, err = r.ReadInt8()
	require.ErrorIs(t, err, ErrShortRead)
	require.Equal(t, int64(2), r.Consumed())
}

func TestReaderEmptySourceIsShortRead(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	_, err := r.ReadInt64()
	require.ErrorIs(t, err, ErrShortRead)
}

func TestReaderFailKeepsFirstError(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3, 4}))
	first := errors.New("first")
	r.Fail(first)
	r.Fail(errors.New("second"))
	require.ErrorIs(t, r.Err(), first)

	_, err := r.ReadInt32()
	require.ErrorIs(t, err, first)
	require.Zero(t, r.Consumed())
}

func TestReaderFailNilUsesErrInvalid(t *testing.T) {
	r := NewReader(bytes.NewReader(nil))
	r.Fail(nil)
	require.ErrorIs(t, r.Err(), ErrInvalid)
}

func TestReaderRemaining(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3, 4, 5}))
	n, ok := r.Remaining()
	require.True(t, ok)
	require.Equal(t, int64(5), n)
	_, err := r.ReadInt32()
	require.NoError(t, err)
	n, ok = r.Remaining()
	require.True(t, ok)
	require.Equal(t, int64(1), n)

	piped := NewReader(io.MultiReader(bytes.NewReader([]byte{1})))
	_, ok = piped.Remaining()
	require.False(t, ok)
}

func TestReaderDiscard(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6}))
	require.NoError(t, r.Discard(4))
	require.Equal(t, int64(4), r.Consumed())
	require.ErrorIs(t, r.Discard(4), ErrShortRead)
	require.Equal(t, int64(6), r.Consumed())
	require.False(t, r.Valid())
}

type failingWriter struct {
	n int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.n <= 0 {
		return 0, io.ErrClosedPipe
	}
	if len(p) > f.n {
		n := f.n
		f.n = 0
		return n, nil
	}
	f.n -= len(p)
	return len(p), nil
}

func TestWriterErrorsAreSticky(t *testing.T) {
	w := NewWriter(&failingWriter{n: 6})
	require.NoError(t, w.WriteInt32(1))
	err := w.WriteInt32(2)
	require.ErrorIs(t, err, io.ErrShortWrite)
	require.False(t, w.Valid())
	require.Equal(t, int64(6), w.Written())

	require.ErrorIs(t, w.WriteInt8(3), io.ErrShortWrite)
	require.Equal(t, int64(6), w.Written())
}

func TestWriterFail(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Fail(nil)
	require.ErrorIs(t, w.WriteInt64(1), ErrInvalid)
	require.Zero(t, buf.Len())
}
