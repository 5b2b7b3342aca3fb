package protocol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindWidthsAndNames(t *testing.T) {
	tests := []struct {
		kind  Kind
		width int
		name  string
	}{
		{KindByteArray, 1, "TAG_Byte_Array"},
		{KindIntArray, 4, "TAG_Int_Array"},
		{KindLongArray, 8, "TAG_Long_Array"},
		{Kind(1), 0, "Kind(1)"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.width, tc.kind.Width())
		require.Equal(t, tc.width != 0, tc.kind.Valid())
		require.Equal(t, tc.name, tc.kind.String())
	}
}

func TestParseKind(t *testing.T) {
	for raw, want := range map[string]Kind{
		"byte":           KindByteArray,
		" Int ":          KindIntArray,
		"TAG_Long_Array": KindLongArray,
		"long_array":     KindLongArray,
	} {
		got, err := ParseKind(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}
	_, err := ParseKind("short")
	require.Error(t, err)
}

func TestByteArrayElementsAreSigned(t *testing.T) {
	v := ByteArray([]byte{0x00, 0x7F, 0x80, 0xFF})
	require.Equal(t, 4, v.Len())
	require.Equal(t, []int64{0, 127, -128, -1}, v.Int64s())
	require.Equal(t, []int8{0, 127, -128, -1}, v.Int8s())
	require.Equal(t, v, Int8Array([]int8{0, 127, -128, -1}))
}

func TestAllStopsEarly(t *testing.T) {
	v := IntArray([]int32{10, 20, 30})
	var seen []int64
	for i, x := range v.All() {
		seen = append(seen, x)
		if i == 1 {
			break
		}
	}
	require.Equal(t, []int64{10, 20}, seen)
}

func TestAppendChecksRange(t *testing.T) {
	v := Empty(KindByteArray)
	require.NoError(t, v.Append(-128))
	require.NoError(t, v.Append(127))
	require.ErrorIs(t, v.Append(128), ErrElementRange)
	require.Equal(t, []byte{0x80, 0x7F}, v.Bytes)

	ints := Empty(KindIntArray)
	require.NoError(t, ints.Append(math.MaxInt32))
	require.ErrorIs(t, ints.Append(math.MaxInt32+1), ErrElementRange)

	longs := Empty(KindLongArray)
	require.NoError(t, longs.Append(math.MinInt64))
	require.Equal(t, 1, longs.Len())

	bad := Empty(Kind(0))
	require.ErrorIs(t, bad.Append(1), ErrInvalidValue)
}

func TestSetAndClone(t *testing.T) {
	v := LongArray([]int64{1, 2, 3})
	c := v.Clone()
	require.NoError(t, c.Set(1, -5))
	require.Equal(t, int64(2), v.At(1))
	require.Equal(t, int64(-5), c.At(1))
	require.False(t, v.Equal(c))

	ints := IntArray([]int32{1})
	require.ErrorIs(t, ints.Set(0, math.MinInt32-1), ErrElementRange)
	require.Panics(t, func() { ints.At(3) })
}

func TestEqual(t *testing.T) {
	require.True(t, Empty(KindIntArray).Equal(IntArray([]int32{})))
	require.False(t, Empty(KindIntArray).Equal(Empty(KindLongArray)))
	require.True(t, ByteArray([]byte{1, 2}).Equal(ByteArray([]byte{1, 2})))
	require.False(t, ByteArray([]byte{1, 2}).Equal(ByteArray([]byte{2, 1})))
}

func TestFromInt64s(t *testing.T) {
	v, err := FromInt64s(KindIntArray, []int64{-1, 0, 1})
	require.NoError(t, err)
	require.Equal(t, []int32{-1, 0, 1}, v.Ints)

	_, err = FromInt64s(KindByteArray, []int64{1, 300})
	require.ErrorIs(t, err, ErrElementRange)

	_, err = FromInt64s(Kind(2), nil)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestValidate(t *testing.T) {
	require.NoError(t, IntArray([]int32{1}).validate())
	require.NoError(t, Empty(KindLongArray).validate())
	require.Error(t, Value{Kind: KindByteArray, Ints: []int32{1}}.validate())
	require.Error(t, Value{}.validate())
}
