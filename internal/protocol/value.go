package protocol

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// Value is one array payload. Exactly one backing slice is used, chosen by
// Kind: Bytes holds two's-complement int8 elements.
type Value struct {
	Kind  Kind
	Bytes []byte
	Ints  []int32
	Longs []int64
}

func ByteArray(b []byte) Value {
	return Value{Kind: KindByteArray, Bytes: b}
}

// Int8Array copies v into a byte array value.
func Int8Array(v []int8) Value {
	b := make([]byte, len(v))
	for i, x := range v {
		b[i] = byte(x)
	}
	return ByteArray(b)
}

func IntArray(v []int32) Value {
	return Value{Kind: KindIntArray, Ints: v}
}

func LongArray(v []int64) Value {
	return Value{Kind: KindLongArray, Longs: v}
}

// Empty returns a zero-length value of kind k.
func Empty(k Kind) Value {
	return Value{Kind: k}
}

// FromInt64s builds a value of kind k, rejecting elements that do not fit
// the element width.
func FromInt64s(k Kind, xs []int64) (Value, error) {
	if !k.Valid() {
		return Value{}, fmt.Errorf("%w: unknown kind %s", ErrInvalidValue, k)
	}
	v := Empty(k)
	v.grow(len(xs))
	for _, x := range xs {
		if err := v.Append(x); err != nil {
			return Value{}, err
		}
	}
	return v, nil
}

// Len returns the element count.
func (v Value) Len() int {
	switch v.Kind {
	case KindByteArray:
		return len(v.Bytes)
	case KindIntArray:
		return len(v.Ints)
	case KindLongArray:
		return len(v.Longs)
	default:
		return 0
	}
}

// At returns element i widened to int64. It panics when i is out of range.
func (v Value) At(i int) int64 {
	switch v.Kind {
	case KindByteArray:
		return int64(int8(v.Bytes[i]))
	case KindIntArray:
		return int64(v.Ints[i])
	case KindLongArray:
		return v.Longs[i]
	default:
		panic(fmt.Sprintf("protocol: At on %s", v.Kind))
	}
}

// All yields index and element pairs in array order.
func (v Value) All() iter.Seq2[int, int64] {
	return func(yield func(int, int64) bool) {
		n := v.Len()
		for i := 0; i < n; i++ {
			if !yield(i, v.At(i)) {
				return
			}
		}
	}
}

// Append adds x at the end of the array.
func (v *Value) Append(x int64) error {
	if err := v.fits(x); err != nil {
		return err
	}
	switch v.Kind {
	case KindByteArray:
		v.Bytes = append(v.Bytes, byte(int8(x)))
	case KindIntArray:
		v.Ints = append(v.Ints, int32(x))
	case KindLongArray:
		v.Longs = append(v.Longs, x)
	}
	return nil
}

// Set replaces element i. It panics when i is out of range.
func (v Value) Set(i int, x int64) error {
	if err := v.fits(x); err != nil {
		return err
	}
	switch v.Kind {
	case KindByteArray:
		v.Bytes[i] = byte(int8(x))
	case KindIntArray:
		v.Ints[i] = int32(x)
	case KindLongArray:
		v.Longs[i] = x
	}
	return nil
}

func (v Value) fits(x int64) error {
	var lo, hi int64
	switch v.Kind {
	case KindByteArray:
		lo, hi = math.MinInt8, math.MaxInt8
	case KindIntArray:
		lo, hi = math.MinInt32, math.MaxInt32
	case KindLongArray:
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrInvalidValue, v.Kind)
	}
	if x < lo || x > hi {
		return fmt.Errorf("%w: %d does not fit %s", ErrElementRange, x, v.Kind)
	}
	return nil
}

func (v *Value) grow(n int) {
	switch v.Kind {
	case KindByteArray:
		v.Bytes = slices.Grow(v.Bytes, n)
	case KindIntArray:
		v.Ints = slices.Grow(v.Ints, n)
	case KindLongArray:
		v.Longs = slices.Grow(v.Longs, n)
	}
}

// Clone returns a deep copy.
func (v Value) Clone() Value {
	return Value{
		Kind:  v.Kind,
		Bytes: slices.Clone(v.Bytes),
		Ints:  slices.Clone(v.Ints),
		Longs: slices.Clone(v.Longs),
	}
}

// Equal reports whether both values have the same kind and elements.
// A nil and an empty backing slice compare equal.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindByteArray:
		return slices.Equal(v.Bytes, o.Bytes)
	case KindIntArray:
		return slices.Equal(v.Ints, o.Ints)
	case KindLongArray:
		return slices.Equal(v.Longs, o.Longs)
	default:
		return true
	}
}

// Int8s returns the signed view of a byte array as a copy.
func (v Value) Int8s() []int8 {
	out := make([]int8, len(v.Bytes))
	for i, b := range v.Bytes {
		out[i] = int8(b)
	}
	return out
}

// Int64s returns every element widened to int64.
func (v Value) Int64s() []int64 {
	out := make([]int64, 0, v.Len())
	for _, x := range v.All() {
		out = append(out, x)
	}
	return out
}

// validate checks that Kind is known and only its backing slice is set.
func (v Value) validate() error {
	if !v.Kind.Valid() {
		return fmt.Errorf("unknown kind %s", v.Kind)
	}
	stray := false
	switch v.Kind {
	case KindByteArray:
		stray = v.Ints != nil || v.Longs != nil
	case KindIntArray:
		stray = v.Bytes != nil || v.Longs != nil
	case KindLongArray:
		stray = v.Bytes != nil || v.Ints != nil
	}
	if stray {
		return fmt.Errorf("%s carries elements of another kind", v.Kind)
	}
	return nil
}
