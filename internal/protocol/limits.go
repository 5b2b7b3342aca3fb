package protocol

import "math"

// MaxArrayLength is the largest element count the int32 length prefix can
// carry.
const MaxArrayLength = math.MaxInt32

const (
	DefaultMaxBytes   int64 = 256 << 20
	DefaultChunkBytes       = 64 << 10
)

// Limits constrains decode/encode memory use. MaxLength applies to both
// directions; MaxBytes bounds the payload a decode may materialize; decode
// storage grows by at most ChunkBytes at a time.
type Limits struct {
	MaxLength  int64
	MaxBytes   int64
	ChunkBytes int
}

func DefaultLimits() Limits {
	return Limits{
		MaxLength:  MaxArrayLength,
		MaxBytes:   DefaultMaxBytes,
		ChunkBytes: DefaultChunkBytes,
	}
}

// normalize fills zero fields with defaults and clamps MaxLength to the
// format ceiling.
func (l Limits) normalize() Limits {
	def := DefaultLimits()
	if l.MaxLength <= 0 || l.MaxLength > MaxArrayLength {
		l.MaxLength = def.MaxLength
	}
	if l.MaxBytes <= 0 {
		l.MaxBytes = def.MaxBytes
	}
	if l.ChunkBytes <= 0 {
		l.ChunkBytes = def.ChunkBytes
	}
	if l.ChunkBytes < 8 {
		l.ChunkBytes = 8
	}
	return l
}
