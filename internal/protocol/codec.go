package protocol

import (
	"bytes"

	"github.com/danmuck/nbtarray/internal/protocol/stream"
	"github.com/rs/zerolog"
)

// Recorder receives one observation per Decode, Encode or Skip call.
// length is the element count, 0 on failure; bytes is the number of stream
// bytes the call moved.
type Recorder interface {
	ObserveArray(op string, kind Kind, length int, bytes int64, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveArray(string, Kind, int, int64, error) {}

// Codec reads and writes array payloads. It is immutable after NewCodec
// and safe for concurrent use on independent streams.
type Codec struct {
	limits Limits
	log    zerolog.Logger
	rec    Recorder
}

type Option func(*Codec)

func WithLimits(l Limits) Option {
	return func(c *Codec) {
		c.limits = l.normalize()
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Codec) {
		c.log = l
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Codec) {
		if r != nil {
			c.rec = r
		}
	}
}

func NewCodec(opts ...Option) *Codec {
	c := &Codec{
		limits: DefaultLimits(),
		log:    zerolog.Nop(),
		rec:    nopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Codec) Limits() Limits {
	return c.limits
}

var defaultCodec = NewCodec()

// Marshal encodes v with default limits.
func Marshal(v Value) ([]byte, error) {
	return defaultCodec.Marshal(v)
}

// Unmarshal decodes one payload from the front of data with default limits
// and returns the number of bytes consumed.
func Unmarshal(data []byte, kind Kind) (Value, int, error) {
	return defaultCodec.Unmarshal(data, kind)
}

func (c *Codec) Marshal(v Value) ([]byte, error) {
	var dst []byte
	if v.Kind.Valid() {
		dst = make([]byte, 0, 4+v.Len()*v.Kind.Width())
	}
	return c.AppendPayload(dst, v)
}

// AppendPayload appends the encoded payload of v to dst. On error dst is
// returned unchanged.
func (c *Codec) AppendPayload(dst []byte, v Value) ([]byte, error) {
	buf := bytes.NewBuffer(dst)
	if err := c.Encode(stream.NewWriter(buf), v); err != nil {
		return dst, err
	}
	return buf.Bytes(), nil
}

func (c *Codec) Unmarshal(data []byte, kind Kind) (Value, int, error) {
	r := stream.NewReader(bytes.NewReader(data))
	v, err := c.Decode(r, kind)
	if err != nil {
		return Value{}, int(r.Consumed()), err
	}
	return v, int(r.Consumed()), nil
}

func (c *Codec) observe(op string, kind Kind, length int, moved int64, err error) {
	c.rec.ObserveArray(op, kind, length, moved, err)
	if err == nil {
		c.log.Trace().Str("op", op).Stringer("kind", kind).Int("length", length).Int64("bytes", moved).Msg("array payload")
		return
	}
	c.log.Debug().Err(err).Str("op", op).Stringer("kind", kind).Str("code", ErrorCode(err)).Int64("bytes", moved).Msg("array payload failed")
}
