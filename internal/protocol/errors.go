package protocol

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrLength          = errors.New("protocol: invalid array length")
	ErrTruncated       = errors.New("protocol: truncated input")
	ErrStreamCorrupted = errors.New("protocol: stream corrupted")
	ErrInvalidValue    = errors.New("protocol: invalid array value")
	ErrElementRange    = errors.New("protocol: element out of range")
)

// UnknownLength marks an Error raised before the length prefix was read.
const UnknownLength int64 = math.MinInt64

const (
	opDecode = "decode"
	opEncode = "encode"
	opSkip   = "skip"
)

// Error describes a failed array payload operation. Err is one of the
// package sentinels; Cause carries the detail or the stream error.
type Error struct {
	Op     string
	Kind   Kind
	Length int64
	Err    error
	Cause  error
}

func newError(op string, kind Kind, length int64, sentinel, cause error) *Error {
	return &Error{Op: op, Kind: kind, Length: length, Err: sentinel, Cause: cause}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s", e.Op, e.Kind)
	if e.Length != UnknownLength {
		msg = fmt.Sprintf("%s length=%d", msg, e.Length)
	}
	msg += ": " + e.Err.Error()
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// ErrorCode maps err to a short stable label, "ok" for nil.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrLength):
		return "length"
	case errors.Is(err, ErrTruncated):
		return "truncated"
	case errors.Is(err, ErrStreamCorrupted):
		return "stream_corrupted"
	case errors.Is(err, ErrInvalidValue), errors.Is(err, ErrElementRange):
		return "invalid_value"
	default:
		return "other"
	}
}
