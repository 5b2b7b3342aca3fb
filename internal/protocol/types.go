package protocol

import (
	"fmt"
	"strings"
)

// Kind selects the element width of an array payload. Values match the NBT
// tag ids of the array tags.
type Kind uint8

const (
	KindByteArray Kind = 7
	KindIntArray  Kind = 11
	KindLongArray Kind = 12
)

// Width returns the element size in bytes, 0 for an unknown kind.
func (k Kind) Width() int {
	switch k {
	case KindByteArray:
		return 1
	case KindIntArray:
		return 4
	case KindLongArray:
		return 8
	default:
		return 0
	}
}

func (k Kind) Valid() bool {
	return k.Width() != 0
}

func (k Kind) String() string {
	switch k {
	case KindByteArray:
		return "TAG_Byte_Array"
	case KindIntArray:
		return "TAG_Int_Array"
	case KindLongArray:
		return "TAG_Long_Array"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind accepts the short names byte, int and long as well as the tag
// names returned by String.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "byte", "bytes", "byte_array", "tag_byte_array":
		return KindByteArray, nil
	case "int", "ints", "int_array", "tag_int_array":
		return KindIntArray, nil
	case "long", "longs", "long_array", "tag_long_array":
		return KindLongArray, nil
	default:
		return 0, fmt.Errorf("protocol: unknown array kind %q", raw)
	}
}
