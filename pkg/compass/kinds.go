package compass

import (
	"fmt"
	"strconv"
)

// ArgumentKind is the wire-level type of a route placeholder. It decides how
// the raw string taken from a route is parsed before it lands in Arguments.
type ArgumentKind uint8

const (
	StringKind ArgumentKind = iota
	IntKind
	LongKind
	BoolKind
	FloatKind
	ByteKind
)

var argumentKindNames = map[ArgumentKind]string{
	StringKind: "String",
	IntKind:    "Int",
	LongKind:   "Long",
	BoolKind:   "Bool",
	FloatKind:  "Float",
	ByteKind:   "Byte",
}

func (k ArgumentKind) String() string {
	if name, ok := argumentKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ArgumentKind(%d)", uint8(k))
}

// Parse converts a raw route value into the Go value stored for this kind.
// Int values are 32-bit and Float values are float32 on the wire.
func (k ArgumentKind) Parse(raw string) (any, error) {
	switch k {
	case StringKind:
		return raw, nil
	case IntKind:
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case LongKind:
		return strconv.ParseInt(raw, 10, 64)
	case BoolKind:
		return strconv.ParseBool(raw)
	case FloatKind:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, err
		}
		return float32(f), nil
	case ByteKind:
		n, err := strconv.ParseInt(raw, 10, 8)
		if err != nil {
			return nil, err
		}
		return int8(n), nil
	default:
		return nil, fmt.Errorf("unknown argument kind %s", k)
	}
}
