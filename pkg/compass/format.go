package compass

import (
	"net/url"
	"strconv"
)

// Format helpers turn typed navigator arguments into route values. Generated
// navigator code composes them with PathSegment or QueryValue.

func FormatString(v string) string { return v }
func FormatInt(v int32) string { return strconv.FormatInt(int64(v), 10) }
func FormatLong(v int64) string { return strconv.FormatInt(v, 10) }
func FormatShort(v int16) string { return strconv.FormatInt(int64(v), 10) }
func FormatByte(v int8) string { return strconv.FormatInt(int64(v), 10) }
func FormatBool(v bool) string { return strconv.FormatBool(v) }
func FormatFloat(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func FormatDouble(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// FormatChar encodes a rune as its code point, since Char travels as Int.
func FormatChar(v rune) string { return strconv.FormatInt(int64(v), 10) }

// NullToken is the unescaped route value of an absent argument.
const NullToken = "null"

// FormatNullable formats and escapes v, or returns NullToken when v is nil.
// escape must never yield the bare token for a present value; QueryValue
// guarantees that.
func FormatNullable[T any](v *T, format func(T) string, escape func(string) string) string {
	if v == nil {
		return NullToken
	}
	return escape(format(*v))
}

// PathSegment escapes a value for use as a route path segment.
func PathSegment(v string) string {
	return url.PathEscape(v)
}

// QueryValue escapes a value for use in a route query pair. The string
// "null" is encoded as %6Eull so it cannot read back as absent.
func QueryValue(v string) string {
	if v == NullToken {
		return "%6Eull"
	}
	return url.QueryEscape(v)
}
