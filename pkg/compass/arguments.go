package compass

import (
	"fmt"
	"math"
	"sort"
)

// Arguments is the typed argument bag handed to a destination handler. Values
// are stored in their wire representation (see ArgumentKind.Parse) and read
// back through the typed getters. A nil result with a nil error means the
// argument was absent.
type Arguments struct {
	values map[string]any
}

// NewArguments creates an empty argument bag
func NewArguments() *Arguments {
	return &Arguments{values: make(map[string]any)}
}

// Set stores a value under key. A nil value marks the argument as absent.
func (a *Arguments) Set(key string, value any) {
	if value == nil {
		delete(a.values, key)
		return
	}
	a.values[key] = value
}

// Has reports whether key carries a value.
func (a *Arguments) Has(key string) bool {
	if a == nil {
		return false
	}
	_, ok := a.values[key]
	return ok
}

// Raw returns the stored wire value for key.
func (a *Arguments) Raw(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[key]
	return v, ok
}

// Keys returns the keys that carry a value, sorted.
func (a *Arguments) Keys() []string {
	if a == nil {
		return nil
	}
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of present arguments.
func (a *Arguments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

func (a *Arguments) GetString(key string) (*string, error) {
	return lookup[string](a, key)
}

func (a *Arguments) GetBool(key string) (*bool, error) {
	return lookup[bool](a, key)
}

func (a *Arguments) GetInt(key string) (*int32, error) {
	n, err := a.integer(key, math.MinInt32, math.MaxInt32)
	if n == nil || err != nil {
		return nil, err
	}
	v := int32(*n)
	return &v, nil
}

func (a *Arguments) GetLong(key string) (*int64, error) {
	return a.integer(key, math.MinInt64, math.MaxInt64)
}

// GetShort reads an Int-kind value and narrows it to int16.
func (a *Arguments) GetShort(key string) (*int16, error) {
	n, err := a.integer(key, math.MinInt16, math.MaxInt16)
	if n == nil || err != nil {
		return nil, err
	}
	v := int16(*n)
	return &v, nil
}

// GetByte reads an Int-kind (or Byte-kind) value and narrows it to int8.
func (a *Arguments) GetByte(key string) (*int8, error) {
	n, err := a.integer(key, math.MinInt8, math.MaxInt8)
	if n == nil || err != nil {
		return nil, err
	}
	v := int8(*n)
	return &v, nil
}

// GetChar reads an Int-kind value holding a code point.
func (a *Arguments) GetChar(key string) (*rune, error) {
	n, err := a.integer(key, 0, math.MaxInt32)
	if n == nil || err != nil {
		return nil, err
	}
	v := rune(*n)
	return &v, nil
}

func (a *Arguments) GetFloat(key string) (*float32, error) {
	raw, ok := a.Raw(key)
	if !ok {
		return nil, nil
	}
	switch f := raw.(type) {
	case float32:
		return &f, nil
	case float64:
		v := float32(f)
		return &v, nil
	default:
		return nil, kindMismatch(key, "float32", raw)
	}
}

// GetDouble reads a Float-kind value and widens it to float64. Double
// parameters travel as float32, so precision beyond float32 is lost.
func (a *Arguments) GetDouble(key string) (*float64, error) {
	raw, ok := a.Raw(key)
	if !ok {
		return nil, nil
	}
	switch f := raw.(type) {
	case float32:
		v := float64(f)
		return &v, nil
	case float64:
		return &f, nil
	default:
		return nil, kindMismatch(key, "float64", raw)
	}
}

func (a *Arguments) integer(key string, lo, hi int64) (*int64, error) {
	raw, ok := a.Raw(key)
	if !ok {
		return nil, nil
	}
	var n int64
	switch v := raw.(type) {
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	default:
		return nil, kindMismatch(key, "integer", raw)
	}
	if n < lo || n > hi {
		return nil, NewArgumentError(key, fmt.Sprintf("value %d out of range [%d, %d]", n, lo, hi), nil)
	}
	return &n, nil
}

func lookup[T any](a *Arguments, key string) (*T, error) {
	raw, ok := a.Raw(key)
	if !ok {
		return nil, nil
	}
	v, ok := raw.(T)
	if !ok {
		var zero T
		return nil, kindMismatch(key, fmt.Sprintf("%T", zero), raw)
	}
	return &v, nil
}

func kindMismatch(key, want string, got any) error {
	return NewArgumentError(key, fmt.Sprintf("expected %s, got %T", want, got), nil)
}
