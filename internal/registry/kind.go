package registry

import (
	"fmt"

	"github.com/toyz/compass/internal/errors"
)

// Kind is the semantic type of a navigation parameter. The set is closed:
// every consumer implements Visitor, so a new kind does not compile until
// each consumer handles it.
type Kind uint8

const (
	// Invalid is the zero Kind, carried by parameters whose type could not be classified
	Invalid Kind = iota
	StringType
	IntType
	LongType
	ShortType
	ByteType
	CharType
	FloatType
	DoubleType
	BooleanType

	// ControllerType and NavigatorType are markers bound by the runtime
	// rather than transported in the route.
	ControllerType
	NavigatorType
)

// AllKinds lists every valid kind in declaration order.
var AllKinds = []Kind{
	StringType, IntType, LongType, ShortType, ByteType, CharType,
	FloatType, DoubleType, BooleanType, ControllerType, NavigatorType,
}

// Visitor has one method per Kind.
type Visitor[R any] interface {
	VisitString() R
	VisitInt() R
	VisitLong() R
	VisitShort() R
	VisitByte() R
	VisitChar() R
	VisitFloat() R
	VisitDouble() R
	VisitBoolean() R
	VisitController() R
	VisitNavigator() R
}

// Match dispatches k to the matching Visitor method. Invalid and out of
// range kinds fail with an UnsupportedParameterTypeError.
func Match[R any](k Kind, v Visitor[R]) (R, error) {
	switch k {
	case StringType:
		return v.VisitString(), nil
	case IntType:
		return v.VisitInt(), nil
	case LongType:
		return v.VisitLong(), nil
	case ShortType:
		return v.VisitShort(), nil
	case ByteType:
		return v.VisitByte(), nil
	case CharType:
		return v.VisitChar(), nil
	case FloatType:
		return v.VisitFloat(), nil
	case DoubleType:
		return v.VisitDouble(), nil
	case BooleanType:
		return v.VisitBoolean(), nil
	case ControllerType:
		return v.VisitController(), nil
	case NavigatorType:
		return v.VisitNavigator(), nil
	}
	var zero R
	return zero, errors.NewUnsupportedParameterTypeError(k.String())
}

var kindNames = map[Kind]string{
	StringType:     "String",
	IntType:        "Int",
	LongType:       "Long",
	ShortType:      "Short",
	ByteType:       "Byte",
	CharType:       "Char",
	FloatType:      "Float",
	DoubleType:     "Double",
	BooleanType:    "Boolean",
	ControllerType: "Controller",
	NavigatorType:  "Navigator",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	if k == Invalid {
		return "Invalid"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of AllKinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsMarker reports whether k is bound by the runtime instead of the route.
func (k Kind) IsMarker() bool {
	transported, err := Match[bool](k, routeTransport{})
	return err == nil && !transported
}
