package registry

import (
	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/pkg/compass"
)

// Marker descriptors as written in destination signatures. The navigator
// helper is the generated Navigator type of the output package.
const (
	ControllerDescriptor = "*compass.Controller"
	NavigatorDescriptor  = "*Navigator"
)

// ArgumentKindOf returns the wire kind a parameter of kind k is declared
// with. Short, Byte and Char travel as Int and Double travels as Float.
// Marker kinds have no wire kind.
func ArgumentKindOf(k Kind) (compass.ArgumentKind, error) {
	m, err := Match[argumentKindMapping](k, argumentKinds{})
	if err != nil {
		return 0, err
	}
	if !m.ok {
		return 0, errors.NewUnsupportedParameterTypeError(GoTypeOf(k))
	}
	return m.kind, nil
}

// ExtractorOf returns the compass.Arguments method that reads a value of
// kind k back. It mirrors the Go type, not the wire kind: Double is read
// with GetDouble although it is declared as Float.
func ExtractorOf(k Kind) (string, error) {
	name, err := Match[string](k, extractors{})
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", errors.NewUnsupportedParameterTypeError(GoTypeOf(k))
	}
	return name, nil
}

// FormatterOf returns the compass formatting helper for values of kind k.
func FormatterOf(k Kind) (string, error) {
	name, err := Match[string](k, formatters{})
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", errors.NewUnsupportedParameterTypeError(GoTypeOf(k))
	}
	return name, nil
}

// GoTypeOf returns the Go type written for a non-nullable parameter of kind k.
func GoTypeOf(k Kind) string {
	name, err := Match[string](k, goTypes{})
	if err != nil {
		return k.String()
	}
	return name
}

// IsRouteTransported reports whether parameters of kind k travel in the route.
func IsRouteTransported(k Kind) bool {
	transported, err := Match[bool](k, routeTransport{})
	return err == nil && transported
}

type argumentKindMapping struct {
	kind compass.ArgumentKind
	ok   bool
}

type argumentKinds struct{}

func (argumentKinds) VisitString() argumentKindMapping { return argumentKindMapping{compass.StringKind, true} }
func (argumentKinds) VisitInt() argumentKindMapping { return argumentKindMapping{compass.IntKind, true} }
func (argumentKinds) VisitLong() argumentKindMapping { return argumentKindMapping{compass.LongKind, true} }
func (argumentKinds) VisitShort() argumentKindMapping { return argumentKindMapping{compass.IntKind, true} }
func (argumentKinds) VisitByte() argumentKindMapping { return argumentKindMapping{compass.IntKind, true} }
func (argumentKinds) VisitChar() argumentKindMapping { return argumentKindMapping{compass.IntKind, true} }
func (argumentKinds) VisitFloat() argumentKindMapping { return argumentKindMapping{compass.FloatKind, true} }
func (argumentKinds) VisitDouble() argumentKindMapping { return argumentKindMapping{compass.FloatKind, true} }
func (argumentKinds) VisitBoolean() argumentKindMapping { return argumentKindMapping{compass.BoolKind, true} }
func (argumentKinds) VisitController() argumentKindMapping {
	return argumentKindMapping{}
}
func (argumentKinds) VisitNavigator() argumentKindMapping {
	return argumentKindMapping{}
}

type extractors struct{}

func (extractors) VisitString() string { return "GetString" }
func (extractors) VisitInt() string { return "GetInt" }
func (extractors) VisitLong() string { return "GetLong" }
func (extractors) VisitShort() string { return "GetShort" }
func (extractors) VisitByte() string { return "GetByte" }
func (extractors) VisitChar() string { return "GetChar" }
func (extractors) VisitFloat() string { return "GetFloat" }
func (extractors) VisitDouble() string { return "GetDouble" }
func (extractors) VisitBoolean() string { return "GetBool" }
func (extractors) VisitController() string { return "" }
func (extractors) VisitNavigator() string { return "" }

type formatters struct{}

func (formatters) VisitString() string { return "FormatString" }
func (formatters) VisitInt() string { return "FormatInt" }
func (formatters) VisitLong() string { return "FormatLong" }
func (formatters) VisitShort() string { return "FormatShort" }
func (formatters) VisitByte() string { return "FormatByte" }
func (formatters) VisitChar() string { return "FormatChar" }
func (formatters) VisitFloat() string { return "FormatFloat" }
func (formatters) VisitDouble() string { return "FormatDouble" }
func (formatters) VisitBoolean() string { return "FormatBool" }
func (formatters) VisitController() string { return "" }
func (formatters) VisitNavigator() string { return "" }

type goTypes struct{}

func (goTypes) VisitString() string { return "string" }
func (goTypes) VisitInt() string { return "int32" }
func (goTypes) VisitLong() string { return "int64" }
func (goTypes) VisitShort() string { return "int16" }
func (goTypes) VisitByte() string { return "int8" }
func (goTypes) VisitChar() string { return "rune" }
func (goTypes) VisitFloat() string { return "float32" }
func (goTypes) VisitDouble() string { return "float64" }
func (goTypes) VisitBoolean() string { return "bool" }
func (goTypes) VisitController() string { return ControllerDescriptor }
func (goTypes) VisitNavigator() string { return NavigatorDescriptor }

type routeTransport struct{}

func (routeTransport) VisitString() bool { return true }
func (routeTransport) VisitInt() bool { return true }
func (routeTransport) VisitLong() bool { return true }
func (routeTransport) VisitShort() bool { return true }
func (routeTransport) VisitByte() bool { return true }
func (routeTransport) VisitChar() bool { return true }
func (routeTransport) VisitFloat() bool { return true }
func (routeTransport) VisitDouble() bool { return true }
func (routeTransport) VisitBoolean() bool { return true }
func (routeTransport) VisitController() bool { return false }
func (routeTransport) VisitNavigator() bool { return false }
