// Package artifact holds the typed node tree the emitter builds before any
// Go source is rendered. Nodes carry names, route parts and codec
// statements; turning them into text is the renderer's job.
package artifact

import (
	"github.com/toyz/compass/internal/codec"
)

// Names of the generated navigator methods
const (
	NavigatePrefix = "NavigateTo"
	HomeFunction   = "NavigateHome"
	BackFunction   = "NavigateUp"
)

// RuntimeImport is the package generated code calls into
const RuntimeImport = "github.com/toyz/compass/pkg/compass"

// Dispatch is the route-dispatch file. In stub mode only Package and Stub
// are meaningful.
type Dispatch struct {
	Package       string
	Stub          bool
	Tracing       bool
	StartTemplate string
	Routes        []RouteEntry
}

// RouteEntry registers one destination with the controller
type RouteEntry struct {
	Destination string // effective name, used for tracing
	Template    string
	Codec       codec.Codec
	Target      TargetInvocation
}

// TargetInvocation calls the user function behind a destination
type TargetInvocation struct {
	ImportPath string // empty when the target lives in the output package
	Function   string
	Bindings   []Binding
}

// BindingKind says where a target argument comes from
type BindingKind int

const (
	// RequiredValue passes an asserted extraction dereferenced
	RequiredValue BindingKind = iota
	// OptionalValue passes an extraction as a pointer
	OptionalValue
	// ControllerValue injects the dispatching controller
	ControllerValue
	// NavigatorValue injects a navigator bound to the controller
	NavigatorValue
)

// Binding is one positional argument of a target invocation
type Binding struct {
	Kind      BindingKind
	Parameter string
	Variable  string // extraction variable for RequiredValue and OptionalValue
}

// Navigator is the typed navigator file
type Navigator struct {
	Package string
	Stub    bool
	Entries []NavigationEntry
	Home    *NavigationEntry // NavigateHome, mirrors the home entry
	Back    BackEntry
	// Stubs lists the method names a stub navigator exposes, in order
	Stubs []string
}

// NavigationEntry is one typed navigate method
type NavigationEntry struct {
	Function    string
	Destination string
	Arguments   []FunctionArgument
	Route       []RoutePart
}

// FunctionArgument is a typed parameter of a navigate method
type FunctionArgument struct {
	Name string
	Type string
}

// RoutePart is literal route text or a formatted argument value
type RoutePart struct {
	Literal string
	Value   *RouteValue
}

// RouteValue formats and escapes one argument into the concrete route
type RouteValue struct {
	Argument  string
	Formatter string // compass.FormatX
	Escaper   string // compass.PathSegment or compass.QueryValue
	Nullable  bool
}

// BackEntry pops the back stack
type BackEntry struct {
	Function string
}

// IsLiteral reports whether p is literal text
func (p RoutePart) IsLiteral() bool {
	return p.Value == nil
}
