package models

import (
	"fmt"
	"go/token"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/registry"
)

// ReservedIdentifiers are names generated navigator code declares itself.
// A parameter with one of these names would shadow them.
var ReservedIdentifiers = map[string]bool{
	"nv":      true,
	"opts":    true,
	"compass": true,
}

// GeneratedIdentifiers are the package-level names of the generated files.
// A target declared under one of them in the output package would collide.
var GeneratedIdentifiers = map[string]bool{
	"SetupRoutes":  true,
	"NewNavigator": true,
	"Navigator":    true,
}

// CanonicalKey derives the argument key of a parameter: "arg" followed by
// the name with its first rune upper-cased.
func CanonicalKey(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "arg" + name
	}
	return "arg" + string(unicode.ToUpper(r)) + name[size:]
}

// shadowsType reports whether name would shadow a type used in generated
// signatures
func shadowsType(name string) bool {
	if _, ok := registry.BuiltinTypes[name]; ok {
		return true
	}
	_, ok := registry.BuiltinAliases[name]
	return ok || name == "any" || name == "error"
}

// NavigationParameter is one parameter of a destination
type NavigationParameter struct {
	Name       string        // parameter name as declared
	Type       registry.Kind // Invalid when Descriptor could not be classified
	Nullable   bool          // optional parameter, declared as a pointer
	Descriptor string        // type as declared, e.g. "*int64"
}

// NewParameter classifies descriptor with the default type registry. An
// unsupported descriptor yields an Invalid parameter that keeps the
// descriptor; code generation rejects it later.
func NewParameter(name, descriptor string) NavigationParameter {
	return NewParameterWithRegistry(registry.DefaultTypeRegistry, name, descriptor)
}

// NewParameterWithRegistry is NewParameter with an explicit registry
func NewParameterWithRegistry(reg registry.TypeRegistryInterface, name, descriptor string) NavigationParameter {
	c, err := reg.Classify(descriptor)
	if err != nil {
		return NavigationParameter{Name: name, Type: registry.Invalid, Descriptor: descriptor}
	}
	return NavigationParameter{Name: name, Type: c.Kind, Nullable: c.Nullable, Descriptor: c.Descriptor}
}

// IsMarker reports whether the parameter is bound by the runtime
func (p NavigationParameter) IsMarker() bool {
	return p.Type.IsMarker()
}

// IsRouteTransported reports whether the parameter travels in the route
func (p NavigationParameter) IsRouteTransported() bool {
	return registry.IsRouteTransported(p.Type)
}

// GoType returns the Go type of the parameter in generated signatures
func (p NavigationParameter) GoType() string {
	if !p.Type.Valid() {
		return p.Descriptor
	}
	goType := registry.GoTypeOf(p.Type)
	if p.Nullable && !p.IsMarker() {
		return "*" + goType
	}
	return goType
}

// NavigationDestination describes one navigable target. Values are treated
// as immutable once discovered; DestinationSet stores copies.
type NavigationDestination struct {
	ActualName    string // function name of the target
	ActualPackage string // import path of the package declaring the target
	CustomName    string // optional display name used for NavigateTo<Name>
	IsHome        bool
	Parameters    []NavigationParameter // declaration order
}

// EffectiveName is CustomName when set, otherwise ActualName
func (d NavigationDestination) EffectiveName() string {
	if d.CustomName != "" {
		return d.CustomName
	}
	return d.ActualName
}

// RouteParameters returns the parameters transported in the route, in
// declaration order. Invalid parameters are included so they can be reported.
func (d NavigationDestination) RouteParameters() []NavigationParameter {
	params := make([]NavigationParameter, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		if !p.IsMarker() {
			params = append(params, p)
		}
	}
	return params
}

// Clone returns a copy that shares no memory with d
func (d NavigationDestination) Clone() NavigationDestination {
	clone := d
	clone.Parameters = append([]NavigationParameter(nil), d.Parameters...)
	return clone
}

// Validate checks the naming rules generated code relies on. Unsupported
// parameter types are not reported here.
func (d NavigationDestination) Validate() error {
	if !token.IsIdentifier(d.ActualName) {
		return errors.NewInvalidDestinationError(d.ActualName, "name is not a valid Go identifier")
	}
	if GeneratedIdentifiers[d.ActualName] {
		return errors.NewInvalidDestinationError(d.ActualName, "name collides with a generated declaration").
			WithSuggestion("Rename the target function")
	}
	if d.CustomName != "" && !token.IsIdentifier(d.CustomName) {
		return errors.NewInvalidDestinationError(d.ActualName, fmt.Sprintf("custom name %q is not a valid Go identifier", d.CustomName))
	}

	seen := make(map[string]bool, len(d.Parameters))
	keys := make(map[string]string, len(d.Parameters))
	markers := make(map[registry.Kind]bool)
	for _, p := range d.Parameters {
		if !token.IsIdentifier(p.Name) {
			return errors.NewInvalidDestinationError(d.ActualName, fmt.Sprintf("parameter %q is not a valid Go identifier", p.Name))
		}
		if ReservedIdentifiers[p.Name] || shadowsType(p.Name) {
			return errors.NewInvalidDestinationError(d.ActualName, fmt.Sprintf("parameter name %q is reserved", p.Name)).
				WithSuggestion("Rename the parameter")
		}
		if seen[p.Name] {
			return errors.NewInvalidDestinationError(d.ActualName, fmt.Sprintf("duplicate parameter %q", p.Name))
		}
		seen[p.Name] = true

		if p.IsMarker() {
			if markers[p.Type] {
				return errors.NewInvalidDestinationError(d.ActualName, fmt.Sprintf("%s parameter declared more than once", p.Type))
			}
			markers[p.Type] = true
			continue
		}

		key := CanonicalKey(p.Name)
		if other, taken := keys[key]; taken {
			return errors.NewInvalidDestinationError(d.ActualName,
				fmt.Sprintf("parameters %q and %q share the argument key %s", other, p.Name, key))
		}
		keys[key] = p.Name
	}
	return nil
}
