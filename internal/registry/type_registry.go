package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/toyz/compass/internal/errors"
)

// BuiltinTypes maps the Go type names of the value kinds to their Kind
var BuiltinTypes = map[string]Kind{
	"string":  StringType,
	"int":     IntType,
	"int64":   LongType,
	"int16":   ShortType,
	"int8":    ByteType,
	"rune":    CharType,
	"float32": FloatType,
	"float64": DoubleType,
	"bool":    BooleanType,
}

// BuiltinAliases maps alternative spellings to builtin type names.
// rune and int32 are the same Go type.
var BuiltinAliases = map[string]string{
	"int32": "rune",
}

// MarkerTypes maps marker descriptors to their Kind
var MarkerTypes = map[string]Kind{
	ControllerDescriptor: ControllerType,
	NavigatorDescriptor:  NavigatorType,
}

// Classification is the result of classifying a type descriptor
type Classification struct {
	Kind       Kind
	Nullable   bool
	Descriptor string
}

// TypeRegistryInterface defines the interface for type registry operations
type TypeRegistryInterface interface {
	Classify(descriptor string) (Classification, error)
	RegisterAlias(alias, target string) error
	Lookup(name string) (Kind, bool)
	Names() []string
	ClearAliases()
}

// TypeRegistry resolves type names to kinds
type TypeRegistry struct {
	types   map[string]Kind
	aliases map[string]string
	mu      sync.RWMutex
}

// NewTypeRegistry creates a new type registry with the builtin types and aliases
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{
		types:   make(map[string]Kind, len(BuiltinTypes)),
		aliases: make(map[string]string, len(BuiltinAliases)),
	}
	for name, kind := range BuiltinTypes {
		r.types[name] = kind
	}
	for alias, target := range BuiltinAliases {
		r.aliases[alias] = target
	}
	return r
}

// RegisterAlias makes alias resolve like target. target must be a builtin type name.
func (r *TypeRegistry) RegisterAlias(alias, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[target]; !exists {
		return errors.Newf(errors.ConfigurationErrorCode, "cannot alias '%s' to unknown type '%s'", alias, target)
	}
	if _, exists := r.types[alias]; exists {
		return errors.Newf(errors.ConfigurationErrorCode, "type '%s' is builtin and cannot be aliased", alias)
	}
	if existing, exists := r.aliases[alias]; exists && existing != target {
		return errors.Newf(errors.ConfigurationErrorCode, "alias '%s' already resolves to '%s'", alias, existing)
	}

	r.aliases[alias] = target
	return nil
}

// Lookup resolves a value type name, following aliases
func (r *TypeRegistry) Lookup(name string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if kind, exists := r.types[name]; exists {
		return kind, true
	}
	if target, exists := r.aliases[name]; exists {
		kind, ok := r.types[target]
		return kind, ok
	}
	return Invalid, false
}

// Names returns all resolvable type names, builtins and aliases, sorted
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types)+len(r.aliases))
	for name := range r.types {
		names = append(names, name)
	}
	for alias := range r.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// ClearAliases removes custom aliases, keeping the builtin ones
func (r *TypeRegistry) ClearAliases() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.aliases = make(map[string]string, len(BuiltinAliases))
	for alias, target := range BuiltinAliases {
		r.aliases[alias] = target
	}
}

// Classify parses descriptor and resolves it to a Kind. A pointer makes a
// value kind nullable. Containers, generic instantiations, unknown names and
// malformed descriptors fail with an UnsupportedParameterTypeError.
func (r *TypeRegistry) Classify(descriptor string) (Classification, error) {
	expr, err := ParseDescriptor(descriptor)
	if err != nil {
		unsupported := errors.NewUnsupportedParameterTypeError(descriptor)
		unsupported.WithCause(fmt.Errorf("parse descriptor: %w", err))
		return Classification{Descriptor: descriptor}, unsupported
	}

	canonical := expr.String()
	if kind, ok := MarkerTypes[canonical]; ok {
		return Classification{Kind: kind, Descriptor: canonical}, nil
	}
	if expr.Container() || expr.Named == nil {
		return Classification{Descriptor: canonical}, errors.NewUnsupportedParameterTypeError(canonical)
	}

	kind, ok := r.Lookup(expr.Named.Name)
	if !ok {
		return Classification{Descriptor: canonical}, errors.NewUnsupportedParameterTypeError(canonical)
	}
	return Classification{Kind: kind, Nullable: expr.Pointer, Descriptor: canonical}, nil
}

// DefaultTypeRegistry is the registry used by the package level Classify
var DefaultTypeRegistry = NewTypeRegistry()

// Classify classifies descriptor with DefaultTypeRegistry
func Classify(descriptor string) (Classification, error) {
	return DefaultTypeRegistry.Classify(descriptor)
}
