package generator

import (
	"go/token"

	"github.com/toyz/compass/internal/artifact"
	"github.com/toyz/compass/internal/codec"
	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/models"
	"github.com/toyz/compass/internal/registry"
	"github.com/toyz/compass/internal/route"
	"github.com/toyz/compass/pkg/compass"
)

// BuildFull builds the node trees of a valid destination set. Entries
// follow set order. Any destination that cannot be emitted fails the build.
func (g *Generator) BuildFull(set *models.DestinationSet) (artifact.Dispatch, artifact.Navigator, error) {
	dispatch := artifact.Dispatch{Package: g.options.PackageName, Tracing: g.options.Tracing}
	navigator := artifact.Navigator{Package: g.options.PackageName, Back: artifact.BackEntry{Function: artifact.BackFunction}}

	home, ok := set.Home()
	if !ok {
		return dispatch, navigator, errors.NewNoHomeError(set.Homes())
	}

	functions := make(map[string]string)
	for _, d := range set.Destinations() {
		if err := d.Validate(); err != nil {
			return dispatch, navigator, err
		}

		function := artifact.NavigatePrefix + d.EffectiveName()
		if other, taken := functions[function]; taken {
			return dispatch, navigator, errors.NewInvalidDestinationError(d.ActualName,
				"effective name "+d.EffectiveName()+" is already used by "+other)
		}
		functions[function] = d.ActualName

		r := route.Compile(d)
		c, err := codec.Generate(d)
		if err != nil {
			return dispatch, navigator, err
		}

		dispatch.Routes = append(dispatch.Routes, artifact.RouteEntry{
			Destination: d.EffectiveName(),
			Template:    r.Template(),
			Codec:       c,
			Target:      g.target(d),
		})

		entry, err := navigationEntry(function, d, r)
		if err != nil {
			return dispatch, navigator, err
		}
		navigator.Entries = append(navigator.Entries, entry)

		if d.ActualName == home.ActualName {
			dispatch.StartTemplate = r.Template()
			alias := entry
			alias.Function = artifact.HomeFunction
			navigator.Home = &alias
		}
	}

	return dispatch, navigator, nil
}

// BuildStub builds placeholder node trees exposing one navigate method per
// name plus the home and back methods. Names that are not identifiers and
// duplicates are dropped so the output always compiles.
func (g *Generator) BuildStub(names []string) (artifact.Dispatch, artifact.Navigator) {
	dispatch := artifact.Dispatch{Package: g.options.PackageName, Stub: true}
	navigator := artifact.Navigator{Package: g.options.PackageName, Stub: true, Back: artifact.BackEntry{Function: artifact.BackFunction}}

	seen := make(map[string]bool)
	add := func(function string) {
		if seen[function] {
			return
		}
		seen[function] = true
		navigator.Stubs = append(navigator.Stubs, function)
	}

	for _, name := range names {
		if !token.IsIdentifier(name) {
			continue
		}
		add(artifact.NavigatePrefix + name)
	}
	add(artifact.HomeFunction)
	add(artifact.BackFunction)

	return dispatch, navigator
}

// target binds every declared parameter of d to a handler argument
func (g *Generator) target(d models.NavigationDestination) artifact.TargetInvocation {
	t := artifact.TargetInvocation{Function: d.ActualName}
	if d.ActualPackage != "" && d.ActualPackage != g.options.ImportPath {
		t.ImportPath = d.ActualPackage
	}

	for _, p := range d.Parameters {
		b := artifact.Binding{Parameter: p.Name}
		switch {
		case p.Type == registry.ControllerType:
			b.Kind = artifact.ControllerValue
		case p.Type == registry.NavigatorType:
			b.Kind = artifact.NavigatorValue
		case p.Nullable:
			b.Kind = artifact.OptionalValue
			b.Variable = route.CanonicalKey(p.Name)
		default:
			b.Kind = artifact.RequiredValue
			b.Variable = route.CanonicalKey(p.Name)
		}
		t.Bindings = append(t.Bindings, b)
	}
	return t
}

// navigationEntry builds the typed navigate method of d
func navigationEntry(function string, d models.NavigationDestination, r route.Route) (artifact.NavigationEntry, error) {
	entry := artifact.NavigationEntry{Function: function, Destination: d.EffectiveName()}

	for _, p := range d.RouteParameters() {
		entry.Arguments = append(entry.Arguments, artifact.FunctionArgument{Name: p.Name, Type: p.GoType()})
	}

	escaper := "PathSegment"
	if r.Form == compass.QueryForm {
		escaper = "QueryValue"
	}

	for _, part := range r.Parts() {
		if part.Kind == route.LiteralPart {
			entry.Route = append(entry.Route, artifact.RoutePart{Literal: part.Literal})
			continue
		}

		p := part.Segment.Parameter
		formatter, err := registry.FormatterOf(p.Type)
		if err != nil {
			return entry, errors.NewUnsupportedParameterTypeError(p.Descriptor).WithParameter(d.ActualName, p.Name)
		}
		entry.Route = append(entry.Route, artifact.RoutePart{Value: &artifact.RouteValue{
			Argument:  p.Name,
			Formatter: formatter,
			Escaper:   escaper,
			Nullable:  p.Nullable,
		}})
	}
	return entry, nil
}
