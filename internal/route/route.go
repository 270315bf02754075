// Package route compiles navigation destinations into route templates and
// concrete routes.
//
// A destination without route parameters compiles to its name. When every
// route parameter is required the parameters become path segments
// ("Detail/{argId}/{argTab}"). As soon as one parameter is nullable all of
// them move to the query ("Search?argQuery={query}&argPage={page}"); path
// and query are never mixed. Parameters always keep declaration order.
package route

import (
	"strings"

	"github.com/toyz/compass/internal/models"
	"github.com/toyz/compass/pkg/compass"
)

// NullValue is rendered for absent values
const NullValue = compass.NullToken

// CanonicalKey derives the argument key of a parameter
func CanonicalKey(name string) string {
	return models.CanonicalKey(name)
}

// QueryKey is the key concrete query routes use for a parameter
func QueryKey(name string) string {
	return "arg_" + name
}

// Segment is one route-transported parameter
type Segment struct {
	Parameter models.NavigationParameter
	Key       string // canonical key, also the placeholder of path templates
	QueryKey  string // key used by concrete query routes
}

// Route is the compiled form of a destination
type Route struct {
	Name     string
	Form     compass.RouteForm
	Segments []Segment
}

// Compile builds the route of d. Marker parameters are excluded.
func Compile(d models.NavigationDestination) Route {
	params := d.RouteParameters()
	r := Route{Name: d.ActualName, Form: compass.SimpleForm}
	if len(params) == 0 {
		return r
	}

	r.Form = compass.PathForm
	r.Segments = make([]Segment, len(params))
	for i, p := range params {
		if p.Nullable {
			r.Form = compass.QueryForm
		}
		r.Segments[i] = Segment{Parameter: p, Key: CanonicalKey(p.Name), QueryKey: QueryKey(p.Name)}
	}
	return r
}

// Template renders the route template registered with the runtime
func (r Route) Template() string {
	var b strings.Builder
	b.WriteString(r.Name)

	switch r.Form {
	case compass.PathForm:
		for _, s := range r.Segments {
			b.WriteString("/{" + s.Key + "}")
		}
	case compass.QueryForm:
		for i, s := range r.Segments {
			if i == 0 {
				b.WriteByte('?')
			} else {
				b.WriteByte('&')
			}
			b.WriteString(s.Key + "={" + s.Parameter.Name + "}")
		}
	}
	return b.String()
}

// PartKind distinguishes literal text from parameter values
type PartKind int

const (
	LiteralPart PartKind = iota
	ValuePart
)

// Part is a piece of a concrete route: literal text or the value of a segment
type Part struct {
	Kind    PartKind
	Literal string
	Segment Segment
}

// Parts describes a concrete route as alternating literals and values. The
// generator turns it into a string expression; Instantiate fills it in.
func (r Route) Parts() []Part {
	parts := []Part{}
	literal := r.Name

	for i, s := range r.Segments {
		switch r.Form {
		case compass.PathForm:
			literal += "/"
		case compass.QueryForm:
			if i == 0 {
				literal += "?"
			} else {
				literal += "&"
			}
			literal += s.QueryKey + "="
		}
		parts = append(parts, Part{Kind: LiteralPart, Literal: literal}, Part{Kind: ValuePart, Segment: s})
		literal = ""
	}

	if literal != "" {
		parts = append(parts, Part{Kind: LiteralPart, Literal: literal})
	}
	return parts
}

// Escape escapes a value for this route's form
func (r Route) Escape(value string) string {
	if r.Form == compass.QueryForm {
		return compass.QueryValue(value)
	}
	return compass.PathSegment(value)
}

// Instantiate renders a concrete route. values maps parameter names to
// already stringified values; a missing name renders as "null".
func (r Route) Instantiate(values map[string]string) string {
	var b strings.Builder
	for _, part := range r.Parts() {
		if part.Kind == LiteralPart {
			b.WriteString(part.Literal)
			continue
		}
		v, ok := values[part.Segment.Parameter.Name]
		if !ok {
			b.WriteString(NullValue)
			continue
		}
		b.WriteString(r.Escape(v))
	}
	return b.String()
}

// Template compiles d and renders its route template
func Template(d models.NavigationDestination) string {
	return Compile(d).Template()
}

// Instantiate compiles d and renders a concrete route
func Instantiate(d models.NavigationDestination, values map[string]string) string {
	return Compile(d).Instantiate(values)
}
