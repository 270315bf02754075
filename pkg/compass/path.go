package compass

import (
	"fmt"
	"net/url"
	"strings"
)

// TemplatePartType represents the type of template part
type TemplatePartType int

const (
	StaticPart TemplatePartType = iota
	PlaceholderPart
)

// TemplatePart represents a single part of a route template
type TemplatePart struct {
	Type  TemplatePartType
	Value string // For static parts: the literal text, for placeholders: the name inside the braces
}

// RouteTemplate is a route string with {placeholder} markers, as produced by
// the generator (for example "Detail/{argId}" or "Search?argQuery={query}").
type RouteTemplate string

// Raw returns the template text
func (t RouteTemplate) Raw() string {
	return string(t)
}

// Parts splits the template into static text and placeholders
func (t RouteTemplate) Parts() []TemplatePart {
	s := string(t)
	var parts []TemplatePart

	i := 0
	for i < len(s) {
		if s[i] == '{' {
			j := i + 1
			for j < len(s) && s[j] != '}' {
				j++
			}
			if j < len(s) {
				parts = append(parts, TemplatePart{Type: PlaceholderPart, Value: s[i+1 : j]})
				i = j + 1
				continue
			}
			// Unterminated brace, keep it as text
			parts = append(parts, TemplatePart{Type: StaticPart, Value: s[i:]})
			break
		}
		start := i
		for i < len(s) && s[i] != '{' {
			i++
		}
		parts = append(parts, TemplatePart{Type: StaticPart, Value: s[start:i]})
	}

	return parts
}

// RouteForm is the shape of a route template
type RouteForm int

const (
	// SimpleForm routes carry no arguments: "Home"
	SimpleForm RouteForm = iota
	// PathForm routes carry required arguments as segments: "Home/{argName}"
	PathForm
	// QueryForm routes carry arguments as query pairs: "Home?argName={name}"
	QueryForm
)

func (f RouteForm) String() string {
	switch f {
	case SimpleForm:
		return "simple"
	case PathForm:
		return "path"
	case QueryForm:
		return "query"
	default:
		return fmt.Sprintf("RouteForm(%d)", int(f))
	}
}

// Placeholder is one argument slot of a pattern. Key is the argument key the
// value is stored under; Name is the text inside the braces. For path
// templates both are equal.
type Placeholder struct {
	Key  string
	Name string
}

// AliasKey is the alternative query key accepted for this placeholder.
func (p Placeholder) AliasKey() string {
	return "arg_" + p.Name
}

// RoutePattern is a parsed route template that can match concrete routes
type RoutePattern struct {
	Template     string
	Name         string
	Form         RouteForm
	Placeholders []Placeholder
}

// ParseTemplate parses a route template into a pattern
func ParseTemplate(template string) (*RoutePattern, error) {
	if template == "" {
		return nil, fmt.Errorf("empty route template")
	}

	pattern := &RoutePattern{Template: template}

	if name, query, ok := strings.Cut(template, "?"); ok {
		pattern.Name = name
		pattern.Form = QueryForm
		for _, pair := range strings.Split(query, "&") {
			key, value, found := strings.Cut(pair, "=")
			if !found || key == "" {
				return nil, fmt.Errorf("route template %q: malformed query pair %q", template, pair)
			}
			placeholder, err := singlePlaceholder(value)
			if err != nil {
				return nil, fmt.Errorf("route template %q: %w", template, err)
			}
			pattern.Placeholders = append(pattern.Placeholders, Placeholder{Key: key, Name: placeholder})
		}
	} else {
		segments := strings.Split(template, "/")
		pattern.Name = segments[0]
		if len(segments) > 1 {
			pattern.Form = PathForm
		}
		for _, segment := range segments[1:] {
			placeholder, err := singlePlaceholder(segment)
			if err != nil {
				return nil, fmt.Errorf("route template %q: %w", template, err)
			}
			pattern.Placeholders = append(pattern.Placeholders, Placeholder{Key: placeholder, Name: placeholder})
		}
	}

	if pattern.Name == "" || strings.ContainsAny(pattern.Name, "{}") {
		return nil, fmt.Errorf("route template %q: invalid destination name", template)
	}
	return pattern, nil
}

func singlePlaceholder(s string) (string, error) {
	parts := RouteTemplate(s).Parts()
	if len(parts) != 1 || parts[0].Type != PlaceholderPart || parts[0].Value == "" {
		return "", fmt.Errorf("expected a single {placeholder}, got %q", s)
	}
	return parts[0].Value, nil
}

// Match checks route against the pattern. On success it returns the raw
// value of every placeholder keyed by Placeholder.Key; a nil value means the
// argument was absent or the bare null token.
func (p *RoutePattern) Match(route string) (map[string]*string, bool) {
	values := make(map[string]*string, len(p.Placeholders))

	switch p.Form {
	case SimpleForm:
		return values, route == p.Name

	case PathForm:
		segments := strings.Split(route, "/")
		if len(segments) != len(p.Placeholders)+1 || segments[0] != p.Name {
			return nil, false
		}
		for i, ph := range p.Placeholders {
			raw, err := url.PathUnescape(segments[i+1])
			if err != nil {
				return nil, false
			}
			values[ph.Key] = &raw
		}
		return values, true

	case QueryForm:
		name, rawQuery, _ := strings.Cut(route, "?")
		if name != p.Name {
			return nil, false
		}
		query, err := parseRawQuery(rawQuery)
		if err != nil {
			return nil, false
		}
		for _, ph := range p.Placeholders {
			v, err := queryValue(query, ph)
			if err != nil {
				return nil, false
			}
			values[ph.Key] = v
		}
		return values, true
	}

	return nil, false
}

// parseRawQuery splits a query into pairs with unescaped keys and still
// escaped values. The first occurrence of a key wins.
func parseRawQuery(rawQuery string) (map[string]string, error) {
	query := make(map[string]string)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, err
		}
		if _, ok := query[key]; !ok {
			query[key] = rawValue
		}
	}
	return query, nil
}

// queryValue reads ph from query. Only the bare token null means absent; an
// escaped form such as %6Eull is the string "null".
func queryValue(query map[string]string, ph Placeholder) (*string, error) {
	for _, key := range []string{ph.Key, ph.AliasKey()} {
		rawValue, ok := query[key]
		if !ok {
			continue
		}
		if rawValue == NullToken {
			return nil, nil
		}
		v, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	return nil, nil
}
