package route

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/compass/internal/models"
	"github.com/toyz/compass/internal/registry"
	"github.com/toyz/compass/pkg/compass"
)

func destination(name string, params ...models.NavigationParameter) models.NavigationDestination {
	return models.NavigationDestination{ActualName: name, Parameters: params}
}

func param(name, descriptor string) models.NavigationParameter {
	return models.NewParameter(name, descriptor)
}

func TestCanonicalKey(t *testing.T) {
	assert.Equal(t, "argName", CanonicalKey("name"))
	assert.Equal(t, "argUser_id", CanonicalKey("user_id"))
	assert.Equal(t, "argID", CanonicalKey("ID"))
	assert.Equal(t, "argÉtat", CanonicalKey("état"))
	assert.Equal(t, "arg_name", QueryKey("name"))
}

func TestTemplate_NoRouteParameters(t *testing.T) {
	assert.Equal(t, "Home", Template(destination("Home")))

	markersOnly := destination("Home",
		param("controller", "*compass.Controller"),
		param("navigator", "*Navigator"),
	)
	assert.Equal(t, "Home", Template(markersOnly))
	assert.Equal(t, compass.SimpleForm, Compile(markersOnly).Form)
}

func TestTemplate_PathAndQuerySelection(t *testing.T) {
	testCases := []struct {
		name     string
		dest     models.NavigationDestination
		template string
	}{
		{
			name:     "single required",
			dest:     destination("Home", param("name", "string")),
			template: "Home/{argName}",
		},
		{
			name:     "all required",
			dest:     destination("Detail", param("id", "int64"), param("tab", "int")),
			template: "Detail/{argId}/{argTab}",
		},
		{
			name:     "single nullable",
			dest:     destination("Home", param("name", "*string")),
			template: "Home?argName={name}",
		},
		{
			name:     "mixed goes to query",
			dest:     destination("Search", param("query", "string"), param("page", "*int")),
			template: "Search?argQuery={query}&argPage={page}",
		},
		{
			name:     "markers excluded",
			dest:     destination("Detail", param("nav", "*Navigator"), param("id", "int"), param("c", "*compass.Controller")),
			template: "Detail/{argId}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			template := Template(tc.dest)
			assert.Equal(t, tc.template, template)

			if strings.Contains(template, "?") {
				assert.Equal(t, 1, strings.Count(template, "?"))
				assert.NotContains(t, template, "/")
			}
		})
	}
}

func TestOrderPreservation_AllNullabilityPermutations(t *testing.T) {
	names := []string{"zeta", "alpha", "mid"}

	for mask := 0; mask < 1<<len(names); mask++ {
		t.Run(fmt.Sprintf("mask_%03b", mask), func(t *testing.T) {
			var params []models.NavigationParameter
			for i, n := range names {
				descriptor := "string"
				if mask&(1<<i) != 0 {
					descriptor = "*string"
				}
				params = append(params, param(n, descriptor))
			}
			r := Compile(destination("Screen", params...))

			template := r.Template()
			last := -1
			for _, n := range names {
				idx := strings.Index(template, CanonicalKey(n))
				require.Greater(t, idx, last, template)
				last = idx
			}

			var order []string
			for _, part := range r.Parts() {
				if part.Kind == ValuePart {
					order = append(order, part.Segment.Parameter.Name)
				}
			}
			assert.Equal(t, names, order)

			if mask == 0 {
				assert.Equal(t, compass.PathForm, r.Form)
			} else {
				assert.Equal(t, compass.QueryForm, r.Form)
			}
		})
	}
}

func TestInstantiate(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		assert.Equal(t, "Home", Instantiate(destination("Home"), nil))
	})

	t.Run("path", func(t *testing.T) {
		d := destination("Home", param("name", "string"))
		assert.Equal(t, "Home/X", Instantiate(d, map[string]string{"name": "X"}))
	})

	t.Run("query with null", func(t *testing.T) {
		d := destination("Home", param("name", "*string"))
		assert.Equal(t, "Home?arg_name=null", Instantiate(d, nil))
		assert.Equal(t, "Home?arg_name=X", Instantiate(d, map[string]string{"name": "X"}))
	})

	t.Run("escaping", func(t *testing.T) {
		path := destination("Doc", param("path", "string"))
		assert.Equal(t, "Doc/a%2Fb%20c", Instantiate(path, map[string]string{"path": "a/b c"}))

		query := destination("Find", param("q", "*string"), param("n", "int"))
		assert.Equal(t, "Find?arg_q=a%26b%3Dc&arg_n=3", Instantiate(query, map[string]string{"q": "a&b=c", "n": "3"}))
	})
}

func TestParts(t *testing.T) {
	r := Compile(destination("Find", param("q", "*string"), param("n", "int")))
	parts := r.Parts()
	require.Len(t, parts, 4)
	assert.Equal(t, "Find?arg_q=", parts[0].Literal)
	assert.Equal(t, "q", parts[1].Segment.Parameter.Name)
	assert.Equal(t, "&arg_n=", parts[2].Literal)
	assert.Equal(t, "n", parts[3].Segment.Parameter.Name)

	simple := Compile(destination("Home")).Parts()
	assert.Equal(t, []Part{{Kind: LiteralPart, Literal: "Home"}}, simple)
}

type roundTripSample struct {
	descriptor string
	formatted  string
	want       any
	read       func(args *compass.Arguments, key string) (any, error)
}

func deref[T any](v *T, err error) (any, error) {
	if v == nil {
		return nil, err
	}
	return *v, err
}

func roundTripSamples() []roundTripSample {
	return []roundTripSample{
		{"string", compass.FormatString("a/b c&d=é?"), "a/b c&d=é?", func(a *compass.Arguments, k string) (any, error) { return deref(a.GetString(k)) }},
		{"int", compass.FormatInt(-42), int32(-42), func(a *compass.Arguments, k string) (any, error) { return deref(a.GetInt(k)) }},
		{"int", compass.FormatInt(math.MinInt32), int32(math.MinInt32), func(a *compass.Arguments, k string) (any, error) { return deref(a.GetInt(k)) }},
		{"int64", compass.FormatLong(1 << 40), int64(1 << 40), func(a *compass.Arguments, k string) (any, error) { return deref(a.GetLong(k)) }},
		{"int16", compass.FormatShort(-1234), int16(-1234), func(a *compass.Arguments, k string) (any, error) { return deref(a.GetShort(k)) }},
		{"int8", compass.FormatByte(-8), int8(-8), func(a *compass.Arguments, k string) (any, error) { return deref(a.GetByte(k)) }},
		{"rune", compass.FormatChar('é'), 'é', func(a *compass.Arguments, k string) (any, error) { return deref(a.GetChar(k)) }},
		{"float32", compass.FormatFloat(1.25), float32(1.25), func(a *compass.Arguments, k string) (any, error) { return deref(a.GetFloat(k)) }},
		{"float64", compass.FormatDouble(0.5), 0.5, func(a *compass.Arguments, k string) (any, error) { return deref(a.GetDouble(k)) }},
		{"bool", compass.FormatBool(true), true, func(a *compass.Arguments, k string) (any, error) { return deref(a.GetBool(k)) }},
	}
}

// parse resolves a concrete route against the template of d the way the
// runtime does and returns the argument bag.
func parse(t *testing.T, d models.NavigationDestination, concrete string) *compass.Arguments {
	t.Helper()
	r := Compile(d)

	pattern, err := compass.ParseTemplate(r.Template())
	require.NoError(t, err)
	raw, ok := pattern.Match(concrete)
	require.True(t, ok, "route %q does not match %q", concrete, r.Template())

	args := compass.NewArguments()
	for _, s := range r.Segments {
		value := raw[s.Key]
		if value == nil {
			continue
		}
		kind, err := registry.ArgumentKindOf(s.Parameter.Type)
		require.NoError(t, err)
		parsed, err := kind.Parse(*value)
		require.NoError(t, err)
		args.Set(s.Key, parsed)
	}
	return args
}

func TestRoundTrip_AllSupportedTypes(t *testing.T) {
	for _, sample := range roundTripSamples() {
		for _, nullable := range []bool{false, true} {
			descriptor := sample.descriptor
			if nullable {
				descriptor = "*" + descriptor
			}
			t.Run(descriptor, func(t *testing.T) {
				d := destination("Screen",
					param("navigator", "*Navigator"),
					param("value", descriptor),
					param("label", "string"),
				)
				concrete := Instantiate(d, map[string]string{"value": sample.formatted, "label": "x y"})
				args := parse(t, d, concrete)

				got, err := sample.read(args, CanonicalKey("value"))
				require.NoError(t, err)
				assert.Equal(t, sample.want, got)

				label, err := args.GetString(CanonicalKey("label"))
				require.NoError(t, err)
				assert.Equal(t, "x y", *label)
			})
		}
	}
}

func TestRoundTrip_IntOutsideInt32IsRejected(t *testing.T) {
	d := destination("Screen", param("value", "int"))
	concrete := Instantiate(d, map[string]string{"value": compass.FormatLong(math.MaxInt32 + 1)})
	assert.Equal(t, "Screen/2147483648", concrete)

	pattern, err := compass.ParseTemplate(Template(d))
	require.NoError(t, err)
	raw, ok := pattern.Match(concrete)
	require.True(t, ok)

	kind, err := registry.ArgumentKindOf(registry.IntType)
	require.NoError(t, err)
	_, err = kind.Parse(*raw[CanonicalKey("value")])
	assert.Error(t, err)
}

func TestRoundTrip_NullStringIsPresent(t *testing.T) {
	for _, descriptor := range []string{"string", "*string"} {
		t.Run(descriptor, func(t *testing.T) {
			d := destination("Screen", param("value", descriptor), param("other", "*string"))
			concrete := Instantiate(d, map[string]string{"value": "null"})
			assert.Equal(t, "Screen?arg_value=%6Eull&arg_other=null", concrete)

			args := parse(t, d, concrete)
			v, err := args.GetString(CanonicalKey("value"))
			require.NoError(t, err)
			require.NotNil(t, v)
			assert.Equal(t, "null", *v)

			other, err := args.GetString(CanonicalKey("other"))
			require.NoError(t, err)
			assert.Nil(t, other)
		})
	}
}

func TestRoundTrip_NullIsAbsent(t *testing.T) {
	d := destination("Screen", param("value", "*int"))
	args := parse(t, d, Instantiate(d, nil))

	v, err := args.GetInt(CanonicalKey("value"))
	require.NoError(t, err)
	assert.Nil(t, v)
}
