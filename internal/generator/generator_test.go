package generator

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/compass/internal/artifact"
	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/models"
	"github.com/toyz/compass/internal/registry"
)

// compact strips blanks so assertions do not depend on gofmt spacing
func compact(s string) string {
	return strings.NewReplacer(" ", "", "\t", "").Replace(s)
}

func newSet(destinations ...models.NavigationDestination) *models.DestinationSet {
	set := models.NewDestinationSet()
	for _, d := range destinations {
		set.Add(d)
	}
	return set
}

func emitFull(t *testing.T, options Options, set *models.DestinationSet) (string, string) {
	t.Helper()
	artifacts, err := NewGenerator(options).EmitFull(set)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, models.DispatchFileName, artifacts[0].FileName)
	assert.Equal(t, models.NavigatorFileName, artifacts[1].FileName)
	return artifacts[0].Content, artifacts[1].Content
}

// methods parses src and returns navigator method declarations by name
func methods(t *testing.T, src string) map[string]*ast.FuncDecl {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "navigator.go", src, 0)
	require.NoError(t, err, src)

	result := make(map[string]*ast.FuncDecl)
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Recv != nil {
			result[fn.Name.Name] = fn
		}
	}
	return result
}

func TestEmitFull_ScenarioA(t *testing.T) {
	routes, nav := emitFull(t, Options{PackageName: "nav"}, newSet(
		models.NavigationDestination{ActualName: "Home", IsHome: true},
	))

	assert.True(t, strings.HasPrefix(routes, "// Code generated by compass. DO NOT EDIT."))
	assert.Contains(t, routes, "package nav")
	assert.Contains(t, routes, `controller.SetStartDestination("Home")`)
	assert.Contains(t, compact(routes), `Template:"Home",`)
	assert.Contains(t, routes, "return Home()")
	assert.NotContains(t, routes, "Arguments:")

	assert.Contains(t, nav, "func (nv *Navigator) NavigateToHome(opts ...compass.NavOption) error {")
	assert.Contains(t, nav, "func (nv *Navigator) NavigateHome(opts ...compass.NavOption) error {")
	assert.Equal(t, 2, strings.Count(nav, `return nv.controller.Navigate("Home", opts...)`))
	assert.Contains(t, nav, "func (nv *Navigator) NavigateUp() error {")
}

func TestEmitFull_ScenarioB(t *testing.T) {
	routes, nav := emitFull(t, Options{PackageName: "nav"}, newSet(
		models.NavigationDestination{ActualName: "Home", IsHome: true, Parameters: []models.NavigationParameter{
			models.NewParameter("name", "string"),
		}},
	))

	c := compact(routes)
	assert.Contains(t, c, `Template:"Home/{argName}",`)
	assert.Contains(t, c, `{Key:"argName",Nullable:false,Kind:compass.StringKind},`)
	assert.Contains(t, c, `argName,err:=entry.Arguments.GetString("argName")`)
	assert.Contains(t, c, `iferr:=compass.RequireArgument("argName",argName);err!=nil{`)
	assert.Contains(t, c, `returnHome(*argName)`)

	assert.Contains(t, nav, "NavigateToHome(name string, opts ...compass.NavOption) error")
	assert.Contains(t, compact(nav), `nv.controller.Navigate("Home/"+compass.PathSegment(compass.FormatString(name)),opts...)`)
}

func TestEmitFull_ScenarioC(t *testing.T) {
	routes, nav := emitFull(t, Options{PackageName: "nav"}, newSet(
		models.NavigationDestination{ActualName: "Home", IsHome: true, Parameters: []models.NavigationParameter{
			models.NewParameter("name", "*string"),
		}},
	))

	c := compact(routes)
	assert.Contains(t, c, `Template:"Home?argName={name}",`)
	assert.Contains(t, c, `{Key:"argName",Nullable:true,Kind:compass.StringKind},`)
	assert.NotContains(t, c, "RequireArgument")
	assert.Contains(t, c, "returnHome(argName)")

	assert.Contains(t, nav, "NavigateToHome(name *string, opts ...compass.NavOption) error")
	assert.Contains(t, compact(nav), `"Home?arg_name="+compass.FormatNullable(name,compass.FormatString,compass.QueryValue)`)
}

func TestEmitFull_MixedQueryAndMarkers(t *testing.T) {
	routes, nav := emitFull(t, Options{PackageName: "nav", ImportPath: "example.com/app/nav", Tracing: true}, newSet(
		models.NavigationDestination{ActualName: "Home", ActualPackage: "example.com/app/nav", IsHome: true},
		models.NavigationDestination{
			ActualName:    "Detail",
			ActualPackage: "example.com/app/screens",
			CustomName:    "Item",
			Parameters: []models.NavigationParameter{
				models.NewParameter("controller", "*compass.Controller"),
				models.NewParameter("id", "int64"),
				models.NewParameter("navigator", "*Navigator"),
				models.NewParameter("ratio", "*float64"),
			},
		},
	))

	c := compact(routes)
	assert.Contains(t, routes, `"example.com/app/screens"`)
	assert.Contains(t, c, `Template:"Detail?argId={id}&argRatio={ratio}",`)
	assert.Contains(t, c, `{Key:"argId",Nullable:false,Kind:compass.LongKind},`)
	assert.Contains(t, c, `{Key:"argRatio",Nullable:true,Kind:compass.FloatKind},`)
	assert.Contains(t, c, `argRatio,err:=entry.Arguments.GetDouble("argRatio")`)
	assert.Contains(t, c, `returnscreens.Detail(controller,*argId,NewNavigator(controller),argRatio)`)
	assert.Contains(t, c, `returnHome()`)
	assert.Contains(t, c, `controller.Tracef("Navigatingto%s","Item")`)

	// extractions come first, assertions after
	assert.Less(t, strings.Index(c, `GetDouble("argRatio")`), strings.Index(c, `RequireArgument("argId"`))

	assert.Contains(t, nav, "NavigateToItem(id int64, ratio *float64, opts ...compass.NavOption) error")
	assert.Contains(t, compact(nav), `"Detail?arg_id="+compass.QueryValue(compass.FormatLong(id))+"&arg_ratio="+compass.FormatNullable(ratio,compass.FormatDouble,compass.QueryValue)`)
	assert.NotContains(t, nav, "example.com/app/screens")
}

func TestEmitFull_TracingOff(t *testing.T) {
	routes, _ := emitFull(t, Options{}, newSet(models.NavigationDestination{ActualName: "Home", IsHome: true}))
	assert.NotContains(t, routes, "Tracef")
	assert.Contains(t, routes, "package "+DefaultPackageName)
}

func TestEmitFull_Deterministic(t *testing.T) {
	set := newSet(
		models.NavigationDestination{ActualName: "Home", IsHome: true, Parameters: []models.NavigationParameter{models.NewParameter("tab", "*int")}},
		models.NavigationDestination{ActualName: "B", ActualPackage: "example.com/b"},
		models.NavigationDestination{ActualName: "A", ActualPackage: "example.com/a", Parameters: []models.NavigationParameter{models.NewParameter("c", "rune")}},
	)

	routes1, nav1 := emitFull(t, Options{PackageName: "nav"}, set)
	routes2, nav2 := emitFull(t, Options{PackageName: "nav"}, set)
	assert.Equal(t, routes1, routes2)
	assert.Equal(t, nav1, nav2)

	// set order, not alphabetical
	assert.Less(t, strings.Index(nav1, "NavigateToHome"), strings.Index(nav1, "NavigateToB"))
	assert.Less(t, strings.Index(nav1, "NavigateToB"), strings.Index(nav1, "NavigateToA"))
}

func TestBuildFull_HomeAlias(t *testing.T) {
	g := NewGenerator(Options{PackageName: "nav"})
	_, navigator, err := g.BuildFull(newSet(
		models.NavigationDestination{ActualName: "Other"},
		models.NavigationDestination{ActualName: "Start", IsHome: true, Parameters: []models.NavigationParameter{
			models.NewParameter("id", "int"),
			models.NewParameter("q", "*string"),
		}},
	))
	require.NoError(t, err)

	require.NotNil(t, navigator.Home)
	require.Len(t, navigator.Entries, 2)
	home := navigator.Entries[1]
	assert.Equal(t, artifact.HomeFunction, navigator.Home.Function)
	assert.Equal(t, home.Route, navigator.Home.Route)
	assert.Equal(t, home.Arguments, navigator.Home.Arguments)
	assert.Equal(t, "Start", navigator.Home.Destination)
}

func TestBuildFull_StartTemplate(t *testing.T) {
	g := NewGenerator(Options{})
	dispatch, _, err := g.BuildFull(newSet(
		models.NavigationDestination{ActualName: "Feed"},
		models.NavigationDestination{ActualName: "Profile", IsHome: true, Parameters: []models.NavigationParameter{models.NewParameter("user", "string")}},
	))
	require.NoError(t, err)
	assert.Equal(t, "Profile/{argUser}", dispatch.StartTemplate)
	assert.Len(t, dispatch.Routes, 2)
}

func TestBuildFull_Bindings(t *testing.T) {
	g := NewGenerator(Options{ImportPath: "example.com/app"})
	dispatch, _, err := g.BuildFull(newSet(models.NavigationDestination{
		ActualName:    "Home",
		ActualPackage: "example.com/app",
		IsHome:        true,
		Parameters: []models.NavigationParameter{
			models.NewParameter("nav", "*Navigator"),
			models.NewParameter("q", "*string"),
			models.NewParameter("n", "int8"),
		},
	}))
	require.NoError(t, err)

	target := dispatch.Routes[0].Target
	assert.Empty(t, target.ImportPath)
	assert.Equal(t, []artifact.Binding{
		{Kind: artifact.NavigatorValue, Parameter: "nav"},
		{Kind: artifact.OptionalValue, Parameter: "q", Variable: "argQ"},
		{Kind: artifact.RequiredValue, Parameter: "n", Variable: "argN"},
	}, target.Bindings)
}

func TestBuildFull_Failures(t *testing.T) {
	tests := []struct {
		name string
		set  *models.DestinationSet
		code errors.ErrorCode
	}{
		{
			name: "no home",
			set:  newSet(models.NavigationDestination{ActualName: "A"}),
			code: errors.ValidationErrorCode,
		},
		{
			name: "unsupported type",
			set: newSet(models.NavigationDestination{ActualName: "A", IsHome: true, Parameters: []models.NavigationParameter{
				models.NewParameter("m", "map[string]int"),
			}}),
			code: errors.UnsupportedParameterTypeErrorCode,
		},
		{
			name: "duplicate effective name",
			set: newSet(
				models.NavigationDestination{ActualName: "A", IsHome: true},
				models.NavigationDestination{ActualName: "B", CustomName: "A"},
			),
			code: errors.ValidationErrorCode,
		},
		{
			name: "reserved parameter",
			set: newSet(models.NavigationDestination{ActualName: "A", IsHome: true, Parameters: []models.NavigationParameter{
				models.NewParameter("opts", "int"),
			}}),
			code: errors.ValidationErrorCode,
		},
		{
			name: "parameters share an argument key",
			set: newSet(models.NavigationDestination{ActualName: "A", IsHome: true, Parameters: []models.NavigationParameter{
				models.NewParameter("name", "string"),
				models.NewParameter("Name", "string"),
			}}),
			code: errors.ValidationErrorCode,
		},
		{
			name: "target named like a generated declaration",
			set: newSet(
				models.NavigationDestination{ActualName: "A", IsHome: true},
				models.NavigationDestination{ActualName: "SetupRoutes", CustomName: "Setup"},
			),
			code: errors.ValidationErrorCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(Options{}).EmitFull(tt.set)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestEmitStub_ScenarioD(t *testing.T) {
	artifacts, err := NewGenerator(Options{PackageName: "nav"}).EmitStub([]string{"A", "B"})
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	for _, a := range artifacts {
		assert.True(t, a.Stub)
		assert.Equal(t, "nav", a.PackageName)
	}
	assert.Equal(t, models.DispatchArtifactName, artifacts[0].Name)
	assert.Equal(t, models.NavigatorArtifactName, artifacts[1].Name)

	routes := artifacts[0].Content
	assert.Contains(t, routes, "func SetupRoutes(controller *compass.Controller) error {")
	assert.Contains(t, routes, "return compass.ErrNavigationNotGenerated")

	decls := methods(t, artifacts[1].Content)
	for _, name := range []string{"NavigateToA", "NavigateToB", "NavigateHome", "NavigateUp"} {
		fn, ok := decls[name]
		require.True(t, ok, name)
		params := fn.Type.Params.List
		require.Len(t, params, 1, name)
		_, variadic := params[0].Type.(*ast.Ellipsis)
		assert.True(t, variadic, name)
	}
	assert.Len(t, decls, 4)
	assert.Equal(t, 4, strings.Count(artifacts[1].Content, "return compass.ErrNavigationNotGenerated"))
}

func TestEmitStub_MatchesFullNames(t *testing.T) {
	set := newSet(
		models.NavigationDestination{ActualName: "Home", IsHome: true, Parameters: []models.NavigationParameter{models.NewParameter("q", "*string")}},
		models.NavigationDestination{ActualName: "Detail", CustomName: "Item", Parameters: []models.NavigationParameter{models.NewParameter("id", "int")}},
	)

	_, nav := emitFull(t, Options{PackageName: "nav"}, set)
	stubs, err := NewGenerator(Options{PackageName: "nav"}).EmitStub(set.EffectiveNames())
	require.NoError(t, err)

	full := methods(t, nav)
	stub := methods(t, stubs[1].Content)
	assert.Equal(t, len(full), len(stub))
	for name := range full {
		assert.Contains(t, stub, name)
	}
}

func TestEmitStub_ScenarioE(t *testing.T) {
	set := newSet(
		models.NavigationDestination{ActualName: "Home", IsHome: true},
		models.NavigationDestination{ActualName: "Tags", Parameters: []models.NavigationParameter{models.NewParameter("tags", "map[string]int")}},
	)
	require.Equal(t, registry.Invalid, mustGet(t, set, "Tags").Parameters[0].Type)

	_, err := NewGenerator(Options{}).EmitFull(set)
	var unsupported *errors.UnsupportedParameterTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "map[string]int", unsupported.Descriptor)

	artifacts, err := NewGenerator(Options{}).EmitStub(set.EffectiveNames())
	require.NoError(t, err)
	decls := methods(t, artifacts[1].Content)
	assert.Contains(t, decls, "NavigateToHome")
	assert.Contains(t, decls, "NavigateToTags")
}

func TestBuildStub_DropsInvalidAndDuplicateNames(t *testing.T) {
	_, navigator := NewGenerator(Options{}).BuildStub([]string{"A", "A", "not valid", "Home", ""})
	assert.Equal(t, []string{"NavigateToA", "NavigateToHome", "NavigateHome", "NavigateUp"}, navigator.Stubs)
}

func TestEmitStub_Empty(t *testing.T) {
	artifacts, err := NewGenerator(Options{}).EmitStub(nil)
	require.NoError(t, err)
	decls := methods(t, artifacts[1].Content)
	assert.Len(t, decls, 2)
}

type failingRenderer struct{}

func (failingRenderer) RenderDispatch(artifact.Dispatch) (string, error) {
	return "", errors.New(errors.TemplateErrorCode, "boom")
}

func (failingRenderer) RenderNavigator(artifact.Navigator) (string, error) { return "", nil }

func TestEmit_RendererFailure(t *testing.T) {
	g := NewGeneratorWithRenderer(Options{}, failingRenderer{})

	_, err := g.EmitStub([]string{"A"})
	require.Error(t, err)
	assert.Equal(t, errors.GenerationErrorCode, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "failed to generate routes")
}

func mustGet(t *testing.T, set *models.DestinationSet, name string) models.NavigationDestination {
	t.Helper()
	d, ok := set.Get(name)
	require.True(t, ok)
	return d
}
