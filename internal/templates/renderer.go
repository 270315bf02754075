package templates

import (
	"bytes"
	"strconv"
	"strings"
	"text/template"

	"github.com/toyz/compass/internal/artifact"
	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/utils"
	"github.com/toyz/compass/pkg/compass"
)

// Identifiers generated dispatch code declares itself. Import aliases
// must not shadow them.
var dispatchIdentifiers = []string{"compass", "controller", "entry", "err", "NewNavigator", "SetupRoutes", "Navigator"}

// GoRenderer renders artifact nodes to formatted Go source through the
// template registry
type GoRenderer struct {
	registry *TemplateRegistry
	format   bool
}

// NewGoRenderer creates a renderer over the default templates
func NewGoRenderer() *GoRenderer {
	return &GoRenderer{registry: NewTemplateRegistry(), format: true}
}

// NewGoRendererWithRegistry creates a renderer over custom templates.
// Output is not passed through the formatter when format is false.
func NewGoRendererWithRegistry(registry *TemplateRegistry, format bool) *GoRenderer {
	return &GoRenderer{registry: registry, format: format}
}

type dispatchView struct {
	Package       string
	Imports       string
	Tracing       bool
	StartTemplate string
	Routes        []routeView
}

type routeView struct {
	artifact.RouteEntry
	Call string
}

type navigatorView struct {
	artifact.Navigator
	Imports string
}

// RenderDispatch renders the route-dispatch file
func (r *GoRenderer) RenderDispatch(d artifact.Dispatch) (string, error) {
	im := NewImportManager(append(dispatchIdentifiers, d.Package)...)
	im.AddPackageImport("compass", artifact.RuntimeImport)

	if d.Stub {
		view := dispatchView{Package: d.Package, Imports: im.GenerateImports()}
		return r.render(StubDispatchTemplate, view)
	}

	view := dispatchView{
		Package:       d.Package,
		Tracing:       d.Tracing,
		StartTemplate: d.StartTemplate,
		Routes:        make([]routeView, len(d.Routes)),
	}
	for i, entry := range d.Routes {
		view.Routes[i] = routeView{RouteEntry: entry, Call: invocation(entry.Target, im)}
	}
	view.Imports = im.GenerateImports()

	return r.render(DispatchTemplate, view)
}

// RenderNavigator renders the navigator file
func (r *GoRenderer) RenderNavigator(n artifact.Navigator) (string, error) {
	im := NewImportManager(n.Package)
	im.AddPackageImport("compass", artifact.RuntimeImport)

	name := NavigatorTemplate
	if n.Stub {
		name = StubNavigatorTemplate
	}
	return r.render(name, navigatorView{Navigator: n, Imports: im.GenerateImports()})
}

func (r *GoRenderer) render(name string, data interface{}) (string, error) {
	root, err := r.parse()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := root.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	if !r.format {
		return buf.String(), nil
	}

	formatted, err := utils.FormatGoCodeString(buf.String())
	if err != nil {
		return "", errors.WrapTemplateError(name, "format", err)
	}
	return formatted, nil
}

// parse builds one template set so templates can include each other
func (r *GoRenderer) parse() (*template.Template, error) {
	root := template.New("compass").Funcs(funcMap)
	for _, name := range r.registry.Names() {
		text, _ := r.registry.Get(name)
		if _, err := root.New(name).Parse(text); err != nil {
			return nil, errors.WrapTemplateError(name, "parse", err)
		}
	}
	return root, nil
}

var funcMap = template.FuncMap{
	"quote":        strconv.Quote,
	"argumentKind": argumentKind,
	"routeExpr":    routeExpr,
}

// argumentKind names the compass constant for k, e.g. "LongKind"
func argumentKind(k compass.ArgumentKind) string {
	return k.String() + "Kind"
}

// routeExpr turns route parts into a string concatenation expression
func routeExpr(parts []artifact.RoutePart) string {
	if len(parts) == 0 {
		return `""`
	}

	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		if part.IsLiteral() {
			terms = append(terms, strconv.Quote(part.Literal))
			continue
		}
		terms = append(terms, valueExpr(*part.Value))
	}
	return strings.Join(terms, " + ")
}

func valueExpr(v artifact.RouteValue) string {
	if v.Nullable {
		return "compass.FormatNullable(" + v.Argument + ", compass." + v.Formatter + ", compass." + v.Escaper + ")"
	}
	return "compass." + v.Escaper + "(compass." + v.Formatter + "(" + v.Argument + "))"
}

// invocation renders the target call of a dispatch handler
func invocation(target artifact.TargetInvocation, im *ImportManager) string {
	fn := target.Function
	if target.ImportPath != "" {
		fn = im.Qualify(target.ImportPath) + "." + fn
	}

	args := make([]string, len(target.Bindings))
	for i, b := range target.Bindings {
		switch b.Kind {
		case artifact.RequiredValue:
			args[i] = "*" + b.Variable
		case artifact.OptionalValue:
			args[i] = b.Variable
		case artifact.ControllerValue:
			args[i] = "controller"
		case artifact.NavigatorValue:
			args[i] = "NewNavigator(controller)"
		}
	}
	return fn + "(" + strings.Join(args, ", ") + ")"
}
