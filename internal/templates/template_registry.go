package templates

import "sort"

// Template names understood by the Go renderer
const (
	HeaderTemplate         = "header"
	DispatchTemplate       = "dispatch"
	StubDispatchTemplate   = "dispatch-stub"
	NavigatorTemplate      = "navigator"
	StubNavigatorTemplate  = "navigator-stub"
	NavigatorTypeTemplate  = "navigator-type"
	NavigateMethodTemplate = "navigate-method"
)

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerSharedTemplates()
	registry.registerDispatchTemplates()
	registry.registerNavigatorTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Register adds or replaces a template
func (tr *TemplateRegistry) Register(name, text string) {
	tr.templates[name] = text
}

// Names lists the registered templates, sorted
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (tr *TemplateRegistry) registerSharedTemplates() {
	tr.templates[HeaderTemplate] = `// Code generated by compass. DO NOT EDIT.
// This file was automatically generated and should not be modified manually.

package {{.Package}}

{{.Imports}}`
}

func (tr *TemplateRegistry) registerDispatchTemplates() {
	tr.templates[DispatchTemplate] = `{{template "header" .}}
// SetupRoutes registers every navigation destination with controller.
func SetupRoutes(controller *compass.Controller) error {
	controller.SetStartDestination({{quote .StartTemplate}})
{{range .Routes}}
	if err := controller.Register(compass.Destination{
		Template: {{quote .Template}},
{{- if .Codec.Declarations}}
		Arguments: []compass.Argument{
{{- range .Codec.Declarations}}
			{Key: {{quote .Key}}, Nullable: {{.Nullable}}, Kind: compass.{{argumentKind .Kind}}},
{{- end}}
		},
{{- end}}
		Handler: func(entry *compass.BackStackEntry) error {
{{- if $.Tracing}}
			controller.Tracef("Navigating to %s", {{quote .Destination}})
{{- end}}
{{- range .Codec.Extractions}}
			{{.Variable}}, err := entry.Arguments.{{.Accessor}}({{quote .Key}})
			if err != nil {
				return err
			}
{{- end}}
{{- range .Codec.Assertions}}
			if err := compass.RequireArgument({{quote .Key}}, {{.Variable}}); err != nil {
				return err
			}
{{- end}}
			return {{.Call}}
		},
	}); err != nil {
		return err
	}
{{end}}
	return nil
}
`

	tr.templates[StubDispatchTemplate] = `{{template "header" .}}
// SetupRoutes fails because navigation could not be generated.
func SetupRoutes(controller *compass.Controller) error {
	return compass.ErrNavigationNotGenerated
}
`
}

func (tr *TemplateRegistry) registerNavigatorTemplates() {
	tr.templates[NavigatorTypeTemplate] = `// Navigator builds routes from typed arguments and commits them to a controller.
type Navigator struct {
	controller *compass.Controller
}

// NewNavigator binds a Navigator to controller.
func NewNavigator(controller *compass.Controller) *Navigator {
	return &Navigator{controller: controller}
}
`

	tr.templates[NavigateMethodTemplate] = `// {{.Function}} navigates to {{.Destination}}.
func (nv *Navigator) {{.Function}}({{range .Arguments}}{{.Name}} {{.Type}}, {{end}}opts ...compass.NavOption) error {
	return nv.controller.Navigate({{routeExpr .Route}}, opts...)
}
`

	tr.templates[NavigatorTemplate] = `{{template "header" .}}
{{template "navigator-type" .}}
{{- range .Entries}}
{{template "navigate-method" .}}
{{- end}}
{{- with .Home}}
{{template "navigate-method" .}}
{{- end}}
// {{.Back.Function}} returns to the previous destination.
func (nv *Navigator) {{.Back.Function}}() error {
	return nv.controller.NavigateUp()
}
`

	tr.templates[StubNavigatorTemplate] = `{{template "header" .}}
{{template "navigator-type" .}}
{{- range .Stubs}}
// {{.}} fails because navigation could not be generated.
func (nv *Navigator) {{.}}(stub ...any) error {
	return compass.ErrNavigationNotGenerated
}
{{end}}`
}
