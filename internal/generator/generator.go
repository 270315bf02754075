// Package generator is the emitter: it turns a destination set into the
// dispatch and navigator artifacts, or into their stub counterparts when the
// set cannot be generated.
package generator

import (
	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/models"
	"github.com/toyz/compass/internal/templates"
)

// DefaultPackageName is used when Options.PackageName is empty
const DefaultPackageName = "navigation"

// Options configure a Generator
type Options struct {
	PackageName string // package clause of the generated files
	ImportPath  string // import path of the output package
	Tracing     bool   // add trace statements to dispatch handlers
}

// Generator implements the CodeGenerator interface
type Generator struct {
	options  Options
	renderer Renderer
}

// NewGenerator creates a generator rendering Go source
func NewGenerator(options Options) *Generator {
	return NewGeneratorWithRenderer(options, templates.NewGoRenderer())
}

// NewGeneratorWithRenderer creates a generator with a custom back-end
func NewGeneratorWithRenderer(options Options, renderer Renderer) *Generator {
	if options.PackageName == "" {
		options.PackageName = DefaultPackageName
	}
	return &Generator{options: options, renderer: renderer}
}

// Options returns the effective options
func (g *Generator) Options() Options {
	return g.options
}

// EmitFull renders the dispatch and navigator artifacts of set
func (g *Generator) EmitFull(set *models.DestinationSet) ([]models.GeneratedArtifact, error) {
	dispatch, navigator, err := g.BuildFull(set)
	if err != nil {
		return nil, err
	}

	routes, err := g.renderer.RenderDispatch(dispatch)
	if err != nil {
		return nil, errors.WrapGenerateError(models.DispatchArtifactName, err)
	}
	nav, err := g.renderer.RenderNavigator(navigator)
	if err != nil {
		return nil, errors.WrapGenerateError(models.NavigatorArtifactName, err)
	}

	return g.artifacts(routes, nav, false), nil
}

// EmitStub renders placeholder artifacts exposing the navigate methods of
// names, which are effective destination names
func (g *Generator) EmitStub(names []string) ([]models.GeneratedArtifact, error) {
	dispatch, navigator := g.BuildStub(names)

	routes, err := g.renderer.RenderDispatch(dispatch)
	if err != nil {
		return nil, errors.WrapGenerateError(models.DispatchArtifactName, err)
	}
	nav, err := g.renderer.RenderNavigator(navigator)
	if err != nil {
		return nil, errors.WrapGenerateError(models.NavigatorArtifactName, err)
	}

	return g.artifacts(routes, nav, true), nil
}

func (g *Generator) artifacts(routes, navigator string, stub bool) []models.GeneratedArtifact {
	return []models.GeneratedArtifact{
		{
			Name:        models.DispatchArtifactName,
			FileName:    models.DispatchFileName,
			PackageName: g.options.PackageName,
			Content:     routes,
			Stub:        stub,
		},
		{
			Name:        models.NavigatorArtifactName,
			FileName:    models.NavigatorFileName,
			PackageName: g.options.PackageName,
			Content:     navigator,
			Stub:        stub,
		},
	}
}
