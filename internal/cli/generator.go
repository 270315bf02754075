package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/toyz/compass/internal/collector"
	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/generator"
	"github.com/toyz/compass/internal/registry"
	"github.com/toyz/compass/internal/utils"
)

// Generator coordinates the CLI generation process: manifest in, artifacts
// written to the output directory
type Generator struct {
	moduleResolver *ModuleResolver
	diagnostics    *utils.DiagnosticSystem
	stdout         io.Writer
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return NewGeneratorWithOutput(diagnostics, os.Stdout)
}

// NewGeneratorWithOutput creates a generator printing dry-run artifacts to
// stdout
func NewGeneratorWithOutput(diagnostics *utils.DiagnosticSystem, stdout io.Writer) *Generator {
	return &Generator{
		moduleResolver: NewModuleResolver(),
		diagnostics:    diagnostics,
		stdout:         stdout,
	}
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes one compilation pass. Artifacts are written even when the
// pass degraded to stubs; the returned error then names why.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	if err := config.Validate(); err != nil {
		return err
	}

	manifestPath := config.ManifestPath
	if manifestPath == "" {
		manifestPath = DefaultManifestName
	}

	g.diagnostics.Header("Generating navigation from " + manifestPath)
	g.diagnostics.Verbose("Starting code generation at %s", startTime.Format("15:04:05"))

	g.diagnostics.PhaseHeader("Loading")
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	g.diagnostics.PhaseItem(fmt.Sprintf("Loaded %d destination declarations", len(manifest.Destinations)))

	outputDir := config.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(manifestPath)
	}

	options := generator.Options{
		PackageName: firstNonEmpty(config.PackageName, manifest.Package, generator.DefaultPackageName),
		Tracing:     manifest.Logging,
	}
	if config.Logging != nil {
		options.Tracing = *config.Logging
	}

	importPath, err := g.moduleResolver.ResolveImportPath(outputDir, config.ImportPath, manifest.ImportPath)
	if err != nil {
		g.diagnostics.Warn("%v", err)
		g.diagnostics.Warn("Every destination with a package will be imported")
	} else {
		options.ImportPath = importPath
		g.diagnostics.Debug("Output import path: %s", importPath)
	}

	reg := registry.NewTypeRegistry()
	if err := manifest.RegisterAliases(reg); err != nil {
		return err
	}

	g.diagnostics.PhaseHeader("Compiling")
	pass := collector.New(generator.NewGenerator(options), g.diagnostics)
	if err := pass.CollectAll(manifest.DestinationSeq(reg)); err != nil {
		return err
	}
	result := pass.Finalize()

	g.summary.Destinations = pass.Len()
	g.summary.State = result.State.String()
	g.summary.Mode = result.Mode.String()
	g.diagnostics.PhaseItem(fmt.Sprintf("Pass finished: %s, %s emission", result.State, result.Mode))

	if len(result.Artifacts) > 0 {
		g.diagnostics.PhaseHeader("Writing")
		if err := g.emit(result, outputDir, config.DryRun); err != nil {
			return err
		}
	}

	g.diagnostics.Summary("Summary:", map[string]interface{}{
		"Destinations": g.summary.Destinations,
		"State":        g.summary.State,
		"Mode":         g.summary.Mode,
		"Files":        len(g.summary.GeneratedFiles),
		"Duration":     time.Since(startTime).Round(time.Millisecond),
	})

	if result.Err != nil && result.State != collector.InvalidEmpty {
		return result.Err
	}
	g.diagnostics.GenerationComplete()
	return nil
}

func (g *Generator) emit(result collector.Result, outputDir string, dryRun bool) error {
	if !dryRun {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return errors.WrapFileSystemError("create", outputDir, err)
		}
	}

	for _, artifact := range result.Artifacts {
		path := filepath.Join(outputDir, artifact.FileName)

		if dryRun {
			fmt.Fprintf(g.stdout, "// %s\n%s\n", path, artifact.Content)
			continue
		}

		g.diagnostics.PhaseProgress("Writing " + path)
		if err := utils.FormatAndWriteGoFile(path, artifact.Content); err != nil {
			return errors.WrapFileSystemError("write", path, err)
		}
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, path)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
