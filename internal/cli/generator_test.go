package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/models"
	"github.com/toyz/compass/internal/utils"
)

// newProject lays out a module with a manifest in its nav directory and
// returns the manifest path
func newProject(t *testing.T, manifest string) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/app\n\ngo 1.25\n")
	path := filepath.Join(root, "nav", DefaultManifestName)
	writeFile(t, path, manifest)
	return path
}

func silentGenerator(stdout io.Writer) *Generator {
	return NewGeneratorWithOutput(utils.NewDiagnosticSystemWithWriters(utils.DiagnosticSilent, io.Discard, io.Discard), stdout)
}

func readGenerated(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(content)
}

func TestGenerator_Run(t *testing.T) {
	manifestPath := newProject(t, `
package = "nav"

[[destination]]
name = "Home"
package = "example.com/app/nav"
home = true

[[destination]]
name = "Detail"
package = "example.com/app/screens"

  [[destination.parameter]]
  name = "id"
  type = "int"
`)
	navDir := filepath.Dir(manifestPath)

	g := silentGenerator(io.Discard)
	require.NoError(t, g.Run(Config{ManifestPath: manifestPath}))

	routes := readGenerated(t, navDir, models.DispatchFileName)
	assert.Contains(t, routes, "// Code generated by compass. DO NOT EDIT.")
	assert.Contains(t, routes, "package nav\n")
	assert.Contains(t, routes, `"example.com/app/screens"`)
	assert.NotContains(t, routes, `"example.com/app/nav"`)
	assert.Contains(t, routes, "func SetupRoutes(controller *compass.Controller) error {")

	nav := readGenerated(t, navDir, models.NavigatorFileName)
	assert.Contains(t, nav, "func (nv *Navigator) NavigateToDetail(id int32, opts ...compass.NavOption) error {")
	assert.Contains(t, nav, "func (nv *Navigator) NavigateHome(")

	summary := g.GetSummary()
	assert.Equal(t, 2, summary.Destinations)
	assert.Equal(t, "full", summary.Mode)
	assert.Equal(t, "Valid", summary.State)
	assert.Len(t, summary.GeneratedFiles, 2)
}

func TestGenerator_RunOverrides(t *testing.T) {
	manifestPath := newProject(t, `
package = "nav"

[[destination]]
name = "Home"
home = true
`)
	outDir := filepath.Join(t.TempDir(), "out")
	logging := true

	g := silentGenerator(io.Discard)
	require.NoError(t, g.Run(Config{
		ManifestPath: manifestPath,
		OutputDir:    outDir,
		PackageName:  "routing",
		ImportPath:   "example.com/other/routing",
		Logging:      &logging,
	}))

	routes := readGenerated(t, outDir, models.DispatchFileName)
	assert.Contains(t, routes, "package routing\n")
	assert.Contains(t, routes, "Tracef(")
}

func TestGenerator_RunWithoutHomeWritesStubs(t *testing.T) {
	manifestPath := newProject(t, `
[[destination]]
name = "A"

[[destination]]
name = "B"
`)
	navDir := filepath.Dir(manifestPath)

	g := silentGenerator(io.Discard)
	err := g.Run(Config{ManifestPath: manifestPath})
	require.Error(t, err)
	assert.Equal(t, errors.ValidationErrorCode, errors.CodeOf(err))

	nav := readGenerated(t, navDir, models.NavigatorFileName)
	assert.Contains(t, nav, "package navigation\n")
	assert.Contains(t, nav, "NavigateToA(stub ...any) error")
	assert.Contains(t, nav, "NavigateToB(stub ...any) error")
	assert.Contains(t, readGenerated(t, navDir, models.DispatchFileName), "compass.ErrNavigationNotGenerated")
	assert.Equal(t, "stub", g.GetSummary().Mode)
}

func TestGenerator_RunEmptyManifest(t *testing.T) {
	manifestPath := newProject(t, "package = \"nav\"\n")

	g := silentGenerator(io.Discard)
	require.NoError(t, g.Run(Config{ManifestPath: manifestPath}))

	assert.NoFileExists(t, filepath.Join(filepath.Dir(manifestPath), models.DispatchFileName))
	assert.Equal(t, "Invalid(Empty)", g.GetSummary().State)
	assert.Equal(t, "none", g.GetSummary().Mode)
}

func TestGenerator_RunDryRun(t *testing.T) {
	manifestPath := newProject(t, `
[[destination]]
name = "Home"
home = true
`)
	var stdout bytes.Buffer

	g := silentGenerator(&stdout)
	require.NoError(t, g.Run(Config{ManifestPath: manifestPath, DryRun: true}))

	assert.Contains(t, stdout.String(), models.DispatchFileName)
	assert.Contains(t, stdout.String(), "func SetupRoutes(")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(manifestPath), models.DispatchFileName))
	assert.Empty(t, g.GetSummary().GeneratedFiles)
}

func TestGenerator_RunInvalidConfig(t *testing.T) {
	g := silentGenerator(io.Discard)

	err := g.Run(Config{Verbose: true, Quiet: true})
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))

	err = g.Run(Config{PackageName: "not-valid"})
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))

	err = g.Run(Config{ManifestPath: filepath.Join(t.TempDir(), "missing.toml")})
	require.Error(t, err)
	assert.Equal(t, errors.ManifestErrorCode, errors.CodeOf(err))
}

func TestConfig_DiagnosticLevel(t *testing.T) {
	assert.Equal(t, utils.DiagnosticError, Config{Quiet: true}.DiagnosticLevel())
	assert.Equal(t, utils.DiagnosticVerbose, Config{Verbose: true}.DiagnosticLevel())
	assert.Equal(t, utils.DiagnosticInfo, Config{}.DiagnosticLevel())
}
