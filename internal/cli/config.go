package cli

import (
	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/utils"
)

// DefaultManifestName is looked up when no manifest path is given
const DefaultManifestName = "compass.toml"

// Config holds the configuration for one generate run. Non-empty fields
// override the matching manifest settings.
type Config struct {
	// ManifestPath is the TOML file declaring the destinations
	ManifestPath string

	// OutputDir receives the generated files. Defaults to the manifest's
	// directory.
	OutputDir string

	// PackageName overrides the manifest's package clause
	PackageName string

	// ImportPath is the import path of the output package. If empty it is
	// taken from the manifest, then derived from go.mod.
	ImportPath string

	// Logging overrides the manifest's logging switch when set
	Logging *bool

	// Verbose enables detailed logging and error reporting
	Verbose bool

	// Quiet only reports errors
	Quiet bool

	// DryRun prints the artifacts instead of writing them
	DryRun bool
}

// Validate checks the flag-level settings
func (c Config) Validate() error {
	if c.Verbose && c.Quiet {
		return errors.New(errors.ConfigurationErrorCode, "--verbose and --quiet are mutually exclusive")
	}
	if c.PackageName != "" {
		if err := utils.IsValidGoIdentifier("package")(c.PackageName); err != nil {
			return errors.WrapConfigurationError("package", "validate", err)
		}
	}
	if err := utils.IsValidImportPath("import-path")(c.ImportPath); err != nil {
		return errors.WrapConfigurationError("import-path", "validate", err)
	}
	return nil
}

// DiagnosticLevel maps the verbosity flags to a diagnostic level
func (c Config) DiagnosticLevel() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	}
	return utils.DiagnosticInfo
}
