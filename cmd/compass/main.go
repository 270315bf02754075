package main

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/toyz/compass/internal/cli"
	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/utils"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

// reportedError marks a failure the diagnostic reporter already printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			color.New(color.FgRed).Fprint(os.Stderr, "Error: ")
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "compass",
		Short: "Compass navigation code generator",
		Long: `Compass compiles the navigation destinations declared in a TOML manifest
into a route table and a type-safe Navigator.

When the destinations cannot be compiled, stub files are written instead so
code calling the Navigator keeps building while the manifest is fixed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(
		generateCmd(stdout, stderr),
		cleanCmd(stdout, stderr),
		versionCmd(stdout),
	)
	return rootCmd
}

func generateCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		config  cli.Config
		logging bool
	)

	cmd := &cobra.Command{
		Use:   "generate [manifest]",
		Short: "Generate the route table and Navigator",
		Long: `Generate reads the manifest (default ./compass.toml) and writes
autogen_routes.go and autogen_navigator.go next to it, or into --out.`,
		Example: `  compass generate
  compass generate ./internal/nav/compass.toml
  compass generate --package routing --out ./internal/routing nav.toml
  compass generate --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				config.ManifestPath = args[0]
			}
			if cmd.Flags().Changed("logging") {
				config.Logging = &logging
			}

			diagnostics := utils.NewDiagnosticSystemWithWriters(config.DiagnosticLevel(), stdout, stderr)
			reporter := cli.NewDiagnosticReporterWithWriter(config.Verbose, stderr)

			if err := cli.NewGeneratorWithOutput(diagnostics, stdout).Run(config); err != nil {
				reporter.ReportError(err)
				return &reportedError{err: err}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&config.OutputDir, "out", "o", "", "Output directory (defaults to the manifest's directory)")
	flags.StringVarP(&config.PackageName, "package", "p", "", "Package name of the generated files")
	flags.StringVar(&config.ImportPath, "import-path", "", "Import path of the output package (defaults to go.mod resolution)")
	flags.BoolVar(&logging, "logging", false, "Trace every dispatched navigation")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "Enable verbose output and detailed error reporting")
	flags.BoolVarP(&config.Quiet, "quiet", "q", false, "Only show errors")
	flags.BoolVar(&config.DryRun, "dry-run", false, "Print the generated files instead of writing them")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

func cleanCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "clean [directory...]",
		Short: "Delete generated navigation files",
		Long: `Clean removes autogen_routes.go and autogen_navigator.go from the given
directories. Go-style patterns like ./... clean recursively.`,
		Example: `  compass clean ./internal/nav
  compass clean ./...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			diagnostics := utils.NewDiagnosticSystemWithWriters(utils.DiagnosticInfo, stdout, stderr)

			removed, err := cli.NewCleaner().CleanGeneratedFiles(args)
			for _, file := range removed {
				diagnostics.List("%s", file)
			}
			if err != nil {
				diagnostics.Error("Clean operation failed: %v", err)
				return &reportedError{err: err}
			}

			diagnostics.Success("Removed %d generated files", len(removed))
			return nil
		},
	}
}

func versionCmd(stdout io.Writer) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(stdout, version)
				return
			}
			fmt.Fprintf(stdout, "compass %s (%s) %s %s/%s\n", version, commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")
	return cmd
}
