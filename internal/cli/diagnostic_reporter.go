package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/compass/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterWithWriter(verbose, os.Stderr)
}

// NewDiagnosticReporterWithWriter creates a reporter writing to out
func NewDiagnosticReporterWithWriter(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose, out: out}
}

// ReportWarning provides user-friendly warning reporting
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError reports err with its code, location, context and suggestions
// when it carries them
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	var multi *errors.MultipleErrors
	var compassErr errors.CompassError
	switch {
	case errors.As(err, &multi):
		for i, e := range multi.Errors {
			if i > 0 {
				fmt.Fprintln(r.out)
			}
			r.reportCompassError(e)
		}
	case errors.As(err, &compassErr):
		r.reportCompassError(compassErr)
	default:
		fmt.Fprintf(r.out, "Message: %s\n", err.Error())
	}

	fmt.Fprintf(r.out, "\nFor more help:\n")
	fmt.Fprintf(r.out, "  - Run with --verbose for more detailed output\n")
	fmt.Fprintf(r.out, "  - Check the manifest with 'compass generate --dry-run'\n")
}

func (r *DiagnosticReporter) reportCompassError(err errors.CompassError) {
	title := errorTitle(err.ErrorCode())
	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))

	fmt.Fprintf(r.out, "Message: %s\n", err.Error())

	if loc := err.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n", loc.String())
	}

	if context := err.Context(); len(context) > 0 {
		r.printContext(context)
	}

	if suggestions := err.Suggestions(); len(suggestions) > 0 {
		fmt.Fprintf(r.out, "Suggestions:\n")
		for i, suggestion := range suggestions {
			fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
		}
	}

	if r.verbose {
		r.printErrorChain(err)
	}
}

// printContext prints context entries sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
}

func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "Error Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "    %d. %T: %s\n", level, err, err.Error())
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
		level++
	}
}

// Debug prints debug information when verbose mode is enabled
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(r.out, "[DEBUG] "+format+"\n", args...)
	}
}

func errorTitle(code errors.ErrorCode) string {
	switch code {
	case errors.UnsupportedParameterTypeErrorCode:
		return "Unsupported Parameter Type"
	case errors.ValidationErrorCode:
		return "Validation Error"
	case errors.GenerationErrorCode:
		return "Code Generation Error"
	case errors.TemplateErrorCode:
		return "Template Error"
	case errors.FileSystemErrorCode:
		return "File System Error"
	case errors.ManifestErrorCode:
		return "Manifest Error"
	case errors.ConfigurationErrorCode:
		return "Configuration Error"
	}
	return "Unknown Error"
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// GenerationSummary contains information about one generate run
type GenerationSummary struct {
	Destinations   int
	Mode           string
	State          string
	GeneratedFiles []string
}
