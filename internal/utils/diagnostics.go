package utils

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel represents the level of diagnostic output
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

// messageStyle describes one kind of leveled message
type messageStyle struct {
	tag    string
	min    DiagnosticLevel
	attr   color.Attribute
	stderr bool
}

var (
	errorStyle   = messageStyle{tag: "ERROR", min: DiagnosticError, attr: color.FgRed, stderr: true}
	warnStyle    = messageStyle{tag: "WARN", min: DiagnosticWarn, attr: color.FgYellow}
	infoStyle    = messageStyle{tag: "INFO", min: DiagnosticInfo, attr: color.FgBlue}
	successStyle = messageStyle{tag: "SUCCESS", min: DiagnosticInfo, attr: color.FgGreen}
	verboseStyle = messageStyle{tag: "VERBOSE", min: DiagnosticVerbose, attr: color.FgHiBlack}
	debugStyle   = messageStyle{tag: "DEBUG", min: DiagnosticDebug, attr: color.FgMagenta}
)

// DiagnosticSystem prints leveled, optionally colored progress and
// diagnostics for a generate run. It satisfies the collector's Reporter.
type DiagnosticSystem struct {
	level     DiagnosticLevel
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
}

// NewDiagnosticSystem writes to stdout and stderr
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	return NewDiagnosticSystemWithWriters(level, os.Stdout, os.Stderr)
}

// NewDiagnosticSystemWithWriters uses explicit writers. Colors follow the
// terminal environment; timestamps are on from DiagnosticVerbose up.
func NewDiagnosticSystemWithWriters(level DiagnosticLevel, output, errorOut io.Writer) *DiagnosticSystem {
	return &DiagnosticSystem{
		level:     level,
		useColors: colorsFromEnv(),
		showTime:  level >= DiagnosticVerbose,
		output:    output,
		errorOut:  errorOut,
	}
}

// NewQuietDiagnostics only shows errors
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

// NewVerboseDiagnostics shows everything but debug output
func NewVerboseDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticVerbose)
}

func (d *DiagnosticSystem) SetColors(enabled bool)  { d.useColors = enabled }
func (d *DiagnosticSystem) SetShowTime(enabled bool) { d.showTime = enabled }
func (d *DiagnosticSystem) Level() DiagnosticLevel   { return d.level }

func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	d.emit(errorStyle, format, args...)
}

func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	d.emit(warnStyle, format, args...)
}

func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	d.emit(infoStyle, format, args...)
}

func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	d.emit(successStyle, format, args...)
}

func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	d.emit(verboseStyle, format, args...)
}

func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	d.emit(debugStyle, format, args...)
}

// List prints a bulleted item at the current indentation
func (d *DiagnosticSystem) List(format string, args ...interface{}) {
	d.line(d.indentation() + "- " + fmt.Sprintf(format, args...))
}

func (d *DiagnosticSystem) Indent() { d.indent++ }

func (d *DiagnosticSystem) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Summary prints title and the stats sorted by key
func (d *DiagnosticSystem) Summary(title string, stats map[string]interface{}) {
	if d.level < DiagnosticInfo {
		return
	}

	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", title)
	for _, key := range keys {
		fmt.Fprintf(&b, "   %s: %v\n", key, stats[key])
	}
	b.WriteString("\n")
	fmt.Fprint(d.output, b.String())
}

// Header prints the run banner
func (d *DiagnosticSystem) Header(message string) {
	d.line(d.paint(color.FgCyan, "Compass: "+message))
}

func (d *DiagnosticSystem) PhaseHeader(phase string) {
	d.line(d.paint(color.FgBlue, phase+":"))
}

func (d *DiagnosticSystem) PhaseItem(message string) {
	d.line(d.paint(color.FgGreen, "✓ ") + message)
}

// PhaseProgress prints an in-phase step; file writes get a pencil
func (d *DiagnosticSystem) PhaseProgress(message string) {
	if strings.HasPrefix(message, "Writing") {
		d.line(d.paint(color.FgMagenta, "✏ ") + message)
		return
	}
	d.line("- " + message)
}

func (d *DiagnosticSystem) GenerationComplete() {
	if d.level < DiagnosticInfo {
		return
	}
	fmt.Fprintln(d.output)
	d.line(d.paint(color.FgGreen, "Compass: Generation complete!"))
}

// line prints text on the output writer from DiagnosticInfo up
func (d *DiagnosticSystem) line(text string) {
	if d.level >= DiagnosticInfo {
		fmt.Fprintln(d.output, text)
	}
}

func (d *DiagnosticSystem) emit(style messageStyle, format string, args ...interface{}) {
	if d.level < style.min {
		return
	}

	var b strings.Builder
	b.WriteString(d.indentation())
	if d.showTime {
		b.WriteString(time.Now().Format("15:04:05 "))
	}
	b.WriteString(d.paint(style.attr, "["+style.tag+"]"))
	b.WriteString(" ")
	fmt.Fprintf(&b, format, args...)
	b.WriteString("\n")

	w := d.output
	if style.stderr {
		w = d.errorOut
	}
	fmt.Fprint(w, b.String())
}

func (d *DiagnosticSystem) paint(attr color.Attribute, text string) string {
	if !d.useColors {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}

func (d *DiagnosticSystem) indentation() string {
	return strings.Repeat("  ", d.indent)
}

// colorsFromEnv honors NO_COLOR and FORCE_COLOR, then TERM
func colorsFromEnv() bool {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return false
	case os.Getenv("FORCE_COLOR") != "":
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
