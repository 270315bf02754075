// Package collector runs one compilation pass: it accumulates discovered
// destinations, validates the closed set once and decides between full and
// stub emission. No error escapes Finalize; every failure resolves to
// emitting nothing, stubs, or the full artifacts.
package collector

import (
	"fmt"
	"iter"

	"github.com/toyz/compass/internal/errors"
	"github.com/toyz/compass/internal/generator"
	"github.com/toyz/compass/internal/models"
)

// ErrPassFinalized is returned when destinations arrive after Finalize
var ErrPassFinalized = errors.New(errors.UnknownErrorCode, "compilation pass already finalized")

// State of a compilation pass
type State int

const (
	Empty State = iota
	Collecting
	Valid
	InvalidEmpty
	InvalidNoHome
)

func (s State) String() string {
	switch s {
	case Empty:
		return "Empty"
	case Collecting:
		return "Collecting"
	case Valid:
		return "Valid"
	case InvalidEmpty:
		return "Invalid(Empty)"
	case InvalidNoHome:
		return "Invalid(NoHome)"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Mode is what the pass emitted
type Mode int

const (
	ModeNone Mode = iota
	ModeFull
	ModeStub
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeFull:
		return "full"
	case ModeStub:
		return "stub"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Reporter receives the pass diagnostics. utils.DiagnosticSystem
// satisfies it.
type Reporter interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Result is the outcome of a finalized pass
type Result struct {
	State     State
	Mode      Mode
	Artifacts []models.GeneratedArtifact
	// Err is the failure that degraded the pass, nil for full emission
	Err error
}

// Collector owns the destination set of one compilation pass
type Collector struct {
	emitter  generator.CodeGenerator
	reporter Reporter
	set      *models.DestinationSet
	state    State
	result   *Result
}

// New creates a collector for a single pass
func New(emitter generator.CodeGenerator, reporter Reporter) *Collector {
	return &Collector{
		emitter:  emitter,
		reporter: reporter,
		set:      models.NewDestinationSet(),
		state:    Empty,
	}
}

// State returns the current state
func (c *Collector) State() State {
	return c.state
}

// Len returns the number of collected destinations
func (c *Collector) Len() int {
	return c.set.Len()
}

// Collect adds a discovered destination. A destination with an already
// collected name replaces the earlier one.
func (c *Collector) Collect(d models.NavigationDestination) error {
	if c.result != nil {
		return ErrPassFinalized
	}

	if c.set.Add(d) {
		c.reporter.Warn("Destination %s declared more than once, the last declaration wins", d.ActualName)
	}
	c.state = Collecting
	return nil
}

// CollectAll collects every destination of seq, in order
func (c *Collector) CollectAll(seq iter.Seq[models.NavigationDestination]) error {
	for d := range seq {
		if err := c.Collect(d); err != nil {
			return err
		}
	}
	return nil
}

// Finalize closes the pass, validates the set and emits. It runs once;
// later calls return the same result.
func (c *Collector) Finalize() Result {
	if c.result != nil {
		return *c.result
	}

	result := c.finalize()
	c.state = result.State
	c.result = &result
	return result
}

func (c *Collector) finalize() Result {
	if c.set.Len() == 0 {
		err := errors.NewEmptySetError()
		c.reporter.Info("%s", err.Message)
		return Result{State: InvalidEmpty, Mode: ModeNone, Err: err}
	}

	if homes := c.set.Homes(); len(homes) != 1 {
		err := errors.NewNoHomeError(homes)
		c.reporter.Error("%s", err.Message)
		return c.stub(InvalidNoHome, err)
	}

	artifacts, err := guard(func() ([]models.GeneratedArtifact, error) {
		return c.emitter.EmitFull(c.set)
	})
	if err != nil {
		c.report(err)
		return c.stub(Valid, err)
	}
	return Result{State: Valid, Mode: ModeFull, Artifacts: artifacts}
}

// stub degrades to stub emission. If even that fails the pass emits nothing.
func (c *Collector) stub(state State, cause error) Result {
	artifacts, err := guard(func() ([]models.GeneratedArtifact, error) {
		return c.emitter.EmitStub(c.set.EffectiveNames())
	})
	if err != nil {
		c.report(err)
		return Result{State: state, Mode: ModeNone, Err: cause}
	}
	return Result{State: state, Mode: ModeStub, Artifacts: artifacts, Err: cause}
}

func (c *Collector) report(err error) {
	var unsupported *errors.UnsupportedParameterTypeError
	var invalid *errors.ValidationError
	switch {
	case errors.As(err, &unsupported):
		c.reporter.Error("%s", unsupported.Message)
	case errors.As(err, &invalid):
		c.reporter.Error("%s", invalid.Message)
	default:
		c.reporter.Error("Unknown error during code generation: %v", err)
	}
}

// guard runs fn and turns a panic into an error
func guard(fn func() ([]models.GeneratedArtifact, error)) (artifacts []models.GeneratedArtifact, err error) {
	defer func() {
		if r := recover(); r != nil {
			artifacts = nil
			err = errors.Newf(errors.UnknownErrorCode, "panic: %v", r)
		}
	}()
	return fn()
}
