package errors

import (
	"fmt"
	"strings"
)

// ValidationReason names the structural rule a destination set broke
type ValidationReason int

const (
	// ReasonEmpty means no destinations were collected
	ReasonEmpty ValidationReason = iota
	// ReasonNoHome means zero or more than one destination is marked home
	ReasonNoHome
	// ReasonInvalidDestination means a single destination is malformed
	ReasonInvalidDestination
)

func (r ValidationReason) String() string {
	switch r {
	case ReasonEmpty:
		return "Empty"
	case ReasonNoHome:
		return "NoHome"
	case ReasonInvalidDestination:
		return "InvalidDestination"
	default:
		return fmt.Sprintf("ValidationReason(%d)", int(r))
	}
}

// ValidationError represents a destination set or destination that failed validation
type ValidationError struct {
	*BaseError
	Reason       ValidationReason
	Destinations []string // destinations involved, in set order
}

// NewEmptySetError reports that nothing was collected
func NewEmptySetError() *ValidationError {
	return &ValidationError{
		BaseError: New(ValidationErrorCode, "No navigation destinations were detected."),
		Reason:    ReasonEmpty,
	}
}

// NewNoHomeError reports a destination set without exactly one home. homes
// lists the destinations marked home, which is empty when none is.
func NewNoHomeError(homes []string) *ValidationError {
	message := "No home destination declared. Did you forget to mark one?"
	if len(homes) > 1 {
		message = fmt.Sprintf("Multiple home destinations declared: %s", strings.Join(homes, ", "))
	}

	err := &ValidationError{
		BaseError:    New(ValidationErrorCode, message),
		Reason:       ReasonNoHome,
		Destinations: homes,
	}
	err.WithSuggestion("Mark exactly one destination with home = true")
	return err
}

// NewInvalidDestinationError reports a malformed destination
func NewInvalidDestinationError(destination, problem string) *ValidationError {
	return &ValidationError{
		BaseError:    Newf(ValidationErrorCode, "destination %s: %s", destination, problem),
		Reason:       ReasonInvalidDestination,
		Destinations: []string{destination},
	}
}

// WithSuggestion adds a helpful suggestion
func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.BaseError.WithSuggestion(suggestion)
	return e
}

// WithLocation adds location information to the error
func (e *ValidationError) WithLocation(loc SourceLocation) *ValidationError {
	e.BaseError.WithLocation(loc)
	return e
}

// UnsupportedParameterTypeError is raised for a parameter whose type is
// outside the supported set
type UnsupportedParameterTypeError struct {
	*BaseError
	Descriptor  string
	Destination string
	Parameter   string
}

// NewUnsupportedParameterTypeError creates an error naming the offending type
func NewUnsupportedParameterTypeError(descriptor string) *UnsupportedParameterTypeError {
	err := &UnsupportedParameterTypeError{
		BaseError:  Newf(UnsupportedParameterTypeErrorCode, "Unsupported parameter type: %s", descriptor),
		Descriptor: descriptor,
	}
	err.WithSuggestion("Use string, bool, int, int8, int16, int64, rune, float32 or float64, or a pointer to one of them for optional parameters")
	return err
}

// WithParameter correlates the error with a destination and parameter
func (e *UnsupportedParameterTypeError) WithParameter(destination, parameter string) *UnsupportedParameterTypeError {
	e.Destination = destination
	e.Parameter = parameter
	e.Message = fmt.Sprintf("Unsupported parameter type: %s (destination %s, parameter %s)", e.Descriptor, destination, parameter)
	e.WithContext("destination", destination)
	e.WithContext("parameter", parameter)
	return e
}

// GenerationError represents an error during artifact generation
type GenerationError struct {
	*BaseError
	Artifact string // artifact being generated
	Stage    string // generation stage where the error occurred
}

// NewGenerationError creates a new generation error
func NewGenerationError(artifact, message string) *GenerationError {
	return &GenerationError{
		BaseError: Newf(GenerationErrorCode, "failed to generate %s: %s", artifact, message),
		Artifact:  artifact,
	}
}

// WithStage sets the generation stage
func (e *GenerationError) WithStage(stage string) *GenerationError {
	e.Stage = stage
	return e
}

// WithCause adds an underlying error cause
func (e *GenerationError) WithCause(cause error) *GenerationError {
	e.BaseError.WithCause(cause)
	return e
}
