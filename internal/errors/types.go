package errors

import (
	"fmt"
	"maps"
	"strings"
)

// CompassError defines the base interface for all compass generator errors
type CompassError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies a failure
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	UnsupportedParameterTypeErrorCode
	ValidationErrorCode

	// emission
	GenerationErrorCode
	TemplateErrorCode
	FileSystemErrorCode

	// input
	ManifestErrorCode
	ConfigurationErrorCode
)

var codeNames = [...]string{
	UnknownErrorCode:                  "UnknownError",
	UnsupportedParameterTypeErrorCode: "UnsupportedParameterType",
	ValidationErrorCode:               "ValidationError",
	GenerationErrorCode:               "GenerationError",
	TemplateErrorCode:                 "TemplateError",
	FileSystemErrorCode:               "FileSystemError",
	ManifestErrorCode:                 "ManifestError",
	ConfigurationErrorCode:            "ConfigurationError",
}

func (e ErrorCode) String() string {
	if e < 0 || int(e) >= len(codeNames) {
		return codeNames[UnknownErrorCode]
	}
	return codeNames[e]
}

// SourceLocation points at the input an error came from. For manifest input
// the file is the manifest path.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty reports whether the location names no file
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError is the common CompassError implementation. The builder methods
// mutate and return the receiver so errors can be assembled in one chain.
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

func (e *BaseError) Error() string {
	var b strings.Builder
	if !e.Loc.IsEmpty() {
		b.WriteString(e.Loc.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *BaseError) ErrorCode() ErrorCode     { return e.Code }
func (e *BaseError) Location() SourceLocation { return e.Loc }
func (e *BaseError) Suggestions() []string    { return e.Hints }
func (e *BaseError) Unwrap() error            { return e.Cause }

// Context returns a copy of the context data, never nil
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return maps.Clone(e.ContextData)
}

// WithLocation sets where the error came from
func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

// WithCause sets the underlying error
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext records one context entry
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion appends a hint for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// New creates a BaseError
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

// Newf creates a BaseError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a BaseError caused by cause
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return New(code, message).WithCause(cause)
}

// Wrapf is Wrap with a formatted message
func Wrapf(code ErrorCode, cause error, format string, args ...interface{}) *BaseError {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// MultipleErrors collects independent failures so they can be reported
// together
type MultipleErrors struct {
	Errors []CompassError
}

// NewMultipleErrors creates an empty collection
func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{Errors: make([]CompassError, 0)}
}

// Add appends err
func (e *MultipleErrors) Add(err CompassError) {
	e.Errors = append(e.Errors, err)
}

// Append adds any error: nested collections are flattened and foreign
// errors are wrapped with code. nil is ignored.
func (e *MultipleErrors) Append(code ErrorCode, err error) {
	if err == nil {
		return
	}
	var multi *MultipleErrors
	if As(err, &multi) {
		e.Errors = append(e.Errors, multi.Errors...)
		return
	}
	var ce CompassError
	if As(err, &ce) {
		e.Add(ce)
		return
	}
	e.Add(Wrap(code, err.Error(), nil))
}

func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	lines := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		lines[i] = fmt.Sprintf("  %d. %s", i+1, err.Error())
	}
	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e.Errors), strings.Join(lines, "\n"))
}

// ErrorCode is the code of the first error
func (e *MultipleErrors) ErrorCode() ErrorCode {
	if len(e.Errors) == 0 {
		return UnknownErrorCode
	}
	return e.Errors[0].ErrorCode()
}

// Location is the location of the first error
func (e *MultipleErrors) Location() SourceLocation {
	if len(e.Errors) == 0 {
		return SourceLocation{}
	}
	return e.Errors[0].Location()
}

// Context merges every error's context, keys prefixed by the error index
func (e *MultipleErrors) Context() map[string]interface{} {
	combined := make(map[string]interface{})
	for i, err := range e.Errors {
		for k, v := range err.Context() {
			combined[fmt.Sprintf("error_%d_%s", i, k)] = v
		}
	}
	return combined
}

// Suggestions concatenates every error's suggestions
func (e *MultipleErrors) Suggestions() []string {
	var suggestions []string
	for _, err := range e.Errors {
		suggestions = append(suggestions, err.Suggestions()...)
	}
	return suggestions
}

// Unwrap exposes every collected error to errors.Is and errors.As
func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// IsEmpty reports whether nothing was collected
func (e *MultipleErrors) IsEmpty() bool {
	return len(e.Errors) == 0
}

// HasCode reports whether any collected error carries code
func (e *MultipleErrors) HasCode(code ErrorCode) bool {
	for _, err := range e.Errors {
		if err.ErrorCode() == code {
			return true
		}
	}
	return false
}

// ErrOrNil returns the collection as an error, or nil when it is empty
func (e *MultipleErrors) ErrOrNil() error {
	if e.IsEmpty() {
		return nil
	}
	return e
}

// CodeOf returns the ErrorCode of err, or UnknownErrorCode for foreign errors
func CodeOf(err error) ErrorCode {
	var ce CompassError
	if As(err, &ce) {
		return ce.ErrorCode()
	}
	return UnknownErrorCode
}
