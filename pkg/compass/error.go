package compass

import (
	"errors"
	"fmt"
)

// ErrNavigationNotGenerated is returned by every function of a stub navigation
// artifact. The generator falls back to stubs when the destination set is
// invalid, the build log carries the reason.
var ErrNavigationNotGenerated = errors.New("navigation could not be generated. Check build log for more details.")

var (
	// ErrRouteNotFound is returned when no registered destination matches a route.
	ErrRouteNotFound = errors.New("no destination matches route")

	// ErrNoStartDestination is returned by Start when no start destination was set.
	ErrNoStartDestination = errors.New("no start destination configured")

	// ErrStartRequiresArguments is returned by Start when the start destination
	// has required arguments, since Start navigates without any.
	ErrStartRequiresArguments = errors.New("start destination requires arguments")

	// ErrBackStackEmpty is returned by NavigateUp when the current entry is the root.
	ErrBackStackEmpty = errors.New("back stack has no previous entry")

	// ErrDuplicateDestination is returned by Register for an already registered template.
	ErrDuplicateDestination = errors.New("destination already registered")
)

// ArgumentError describes a route argument that is missing, malformed or of
// the wrong kind.
type ArgumentError struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

// Error implements the error interface
func (e *ArgumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("argument %q: %s: %v", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("argument %q: %s", e.Key, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// NewArgumentError creates a new ArgumentError
func NewArgumentError(key, reason string, cause error) *ArgumentError {
	return &ArgumentError{Key: key, Reason: reason, Err: cause}
}

// RequireArgument fails when a required argument was not present in the route.
// Generated dispatch code calls it once per non-nullable parameter, after all
// arguments have been extracted.
func RequireArgument[T any](key string, value *T) error {
	if value == nil {
		return NewArgumentError(key, "required argument is missing", nil)
	}
	return nil
}
