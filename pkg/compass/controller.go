package compass

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Handler displays a destination for a resolved back stack entry.
type Handler func(entry *BackStackEntry) error

// Argument declares how one template placeholder is typed.
type Argument struct {
	Key      string
	Nullable bool
	Kind     ArgumentKind
}

// Destination is a route template bound to its handler. Generated SetupRoutes
// functions register one per navigation destination.
type Destination struct {
	Template  string
	Arguments []Argument
	Handler   Handler
}

// BackStackEntry is one visited destination.
type BackStackEntry struct {
	ID        uuid.UUID
	Route     string
	Template  string
	Arguments *Arguments
}

type registeredDestination struct {
	Destination
	pattern   *RoutePattern
	arguments map[string]Argument
}

// Controller resolves routes against registered destinations and keeps the
// back stack. It is safe for concurrent use.
type Controller struct {
	mu           sync.RWMutex
	destinations []*registeredDestination
	byTemplate   map[string]*registeredDestination
	start        string
	stack        []*BackStackEntry
	logger       *slog.Logger
}

// NewController creates a controller with no destinations
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{
		byTemplate: make(map[string]*registeredDestination),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds a destination. Every declared argument must name a
// placeholder of the template.
func (c *Controller) Register(dest Destination) error {
	pattern, err := ParseTemplate(dest.Template)
	if err != nil {
		return err
	}
	if dest.Handler == nil {
		return fmt.Errorf("destination %q: handler is nil", dest.Template)
	}

	known := make(map[string]bool, len(pattern.Placeholders))
	for _, ph := range pattern.Placeholders {
		known[ph.Key] = true
	}
	arguments := make(map[string]Argument, len(dest.Arguments))
	for _, arg := range dest.Arguments {
		if !known[arg.Key] {
			return fmt.Errorf("destination %q: argument %q has no placeholder", dest.Template, arg.Key)
		}
		arguments[arg.Key] = arg
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byTemplate[dest.Template]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDestination, dest.Template)
	}
	reg := &registeredDestination{Destination: dest, pattern: pattern, arguments: arguments}
	c.destinations = append(c.destinations, reg)
	c.byTemplate[dest.Template] = reg
	return nil
}

// SetStartDestination records the template of the destination Start opens.
func (c *Controller) SetStartDestination(template string) {
	c.mu.Lock()
	c.start = template
	c.mu.Unlock()
}

// StartDestination returns the configured start template.
func (c *Controller) StartDestination() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.start
}

// Start clears the back stack and opens the start destination. The start
// destination is opened without arguments, so it must not require any.
func (c *Controller) Start() error {
	c.mu.Lock()
	start, ok := c.byTemplate[c.start]
	c.stack = nil
	c.mu.Unlock()

	if !ok {
		return ErrNoStartDestination
	}
	if key, required := start.requiredArgument(); required {
		return fmt.Errorf("%w: %s needs %s", ErrStartRequiresArguments, start.Template, key)
	}
	if err := c.Navigate(start.pattern.Name); err != nil {
		return fmt.Errorf("start destination %q: %w", start.Template, err)
	}
	return nil
}

// Navigate resolves route, runs the destination handler and pushes a new
// back stack entry. Nothing is pushed when the handler fails.
func (c *Controller) Navigate(route string, opts ...NavOption) error {
	dest, values, ok := c.resolve(route)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRouteNotFound, route)
	}

	args, err := dest.bind(values)
	if err != nil {
		return err
	}

	entry := &BackStackEntry{
		ID:        uuid.New(),
		Route:     route,
		Template:  dest.Template,
		Arguments: args,
	}
	if err := dest.Handler(entry); err != nil {
		return err
	}

	options := buildNavOptions(opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if options.PopUpTo != "" {
		c.popUpTo(options.PopUpTo, options.PopUpToInclusive)
	}
	if options.SingleTop && len(c.stack) > 0 && c.stack[len(c.stack)-1].Template == entry.Template {
		c.stack[len(c.stack)-1] = entry
	} else {
		c.stack = append(c.stack, entry)
	}

	c.logger.Debug("navigated", "route", route, "template", entry.Template, "entry", entry.ID, "depth", len(c.stack))
	return nil
}

// NavigateUp pops the current entry and shows the previous one again.
func (c *Controller) NavigateUp() error {
	c.mu.Lock()
	if len(c.stack) < 2 {
		c.mu.Unlock()
		return ErrBackStackEmpty
	}
	c.stack = c.stack[:len(c.stack)-1]
	top := c.stack[len(c.stack)-1]
	dest := c.byTemplate[top.Template]
	c.mu.Unlock()

	if dest == nil {
		return nil
	}
	return dest.Handler(top)
}

// Current returns the entry on top of the back stack, or nil.
func (c *Controller) Current() *BackStackEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

// BackStack returns a copy of the back stack, root first.
func (c *Controller) BackStack() []*BackStackEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stack := make([]*BackStackEntry, len(c.stack))
	copy(stack, c.stack)
	return stack
}

// Templates returns the registered templates in registration order.
func (c *Controller) Templates() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	templates := make([]string, len(c.destinations))
	for i, d := range c.destinations {
		templates[i] = d.Template
	}
	return templates
}

// Tracef logs a navigation trace at debug level. Generated dispatch code
// calls it when tracing is enabled.
func (c *Controller) Tracef(format string, args ...any) {
	c.logger.Log(context.Background(), slog.LevelDebug, fmt.Sprintf(format, args...))
}

func (c *Controller) resolve(route string) (*registeredDestination, map[string]*string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, dest := range c.destinations {
		if values, ok := dest.pattern.Match(route); ok {
			return dest, values, true
		}
	}
	return nil, nil, false
}

func (c *Controller) popUpTo(template string, inclusive bool) {
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.stack[i].Template != template {
			continue
		}
		if inclusive {
			c.stack = c.stack[:i]
		} else {
			c.stack = c.stack[:i+1]
		}
		return
	}
}

// requiredArgument returns the first placeholder that cannot be left absent.
// Path segments are always required.
func (d *registeredDestination) requiredArgument() (string, bool) {
	for _, ph := range d.pattern.Placeholders {
		if d.pattern.Form == PathForm {
			return ph.Key, true
		}
		if arg, declared := d.arguments[ph.Key]; declared && !arg.Nullable {
			return ph.Key, true
		}
	}
	return "", false
}

// bind parses raw placeholder values into typed arguments. Placeholders
// without a declaration are kept as strings.
func (d *registeredDestination) bind(values map[string]*string) (*Arguments, error) {
	args := NewArguments()
	for _, ph := range d.pattern.Placeholders {
		raw := values[ph.Key]
		arg, declared := d.arguments[ph.Key]
		if !declared {
			arg = Argument{Key: ph.Key, Nullable: true, Kind: StringKind}
		}
		if raw == nil {
			if !arg.Nullable {
				return nil, NewArgumentError(ph.Key, "required argument is missing", nil)
			}
			continue
		}
		v, err := arg.Kind.Parse(*raw)
		if err != nil {
			return nil, NewArgumentError(ph.Key, fmt.Sprintf("invalid %s value %q", arg.Kind, *raw), err)
		}
		args.Set(ph.Key, v)
	}
	return args, nil
}
