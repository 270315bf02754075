package compass

import "log/slog"

// NavOptions configures a single navigation.
type NavOptions struct {
	// PopUpTo pops entries off the back stack until an entry for this
	// template is on top before the new entry is pushed.
	PopUpTo string

	// PopUpToInclusive also pops the PopUpTo entry itself.
	PopUpToInclusive bool

	// SingleTop replaces the top entry instead of pushing when it belongs to
	// the same destination.
	SingleTop bool
}

// NavOption is a functional option for Navigate.
type NavOption func(*NavOptions)

// PopUpTo pops the back stack up to the entry for template.
func PopUpTo(template string, inclusive bool) NavOption {
	return func(o *NavOptions) {
		o.PopUpTo = template
		o.PopUpToInclusive = inclusive
	}
}

// LaunchSingleTop avoids stacking two entries of the same destination.
func LaunchSingleTop() NavOption {
	return func(o *NavOptions) {
		o.SingleTop = true
	}
}

func buildNavOptions(opts []NavOption) NavOptions {
	var options NavOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger used for navigation traces.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}
