package navigation

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/slidedeck/pkg/activation"
	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/aretw0/slidedeck/pkg/ports"
)

const (
	// DefaultSettleDelay approximates the end of the slide transition animation.
	DefaultSettleDelay = 500 * time.Millisecond
	// DefaultActivationDelay leaves the slide time to become visible before its hook runs.
	DefaultActivationDelay = 100 * time.Millisecond
)

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithSettleDelay sets how long the transition lock is held.
// Negative values are treated as zero.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.settleDelay = max(d, 0)
	}
}

// WithActivationDelay sets how long after a transition the activation hook runs.
// Negative values are treated as zero.
func WithActivationDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.activationDelay = max(d, 0)
	}
}

// WithLogger sets a custom structured logger for the controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithContext sets the context passed to activation hooks and lifecycle hooks.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		c.ctx = ctx
	}
}

// WithLocation sets the fragment the controller reads at Init and replaces on each transition.
func WithLocation(loc ports.Location) Option {
	return func(c *Controller) {
		c.location = loc
	}
}

// WithProgressDots attaches the progress indicator widget.
func WithProgressDots(dots ports.ProgressDots) Option {
	return func(c *Controller) {
		c.dots = dots
	}
}

// WithCounter attaches the "current / total" widget.
func WithCounter(counter ports.Counter) Option {
	return func(c *Controller) {
		c.counter = counter
	}
}

// WithButtons attaches the previous/next controls.
func WithButtons(buttons ports.NavButtons) Option {
	return func(c *Controller) {
		c.buttons = buttons
	}
}

// WithFullscreen attaches the fullscreen capability.
func WithFullscreen(fs ports.Fullscreen) Option {
	return func(c *Controller) {
		c.fullscreen = fs
	}
}

// WithFallbackResolver appends a resolver consulted after the explicit
// registry, e.g. activation.ConventionResolver.
func WithFallbackResolver(r activation.Resolver) Option {
	return func(c *Controller) {
		c.fallbacks = append(c.fallbacks, r)
	}
}
