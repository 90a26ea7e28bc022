package navigation

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/slidedeck/internal/logging"
	"github.com/aretw0/slidedeck/pkg/activation"
	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/aretw0/slidedeck/pkg/fragment"
	"github.com/aretw0/slidedeck/pkg/input"
	"github.com/aretw0/slidedeck/pkg/ports"
	"github.com/aretw0/slidedeck/pkg/scheduler"
)

// Controller is the navigation state machine of one deck.
// It is not safe for concurrent use; see the package documentation.
type Controller struct {
	deck     domain.Deck
	sched    scheduler.Scheduler
	state    domain.NavigationState
	tracker  *activation.Tracker
	registry *activation.Registry
	resolver activation.Resolver

	settleDelay     time.Duration
	activationDelay time.Duration

	location   ports.Location
	dots       ports.ProgressDots
	counter    ports.Counter
	buttons    ports.NavButtons
	fullscreen ports.Fullscreen
	fallbacks  []activation.Resolver

	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	ctx         context.Context
	initialized bool
}

var _ input.Navigator = (*Controller)(nil)

// New creates a controller for deck. Callbacks are deferred through sched.
// The controller does nothing visible until Init is called.
func New(deck domain.Deck, sched scheduler.Scheduler, opts ...Option) *Controller {
	c := &Controller{
		deck:            deck,
		sched:           sched,
		tracker:         activation.NewTracker(),
		registry:        activation.NewRegistry(),
		settleDelay:     DefaultSettleDelay,
		activationDelay: DefaultActivationDelay,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}

	resolvers := append([]activation.Resolver{c.registry}, c.fallbacks...)
	c.resolver = activation.Chain(resolvers...)

	return c
}

// Init establishes the initial slide from the location fragment, registers the
// dot and button adapters and performs the first transition.
// It runs only once; an empty deck leaves the controller inert.
func (c *Controller) Init() {
	if c.initialized {
		return
	}
	c.initialized = true

	if c.deck.Len() == 0 {
		c.logger.Warn("no slides found")
		return
	}

	start := 0
	if c.location != nil {
		frag, err := c.location.Fragment()
		if err != nil {
			c.logger.Warn("failed to read location", "err", err)
		} else if i, ok := fragment.Parse(frag); ok && c.deck.Contains(i) {
			start = i
		}
	}
	c.state.ActiveIndex = start

	if c.buttons != nil {
		b := input.NewButtons(c)
		c.buttons.Bind(b.Prev, b.Next)
	}
	if c.dots != nil {
		d := input.NewDots(c)
		c.dots.Render(c.deck.Len(), d.Select)
	}

	c.GoTo(start)

	c.logger.Info("initialized", "slides", c.deck.Len(), "active", start)
}

// GoTo transitions to index. Out of range indices, an inert controller and
// requests made while a transition is in flight are silently ignored.
func (c *Controller) GoTo(index int) {
	if reason, ok := c.reject(index); ok {
		c.logger.Debug("navigation ignored", "requested", index, "reason", reason)
		if c.hooks.OnReject != nil {
			c.hooks.OnReject(c.ctx, &domain.RejectEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNavigationRejected},
				Requested: index,
				Reason:    reason,
			})
		}
		return
	}

	c.state.Transitioning = true

	previous := c.state.ActiveIndex
	for i, s := range c.deck {
		if i != index {
			s.MarkInactive()
		}
	}
	target := c.deck[index]
	target.MarkActive()
	target.ResetScroll()

	c.state.ActiveIndex = index

	if previous != index && c.hooks.OnSlideLeave != nil {
		c.hooks.OnSlideLeave(c.ctx, c.slideEvent(domain.EventSlideLeave, previous))
	}
	if c.hooks.OnSlideEnter != nil {
		c.hooks.OnSlideEnter(c.ctx, c.slideEvent(domain.EventSlideEnter, index))
	}

	if c.location != nil {
		if err := c.location.Replace(fragment.Format(index)); err != nil {
			c.logger.Warn("failed to update location", "err", err)
		}
	}

	if c.tracker.Claim(index) {
		h := c.sched.After(c.activationDelay, func() { c.activate(index) })
		c.logger.Debug("activation scheduled", "index", index, "handle", h.ID)
	}

	c.refreshWidgets()

	h := c.sched.After(c.settleDelay, c.settle)
	c.logger.Debug("transition started", "from", previous, "to", index, "handle", h.ID)
}

// Next goes to the following slide unless the active slide is the last one.
func (c *Controller) Next() {
	if c.state.ActiveIndex < c.deck.Len()-1 {
		c.GoTo(c.state.ActiveIndex + 1)
	}
}

// Prev goes to the preceding slide unless the active slide is the first one.
func (c *Controller) Prev() {
	if c.state.ActiveIndex > 0 {
		c.GoTo(c.state.ActiveIndex - 1)
	}
}

// Dispatch applies intent.
func (c *Controller) Dispatch(intent domain.Intent) {
	switch intent.Kind {
	case domain.IntentNext:
		c.Next()
	case domain.IntentPrev:
		c.Prev()
	case domain.IntentGoTo:
		c.GoTo(intent.Index)
	case domain.IntentToggleFullscreen:
		c.ToggleFullscreen()
	case domain.IntentExitFullscreen:
		c.ExitFullscreen()
	default:
		c.logger.Debug("unknown intent", "intent", intent.String())
	}
}

// ToggleFullscreen enters fullscreen, or leaves it when already active.
// Failures are logged and never affect navigation.
func (c *Controller) ToggleFullscreen() {
	if c.fullscreen == nil {
		c.logger.Debug("fullscreen not available")
		return
	}
	if c.fullscreen.Active() {
		c.exitFullscreen()
		return
	}
	if err := c.fullscreen.Request(); err != nil {
		c.logger.Warn("fullscreen not available", "err", err)
	}
}

// ExitFullscreen leaves fullscreen if it is active.
func (c *Controller) ExitFullscreen() {
	if c.fullscreen == nil || !c.fullscreen.Active() {
		return
	}
	c.exitFullscreen()
}

func (c *Controller) exitFullscreen() {
	if err := c.fullscreen.Exit(); err != nil {
		c.logger.Warn("failed to exit fullscreen", "err", err)
	}
}

// RegisterActivation sets the activation hook for index, replacing any previous one.
func (c *Controller) RegisterActivation(index int, hook activation.Hook) {
	c.registry.Register(index, hook)
}

// Current returns the active slide index.
func (c *Controller) Current() int {
	return c.state.ActiveIndex
}

// Total returns the number of slides.
func (c *Controller) Total() int {
	return c.deck.Len()
}

// State returns a copy of the navigation state.
func (c *Controller) State() domain.NavigationState {
	return c.state
}

// Activated reports whether the activation for index already fired.
func (c *Controller) Activated(index int) bool {
	return c.tracker.Has(index)
}

// Snapshot returns the navigation state together with deck facts.
func (c *Controller) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		ActiveIndex:   c.state.ActiveIndex,
		Total:         c.deck.Len(),
		Transitioning: c.state.Transitioning,
		Activated:     c.tracker.Fired(),
	}
}

func (c *Controller) reject(index int) (domain.RejectReason, bool) {
	switch {
	case !c.initialized || c.deck.Len() == 0:
		return domain.RejectInert, true
	case !c.deck.Contains(index):
		return domain.RejectOutOfRange, true
	case c.state.Transitioning:
		return domain.RejectTransitioning, true
	}
	return "", false
}

func (c *Controller) activate(index int) {
	event := &domain.ActivationEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSlideActivate},
		Index:     index,
	}

	if hook, ok := c.resolver.Resolve(index); ok {
		event.Hooked = true
		if err := hook(activation.WithIndex(c.ctx, index)); err != nil {
			event.Error = err.Error()
			c.logger.Warn("activation hook failed", "index", index, "err", err)
		}
	} else {
		c.logger.Debug("no activation hook", "index", index)
	}
	c.tracker.Complete(index)

	if c.hooks.OnActivate != nil {
		c.hooks.OnActivate(c.ctx, event)
	}
}

func (c *Controller) settle() {
	c.state.Transitioning = false
	if c.hooks.OnSettle != nil {
		c.hooks.OnSettle(c.ctx, c.slideEvent(domain.EventTransitionSettled, c.state.ActiveIndex))
	}
}

func (c *Controller) refreshWidgets() {
	index := c.state.ActiveIndex
	if c.dots != nil {
		c.dots.Highlight(index)
	}
	if c.counter != nil {
		c.counter.Update(index+1, c.deck.Len())
	}
	if c.buttons != nil {
		c.buttons.SetPrevEnabled(index > 0)
		c.buttons.SetNextEnabled(index < c.deck.Last())
	}
}

func (c *Controller) slideEvent(t domain.EventType, index int) *domain.SlideEvent {
	return &domain.SlideEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: t},
		Index:     index,
		Total:     c.deck.Len(),
	}
}
