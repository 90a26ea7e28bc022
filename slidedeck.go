package slidedeck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/slidedeck/internal/logging"
	"github.com/aretw0/slidedeck/pkg/activation"
	"github.com/aretw0/slidedeck/pkg/adapters/process"
	"github.com/aretw0/slidedeck/pkg/deck"
	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/aretw0/slidedeck/pkg/gesture"
	"github.com/aretw0/slidedeck/pkg/input"
	"github.com/aretw0/slidedeck/pkg/navigation"
	"github.com/aretw0/slidedeck/pkg/ports"
	"github.com/aretw0/slidedeck/pkg/scheduler"
	"github.com/aretw0/slidedeck/pkg/view"
)

// ErrNotStarted is returned by calls made before Start or after Close.
var ErrNotStarted = errors.New("presentation not started")

// Presentation is the high-level entry point of the library.
// It owns a deck, its view model and a navigation controller running on a
// dedicated event loop. All methods are safe for concurrent use.
type Presentation struct {
	Name string

	deck     *deck.Deck
	contents []view.Content
	model    *view.Model
	loop     *scheduler.Loop
	ctrl     *navigation.Controller
	keyboard *input.Keyboard
	touch    *input.Touch
	hooks    *process.Runner

	settleDelay     *time.Duration
	activationDelay *time.Duration
	swipeThreshold  float64
	location        ports.Location
	fullscreen      ports.Fullscreen
	lifecycle       []domain.LifecycleHooks
	explicit        map[int]activation.Hook
	named           *activation.NamedRegistry
	logger          *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
}

// Option defines a functional option for configuring the Presentation.
type Option func(*Presentation)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Presentation) {
		p.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks. It can be repeated.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Presentation) {
		p.lifecycle = append(p.lifecycle, hooks)
	}
}

// WithLocation sets where the current slide fragment is read from and written to.
func WithLocation(loc ports.Location) Option {
	return func(p *Presentation) {
		p.location = loc
	}
}

// WithFullscreen replaces the default virtual fullscreen flag.
func WithFullscreen(fs ports.Fullscreen) Option {
	return func(p *Presentation) {
		p.fullscreen = fs
	}
}

// WithSettleDelay overrides the manifest's settle delay.
func WithSettleDelay(d time.Duration) Option {
	return func(p *Presentation) {
		p.settleDelay = &d
	}
}

// WithActivationDelay overrides the manifest's activation delay.
func WithActivationDelay(d time.Duration) Option {
	return func(p *Presentation) {
		p.activationDelay = &d
	}
}

// WithSwipeThreshold overrides the manifest's minimum swipe distance.
func WithSwipeThreshold(px float64) Option {
	return func(p *Presentation) {
		p.swipeThreshold = px
	}
}

// WithActivation registers the activation hook of slide index.
// It takes precedence over hooks named in front matter and conventional names.
//
// Hooks run on the event loop. A hook must not call back into the
// Presentation synchronously (Dispatch, Snapshot, Do...): the call waits for
// the loop the hook is blocking. Start a goroutine for such work.
func WithActivation(index int, hook activation.Hook) Option {
	return func(p *Presentation) {
		p.explicit[index] = hook
	}
}

// WithNamedHook registers a hook that front matter ("activate: name") or the
// conventional "slide-<N>" name can refer to. The same rules as for
// WithActivation apply. Named hooks win over deck hooks of the same name.
func WithNamedHook(name string, hook activation.Hook) Option {
	return func(p *Presentation) {
		p.named.Register(name, hook)
	}
}

// New loads the deck in dir and prepares a presentation for it.
func New(dir string, opts ...Option) (*Presentation, error) {
	d, err := deck.Load(dir)
	if err != nil {
		return nil, err
	}
	return NewFromDeck(d, opts...), nil
}

// NewFromDeck prepares a presentation for an already loaded deck.
// Manifest settings apply unless overridden by options; the deck's process
// hooks are registered by name.
func NewFromDeck(d *deck.Deck, opts ...Option) *Presentation {
	p := newPresentation(d.Contents(), opts...)
	p.deck = d
	p.Name = d.Title()

	if p.settleDelay == nil && d.Manifest.SettleDelay > 0 {
		p.settleDelay = &d.Manifest.SettleDelay
	}
	if p.activationDelay == nil && d.Manifest.ActivationDelay > 0 {
		p.activationDelay = &d.Manifest.ActivationDelay
	}
	if p.swipeThreshold <= 0 {
		p.swipeThreshold = d.Manifest.SwipeThreshold
	}

	p.hooks = process.NewRunner(
		process.WithRegistry(d.Hooks),
		process.WithBaseDir(d.Dir),
		process.WithAsync(true),
		process.WithTimeout(d.Manifest.HookTimeout),
		process.WithLogger(p.logger),
	)
	p.hooks.Bind(p.named)

	for index, name := range d.Activations() {
		if _, ok := p.explicit[index]; ok {
			continue
		}
		if hook, ok := p.named.Lookup(name); ok {
			p.explicit[index] = hook
		} else {
			p.logger.Warn("activation hook not found", "slide", index, "hook", name)
		}
	}

	p.build()
	return p
}

// NewFromContents prepares a presentation for in-memory slides.
func NewFromContents(name string, contents []view.Content, opts ...Option) *Presentation {
	p := newPresentation(contents, opts...)
	p.Name = name
	p.build()
	return p
}

func newPresentation(contents []view.Content, opts ...Option) *Presentation {
	p := &Presentation{
		contents: contents,
		explicit: make(map[int]activation.Hook),
		named:    activation.NewNamedRegistry(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	if p.fullscreen == nil {
		p.fullscreen = &view.Fullscreen{}
	}
	return p
}

func (p *Presentation) build() {
	if p.Name != "" {
		p.logger = p.logger.With("deck", p.Name)
	}

	p.model = view.NewModel(p.contents, view.WithDots(), view.WithCounter(), view.WithButtons())
	p.loop = scheduler.NewLoop()

	opts := []navigation.Option{
		navigation.WithLogger(p.logger),
		navigation.WithProgressDots(p.model.Dots()),
		navigation.WithCounter(p.model.Counter()),
		navigation.WithButtons(p.model.Buttons()),
		navigation.WithFullscreen(p.fullscreen),
		navigation.WithFallbackResolver(activation.ConventionResolver(p.named)),
	}
	if p.location != nil {
		opts = append(opts, navigation.WithLocation(p.location))
	}
	if p.settleDelay != nil {
		opts = append(opts, navigation.WithSettleDelay(*p.settleDelay))
	}
	if p.activationDelay != nil {
		opts = append(opts, navigation.WithActivationDelay(*p.activationDelay))
	}
	if len(p.lifecycle) > 0 {
		opts = append(opts, navigation.WithLifecycleHooks(domain.MergeHooks(p.lifecycle...)))
	}

	p.ctrl = navigation.New(p.model.Deck(), p.loop, opts...)
	for index, hook := range p.explicit {
		p.ctrl.RegisterActivation(index, hook)
	}

	p.keyboard = input.NewKeyboard(p.ctrl)
	p.touch = input.NewTouch(p.ctrl, p.swipeThreshold)
}

// Start runs the event loop and initializes the controller.
// The presentation stops when ctx is done or Close is called.
func (p *Presentation) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return fmt.Errorf("presentation %s already started", p.Name)
	}
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	p.cancel = cancel
	p.stopped = make(chan struct{})
	p.mu.Unlock()

	go func() {
		defer close(p.stopped)
		_ = p.loop.Run(loopCtx)
	}()
	go func() {
		select {
		case <-ctx.Done():
			_ = p.Close()
		case <-loopCtx.Done():
		}
	}()

	return p.loop.Do(ctx, p.ctrl.Init)
}

// Close stops the event loop. Pending transitions and activations are dropped
// and hook processes still running are killed.
func (p *Presentation) Close() error {
	p.mu.Lock()
	cancel, stopped := p.cancel, p.stopped
	p.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-stopped
	if p.hooks != nil {
		p.hooks.Close()
	}
	return nil
}

// Do runs fn on the event loop with exclusive access to the controller.
func (p *Presentation) Do(ctx context.Context, fn func(c *navigation.Controller)) error {
	p.mu.Lock()
	started := p.cancel != nil
	p.mu.Unlock()
	if !started {
		return ErrNotStarted
	}
	return p.loop.Do(ctx, func() { fn(p.ctrl) })
}

// Dispatch applies intent and returns the resulting snapshot.
func (p *Presentation) Dispatch(ctx context.Context, intent domain.Intent) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := p.Do(ctx, func(c *navigation.Controller) {
		c.Dispatch(intent)
		snap = c.Snapshot()
	})
	return snap, err
}

// Key feeds one key press. It reports whether the key was handled.
func (p *Presentation) Key(ctx context.Context, k input.Key) (bool, error) {
	var handled bool
	err := p.Do(ctx, func(*navigation.Controller) {
		handled = p.keyboard.Handle(k)
	})
	return handled, err
}

// Swipe feeds one complete touch gesture.
func (p *Presentation) Swipe(ctx context.Context, s gesture.Sample) (gesture.Direction, error) {
	var dir gesture.Direction
	err := p.Do(ctx, func(*navigation.Controller) {
		dir = p.touch.Swipe(s)
	})
	return dir, err
}

// TouchStart records where a touch began. Hosts that report touch-start and
// touch-end separately use TouchStart and TouchEnd; hosts with the whole
// gesture at hand use Swipe.
func (p *Presentation) TouchStart(ctx context.Context, x, y float64) error {
	return p.Do(ctx, func(*navigation.Controller) {
		p.touch.Start(x, y)
	})
}

// TouchEnd completes the touch begun by TouchStart and navigates if it was a
// swipe. A TouchEnd without a TouchStart returns gesture.None.
func (p *Presentation) TouchEnd(ctx context.Context, x, y float64) (gesture.Direction, error) {
	var dir gesture.Direction
	err := p.Do(ctx, func(*navigation.Controller) {
		dir = p.touch.End(x, y)
	})
	return dir, err
}

// SelectDot simulates a click on progress dot index.
func (p *Presentation) SelectDot(ctx context.Context, index int) (bool, error) {
	var ok bool
	err := p.Do(ctx, func(*navigation.Controller) {
		ok = p.model.SelectDot(index)
	})
	return ok, err
}

// Snapshot returns the navigation state.
func (p *Presentation) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := p.Do(ctx, func(c *navigation.Controller) {
		snap = c.Snapshot()
	})
	return snap, err
}

// Frame returns what the view currently shows.
func (p *Presentation) Frame(ctx context.Context) (view.Frame, error) {
	var f view.Frame
	err := p.Do(ctx, func(*navigation.Controller) {
		f = p.model.Frame()
	})
	return f, err
}

// Fullscreen reports whether fullscreen is active.
func (p *Presentation) Fullscreen(ctx context.Context) (bool, error) {
	var on bool
	err := p.Do(ctx, func(*navigation.Controller) {
		on = p.fullscreen.Active()
	})
	return on, err
}

// Slide returns the content of slide index. Slides never change after construction.
func (p *Presentation) Slide(index int) (view.Content, error) {
	if index < 0 || index >= len(p.contents) {
		return view.Content{}, fmt.Errorf("slide %d out of range (%d slides)", index, len(p.contents))
	}
	return p.contents[index], nil
}

// Total returns the number of slides.
func (p *Presentation) Total() int {
	return len(p.contents)
}

// Deck returns the loaded deck, or nil for in-memory presentations.
func (p *Presentation) Deck() *deck.Deck {
	return p.deck
}

// Dir returns the deck directory, or "" for in-memory presentations.
func (p *Presentation) Dir() string {
	if p.deck == nil {
		return ""
	}
	return filepath.Clean(p.deck.Dir)
}
