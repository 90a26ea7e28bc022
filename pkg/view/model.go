package view

import (
	"fmt"

	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/aretw0/slidedeck/pkg/ports"
)

// Slide is the view state of one slide.
type Slide struct {
	Title     string
	Body      string
	Active    bool
	ScrollTop int
}

// MarkActive shows the slide.
func (s *Slide) MarkActive() { s.Active = true }

// MarkInactive hides the slide.
func (s *Slide) MarkInactive() { s.Active = false }

// ResetScroll moves the viewport back to the top.
func (s *Slide) ResetScroll() { s.ScrollTop = 0 }

// Scroll moves the slide viewport by delta lines, never above the top.
func (s *Slide) Scroll(delta int) {
	s.ScrollTop = max(s.ScrollTop+delta, 0)
}

// Content is the input needed to build a slide.
type Content struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Model is the state of the whole view. It is not safe for concurrent use.
type Model struct {
	Slides []*Slide

	dots    *Dots
	counter *Counter
	buttons *Buttons
}

// Option enables an optional widget.
type Option func(*Model)

// WithDots enables the progress dots.
func WithDots() Option {
	return func(m *Model) { m.dots = &Dots{active: -1} }
}

// WithCounter enables the "current / total" counter.
func WithCounter() Option {
	return func(m *Model) { m.counter = &Counter{} }
}

// WithButtons enables the previous/next controls.
func WithButtons() Option {
	return func(m *Model) { m.buttons = &Buttons{} }
}

// NewModel builds a view with one slide per content entry.
func NewModel(contents []Content, opts ...Option) *Model {
	m := &Model{Slides: make([]*Slide, len(contents))}
	for i, c := range contents {
		m.Slides[i] = &Slide{Title: c.Title, Body: c.Body}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Deck returns the slides as the controller sees them.
func (m *Model) Deck() domain.Deck {
	deck := make(domain.Deck, len(m.Slides))
	for i, s := range m.Slides {
		deck[i] = s
	}
	return deck
}

// Dots returns the progress dots widget, or nil when disabled.
func (m *Model) Dots() ports.ProgressDots {
	if m.dots == nil {
		return nil
	}
	return m.dots
}

// Counter returns the counter widget, or nil when disabled.
func (m *Model) Counter() ports.Counter {
	if m.counter == nil {
		return nil
	}
	return m.counter
}

// Buttons returns the navigation buttons, or nil when disabled.
func (m *Model) Buttons() ports.NavButtons {
	if m.buttons == nil {
		return nil
	}
	return m.buttons
}

// SelectDot simulates a click on dot index. It reports false when dots are
// disabled or index does not name a dot.
func (m *Model) SelectDot(index int) bool {
	if m.dots == nil || m.dots.onSelect == nil || index < 0 || index >= m.dots.count {
		return false
	}
	m.dots.onSelect(index)
	return true
}

// PressPrev simulates a click on the previous control. Disabled controls do nothing.
func (m *Model) PressPrev() bool {
	if m.buttons == nil || !m.buttons.prevEnabled || m.buttons.onPrev == nil {
		return false
	}
	m.buttons.onPrev()
	return true
}

// PressNext simulates a click on the next control. Disabled controls do nothing.
func (m *Model) PressNext() bool {
	if m.buttons == nil || !m.buttons.nextEnabled || m.buttons.onNext == nil {
		return false
	}
	m.buttons.onNext()
	return true
}

// Active returns the active slide index, or -1 if none is active.
func (m *Model) Active() int {
	for i, s := range m.Slides {
		if s.Active {
			return i
		}
	}
	return -1
}

// Frame returns what a presenter should draw.
func (m *Model) Frame() Frame {
	f := Frame{Index: -1, Total: len(m.Slides)}
	if i := m.Active(); i >= 0 {
		s := m.Slides[i]
		f.Index = i
		f.Title = s.Title
		f.Body = s.Body
		f.ScrollTop = s.ScrollTop
	}
	if m.dots != nil {
		f.Dots = make([]bool, m.dots.count)
		if m.dots.active >= 0 && m.dots.active < m.dots.count {
			f.Dots[m.dots.active] = true
		}
	}
	if m.counter != nil && m.counter.total > 0 {
		f.Counter = fmt.Sprintf("%d / %d", m.counter.current, m.counter.total)
	}
	if m.buttons != nil {
		f.Buttons = &ButtonState{Prev: m.buttons.prevEnabled, Next: m.buttons.nextEnabled}
	}
	return f
}

// Frame is a drawable snapshot of the view.
type Frame struct {
	Index     int          `json:"index"`
	Total     int          `json:"total"`
	Title     string       `json:"title,omitempty"`
	Body      string       `json:"body,omitempty"`
	ScrollTop int          `json:"scroll_top"`
	Dots      []bool       `json:"dots,omitempty"`
	Counter   string       `json:"counter,omitempty"`
	Buttons   *ButtonState `json:"buttons,omitempty"`
}

// ButtonState tells which navigation controls are enabled.
type ButtonState struct {
	Prev bool `json:"prev"`
	Next bool `json:"next"`
}
