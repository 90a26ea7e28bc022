package view

// Dots implements ports.ProgressDots.
type Dots struct {
	count    int
	active   int
	onSelect func(int)
}

// Render creates count dots; onSelect is called with the index of a clicked dot.
func (d *Dots) Render(count int, onSelect func(int)) {
	d.count = count
	d.onSelect = onSelect
	d.active = -1
}

// Highlight marks the dot of the active slide.
func (d *Dots) Highlight(index int) {
	d.active = index
}

// Counter implements ports.Counter.
type Counter struct {
	current, total int
}

// Update sets the "current / total" text, current being 1-based.
func (c *Counter) Update(current, total int) {
	c.current, c.total = current, total
}

// Buttons implements ports.NavButtons.
type Buttons struct {
	onPrev, onNext           func()
	prevEnabled, nextEnabled bool
}

// Bind attaches the press handlers of the previous and next buttons.
func (b *Buttons) Bind(onPrev, onNext func()) {
	b.onPrev, b.onNext = onPrev, onNext
}

// SetPrevEnabled enables or disables the previous button.
func (b *Buttons) SetPrevEnabled(enabled bool) { b.prevEnabled = enabled }

// SetNextEnabled enables or disables the next button.
func (b *Buttons) SetNextEnabled(enabled bool) { b.nextEnabled = enabled }

// Fullscreen is a virtual fullscreen flag, for hosts without a real one.
type Fullscreen struct {
	On bool
}

// Active reports whether fullscreen is on.
func (f *Fullscreen) Active() bool { return f.On }

// Request turns fullscreen on.
func (f *Fullscreen) Request() error {
	f.On = true
	return nil
}

// Exit turns fullscreen off.
func (f *Fullscreen) Exit() error {
	f.On = false
	return nil
}
