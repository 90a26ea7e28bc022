package navigation

import (
	"errors"

	"github.com/aretw0/slidedeck/pkg/domain"
)

type fakeSlide struct {
	active    bool
	scrolled  bool
	scrollTop int
}

func (s *fakeSlide) MarkActive()   { s.active = true }
func (s *fakeSlide) MarkInactive() { s.active = false }
func (s *fakeSlide) ResetScroll() {
	s.scrollTop = 0
	s.scrolled = true
}

func newDeck(n int) (domain.Deck, []*fakeSlide) {
	deck := make(domain.Deck, n)
	slides := make([]*fakeSlide, n)
	for i := range slides {
		slides[i] = &fakeSlide{scrollTop: 100}
		deck[i] = slides[i]
	}
	return deck, slides
}

func activeSlides(slides []*fakeSlide) []int {
	var out []int
	for i, s := range slides {
		if s.active {
			out = append(out, i)
		}
	}
	return out
}

type fakeLocation struct {
	fragment string
	replaced []string
}

func (l *fakeLocation) Fragment() (string, error) { return l.fragment, nil }
func (l *fakeLocation) Replace(f string) error {
	l.fragment = f
	l.replaced = append(l.replaced, f)
	return nil
}

type fakeDots struct {
	count    int
	onSelect func(int)
	renders  int
	active   []bool
}

func (d *fakeDots) Render(count int, onSelect func(int)) {
	d.count = count
	d.onSelect = onSelect
	d.renders++
	d.active = make([]bool, count)
}

func (d *fakeDots) Highlight(index int) {
	for i := range d.active {
		d.active[i] = i == index
	}
}

func (d *fakeDots) activeCount() int {
	n := 0
	for _, a := range d.active {
		if a {
			n++
		}
	}
	return n
}

type fakeCounter struct {
	current, total int
}

func (c *fakeCounter) Update(current, total int) {
	c.current, c.total = current, total
}

type fakeButtons struct {
	onPrev, onNext func()
	binds          int
	prevEnabled    bool
	nextEnabled    bool
}

func (b *fakeButtons) Bind(onPrev, onNext func()) {
	b.onPrev, b.onNext = onPrev, onNext
	b.binds++
}
func (b *fakeButtons) SetPrevEnabled(e bool) { b.prevEnabled = e }
func (b *fakeButtons) SetNextEnabled(e bool) { b.nextEnabled = e }

type fakeFullscreen struct {
	active   bool
	requests int
	fail     bool
}

func (f *fakeFullscreen) Active() bool { return f.active }
func (f *fakeFullscreen) Request() error {
	f.requests++
	if f.fail {
		return errors.New("permission denied")
	}
	f.active = true
	return nil
}
func (f *fakeFullscreen) Exit() error {
	f.active = false
	return nil
}
