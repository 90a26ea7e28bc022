package input

import "github.com/aretw0/slidedeck/pkg/domain"

// Navigator receives intents. Total is needed to resolve "last slide".
type Navigator interface {
	Dispatch(intent domain.Intent)
	Total() int
}

// Dots forwards progress-dot selections.
type Dots struct {
	nav Navigator
}

// NewDots creates a dots adapter.
func NewDots(nav Navigator) *Dots {
	return &Dots{nav: nav}
}

// Select is called when dot index is clicked.
func (d *Dots) Select(index int) {
	d.nav.Dispatch(domain.GoTo(index))
}

// Buttons forwards previous/next presses.
type Buttons struct {
	nav Navigator
}

// NewButtons creates a buttons adapter.
func NewButtons(nav Navigator) *Buttons {
	return &Buttons{nav: nav}
}

// Prev is called when the previous control is pressed.
func (b *Buttons) Prev() {
	b.nav.Dispatch(domain.Prev())
}

// Next is called when the next control is pressed.
func (b *Buttons) Next() {
	b.nav.Dispatch(domain.Next())
}
