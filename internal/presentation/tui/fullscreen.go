package tui

import (
	"io"

	"github.com/muesli/termenv"
)

// AltScreen implements fullscreen by switching the terminal to its alternate
// screen buffer.
type AltScreen struct {
	out    *termenv.Output
	active bool
}

// NewAltScreen creates an AltScreen writing control sequences to w.
func NewAltScreen(w io.Writer) *AltScreen {
	return &AltScreen{out: termenv.NewOutput(w)}
}

func (a *AltScreen) Active() bool {
	return a.active
}

func (a *AltScreen) Request() error {
	if a.active {
		return nil
	}
	a.out.AltScreen()
	a.out.HideCursor()
	a.active = true
	return nil
}

func (a *AltScreen) Exit() error {
	if !a.active {
		return nil
	}
	a.out.ShowCursor()
	a.out.ExitAltScreen()
	a.active = false
	return nil
}
