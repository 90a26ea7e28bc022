package input

import "github.com/aretw0/slidedeck/pkg/domain"

// Key names, matching the DOM KeyboardEvent.key values.
const (
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeySpace      = " "
	KeyPageUp     = "PageUp"
	KeyPageDown   = "PageDown"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyEscape     = "Escape"
)

// Key is a single key press.
type Key struct {
	Name string `json:"key"`
	Ctrl bool   `json:"ctrl,omitempty"`
	Meta bool   `json:"meta,omitempty"`
}

// Keyboard maps key presses to intents.
type Keyboard struct {
	nav Navigator
}

// NewKeyboard creates a keyboard adapter.
func NewKeyboard(nav Navigator) *Keyboard {
	return &Keyboard{nav: nav}
}

// Intent returns the intent bound to k. total is the deck length.
func Intent(k Key, total int) (domain.Intent, bool) {
	switch k.Name {
	case KeyArrowRight, KeyArrowDown, KeySpace, KeyPageDown:
		return domain.Next(), true
	case KeyArrowLeft, KeyArrowUp, KeyPageUp:
		return domain.Prev(), true
	case KeyHome:
		return domain.GoTo(0), true
	case KeyEnd:
		return domain.GoTo(total - 1), true
	case "f", "F":
		if k.Ctrl || k.Meta {
			return domain.Intent{}, false
		}
		return domain.ToggleFullscreen(), true
	case KeyEscape:
		return domain.ExitFullscreen(), true
	}
	return domain.Intent{}, false
}

// Handle dispatches the intent bound to k.
// It returns true when the key was consumed and its default action must be suppressed.
func (kb *Keyboard) Handle(k Key) bool {
	intent, ok := Intent(k, kb.nav.Total())
	if !ok {
		return false
	}
	kb.nav.Dispatch(intent)
	return true
}
