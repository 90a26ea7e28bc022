package domain

import (
	"fmt"
	"strings"
)

// IntentKind enumerates the navigation requests understood by the controller.
type IntentKind string

const (
	IntentNext             IntentKind = "next"
	IntentPrev             IntentKind = "prev"
	IntentGoTo             IntentKind = "goto"
	IntentToggleFullscreen IntentKind = "toggle_fullscreen"
	IntentExitFullscreen   IntentKind = "exit_fullscreen"
)

// Intent is a navigation request. Index is only meaningful for IntentGoTo.
type Intent struct {
	Kind  IntentKind `json:"intent"`
	Index int        `json:"index,omitempty"`
}

// Next requests the following slide.
func Next() Intent { return Intent{Kind: IntentNext} }

// Prev requests the preceding slide.
func Prev() Intent { return Intent{Kind: IntentPrev} }

// GoTo requests a specific slide.
func GoTo(index int) Intent { return Intent{Kind: IntentGoTo, Index: index} }

// ToggleFullscreen requests entering or leaving fullscreen.
func ToggleFullscreen() Intent { return Intent{Kind: IntentToggleFullscreen} }

// ExitFullscreen requests leaving fullscreen if it is active.
func ExitFullscreen() Intent { return Intent{Kind: IntentExitFullscreen} }

func (i Intent) String() string {
	if i.Kind == IntentGoTo {
		return fmt.Sprintf("%s(%d)", i.Kind, i.Index)
	}
	return string(i.Kind)
}

// ParseIntentKind normalizes an intent name coming from an external surface.
func ParseIntentKind(s string) (IntentKind, error) {
	switch k := IntentKind(strings.ToLower(strings.TrimSpace(s))); k {
	case IntentNext, IntentPrev, IntentGoTo, IntentToggleFullscreen, IntentExitFullscreen:
		return k, nil
	case "go_to", "go-to":
		return IntentGoTo, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidIntent, s)
}
