package domain

import "errors"

// ErrNoSlides is reported when a deck source contains no slides.
var ErrNoSlides = errors.New("no slides found")

// ErrFullscreenUnavailable is returned by hosts that cannot enter fullscreen.
var ErrFullscreenUnavailable = errors.New("fullscreen not available")

// ErrLocationNotFound is returned when no fragment was stored for a session.
var ErrLocationNotFound = errors.New("location not found")

// ErrSessionNotFound is returned when a session ID is not open.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidIntent is returned when an intent name cannot be parsed.
var ErrInvalidIntent = errors.New("invalid intent")
