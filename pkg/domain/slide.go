package domain

// SlideHandle is the only surface the controller needs from a slide.
// Implementations keep exactly one visual state at a time.
type SlideHandle interface {
	MarkActive()
	MarkInactive()
	ResetScroll()
}

// Deck is the ordered collection of slides, fixed at construction.
type Deck []SlideHandle

// Len returns the number of slides in the deck.
func (d Deck) Len() int {
	return len(d)
}

// Last returns the index of the last slide, or -1 for an empty deck.
func (d Deck) Last() int {
	return len(d) - 1
}

// Contains reports whether index addresses a slide of the deck.
func (d Deck) Contains(index int) bool {
	return index >= 0 && index < len(d)
}
