package input

import (
	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/aretw0/slidedeck/pkg/gesture"
)

// Touch turns a touch-start/touch-end pair into a swipe.
type Touch struct {
	nav        Navigator
	classifier gesture.Classifier
	sample     gesture.Sample
	started    bool
}

// NewTouch creates a touch adapter. minDistance <= 0 uses gesture.DefaultMinDistance.
func NewTouch(nav Navigator, minDistance float64) *Touch {
	return &Touch{nav: nav, classifier: gesture.Classifier{MinDistance: minDistance}}
}

// Start records where the touch began.
func (t *Touch) Start(x, y float64) {
	t.sample = gesture.Sample{StartX: x, StartY: y}
	t.started = true
}

// End completes the gesture and dispatches Next or Prev if it was a swipe.
// An End without a Start is ignored.
func (t *Touch) End(x, y float64) gesture.Direction {
	if !t.started {
		return gesture.None
	}
	s := t.sample
	s.EndX, s.EndY = x, y
	t.sample = gesture.Sample{}
	t.started = false
	return t.Swipe(s)
}

// Swipe classifies a complete sample and dispatches the resulting intent.
func (t *Touch) Swipe(s gesture.Sample) gesture.Direction {
	dir := t.classifier.Classify(s)
	switch dir {
	case gesture.Next:
		t.nav.Dispatch(domain.Next())
	case gesture.Prev:
		t.nav.Dispatch(domain.Prev())
	}
	return dir
}
