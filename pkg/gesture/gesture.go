// Package gesture turns touch samples into navigation directions.
package gesture

import "math"

// DefaultMinDistance is the minimum horizontal travel, in device-independent
// pixels, for a touch to count as a swipe.
const DefaultMinDistance = 50

// Direction is the navigation outcome of a gesture.
type Direction int

const (
	None Direction = iota
	Next
	Prev
)

func (d Direction) String() string {
	switch d {
	case Next:
		return "next"
	case Prev:
		return "prev"
	default:
		return "none"
	}
}

// Sample holds the start and end points of one touch interaction.
type Sample struct {
	StartX float64 `json:"start_x"`
	StartY float64 `json:"start_y"`
	EndX   float64 `json:"end_x"`
	EndY   float64 `json:"end_y"`
}

// Classifier classifies samples against a minimum swipe distance.
// The zero value uses DefaultMinDistance.
type Classifier struct {
	MinDistance float64
}

// Classify returns Next for a leftward horizontal swipe, Prev for a rightward
// one and None when the movement is too short, mostly vertical or not a number.
func (c Classifier) Classify(s Sample) Direction {
	minDistance := c.MinDistance
	if minDistance <= 0 {
		minDistance = DefaultMinDistance
	}

	dx := s.StartX - s.EndX
	dy := s.StartY - s.EndY

	if math.IsNaN(dx) || math.IsNaN(dy) {
		return None
	}
	if math.Abs(dx) <= math.Abs(dy) || math.Abs(dx) <= minDistance {
		return None
	}
	if dx > 0 {
		return Next
	}
	return Prev
}

// Classify classifies s with the default threshold.
func Classify(s Sample) Direction {
	return Classifier{}.Classify(s)
}
