package activation

import "sort"

// Tracker is the set of slide indices whose activation already fired, plus the
// indices whose activation is scheduled but has not fired yet.
// It only grows; there is no teardown besides dropping the Tracker.
type Tracker struct {
	fired   map[int]struct{}
	pending map[int]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		fired:   make(map[int]struct{}),
		pending: make(map[int]struct{}),
	}
}

// Has reports whether the activation for index already fired.
func (t *Tracker) Has(index int) bool {
	_, ok := t.fired[index]
	return ok
}

// Pending reports whether the activation for index is scheduled but not fired.
func (t *Tracker) Pending(index int) bool {
	_, ok := t.pending[index]
	return ok
}

// Claim reserves index for a deferred activation.
// It returns false if the index already fired or is already scheduled.
func (t *Tracker) Claim(index int) bool {
	if t.Has(index) || t.Pending(index) {
		return false
	}
	t.pending[index] = struct{}{}
	return true
}

// Complete records that the activation for index fired.
func (t *Tracker) Complete(index int) {
	delete(t.pending, index)
	t.fired[index] = struct{}{}
}

// Fired returns the fired indices in ascending order.
func (t *Tracker) Fired() []int {
	out := make([]int, 0, len(t.fired))
	for i := range t.fired {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of fired indices.
func (t *Tracker) Len() int {
	return len(t.fired)
}
