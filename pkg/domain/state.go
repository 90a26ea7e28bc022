package domain

// NavigationState is the mutable part of the controller.
// ActiveIndex is only written by a successful transition; Transitioning is the
// transition lock, held from the start of a transition until the settle delay elapses.
type NavigationState struct {
	ActiveIndex   int  `json:"active_index"`
	Transitioning bool `json:"transitioning"`
}

// Snapshot is a read-only copy of the navigation state plus deck facts.
type Snapshot struct {
	ActiveIndex   int   `json:"active_index"`
	Total         int   `json:"total"`
	Transitioning bool  `json:"transitioning"`
	Activated     []int `json:"activated"`
}

// IsFirst reports whether the active slide is the first one.
func (s Snapshot) IsFirst() bool {
	return s.ActiveIndex == 0
}

// IsLast reports whether the active slide is the last one.
func (s Snapshot) IsLast() bool {
	return s.Total > 0 && s.ActiveIndex == s.Total-1
}
