package domain

// SnapshotDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for partial updates on a client.
type SnapshotDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	ActiveIndex   *int  `json:"active_index,omitempty"`
	Total         *int  `json:"total,omitempty"`
	Transitioning *bool `json:"transitioning,omitempty"`

	// Activated contains only indices that fired since the old snapshot.
	Activated []int `json:"activated,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, it returns a diff representing the entire newSnap (initial load).
// It returns nil when nothing changed.
func Diff(sessionID string, oldSnap, newSnap *Snapshot) *SnapshotDiff {
	if newSnap == nil {
		return nil
	}

	diff := &SnapshotDiff{SessionID: sessionID}

	if oldSnap == nil || oldSnap.ActiveIndex != newSnap.ActiveIndex {
		diff.ActiveIndex = &newSnap.ActiveIndex
	}
	if oldSnap == nil || oldSnap.Total != newSnap.Total {
		diff.Total = &newSnap.Total
	}
	if oldSnap == nil || oldSnap.Transitioning != newSnap.Transitioning {
		diff.Transitioning = &newSnap.Transitioning
	}
	diff.Activated = diffActivated(oldSnap, newSnap)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// diffActivated assumes the activation set only grows.
func diffActivated(old, new *Snapshot) []int {
	if old == nil {
		if len(new.Activated) == 0 {
			return nil
		}
		return append([]int(nil), new.Activated...)
	}

	seen := make(map[int]struct{}, len(old.Activated))
	for _, i := range old.Activated {
		seen[i] = struct{}{}
	}
	var added []int
	for _, i := range new.Activated {
		if _, ok := seen[i]; !ok {
			added = append(added, i)
		}
	}
	return added
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *SnapshotDiff) IsEmpty() bool {
	return d.ActiveIndex == nil &&
		d.Total == nil &&
		d.Transitioning == nil &&
		len(d.Activated) == 0
}
