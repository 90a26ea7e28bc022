package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestDiff(t *testing.T) {
	idx := func(i int) *int { return &i }
	flag := func(b bool) *bool { return &b }

	tests := []struct {
		name     string
		old      *Snapshot
		new      *Snapshot
		wantDiff *SnapshotDiff
	}{
		{
			name: "Initial Load (Old is Nil)",
			old:  nil,
			new:  &Snapshot{ActiveIndex: 0, Total: 3, Transitioning: true},
			wantDiff: &SnapshotDiff{
				SessionID:     "sess-1",
				ActiveIndex:   idx(0),
				Total:         idx(3),
				Transitioning: flag(true),
			},
		},
		{
			name:     "No Changes",
			old:      &Snapshot{ActiveIndex: 1, Total: 3, Activated: []int{0, 1}},
			new:      &Snapshot{ActiveIndex: 1, Total: 3, Activated: []int{0, 1}},
			wantDiff: nil,
		},
		{
			name: "Slide Change",
			old:  &Snapshot{ActiveIndex: 0, Total: 3, Activated: []int{0}},
			new:  &Snapshot{ActiveIndex: 2, Total: 3, Transitioning: true, Activated: []int{0}},
			wantDiff: &SnapshotDiff{
				SessionID:     "sess-1",
				ActiveIndex:   idx(2),
				Transitioning: flag(true),
			},
		},
		{
			name: "Activation Appended",
			old:  &Snapshot{ActiveIndex: 2, Total: 3, Activated: []int{0}},
			new:  &Snapshot{ActiveIndex: 2, Total: 3, Activated: []int{0, 2}},
			wantDiff: &SnapshotDiff{
				SessionID: "sess-1",
				Activated: []int{2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff("sess-1", tt.old, tt.new)
			if !reflect.DeepEqual(got, tt.wantDiff) {
				gotJSON, _ := json.Marshal(got)
				wantJSON, _ := json.Marshal(tt.wantDiff)
				t.Errorf("Diff() = %s, want %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestDiff_JSONOmitsUnchanged(t *testing.T) {
	diff := Diff("s", &Snapshot{ActiveIndex: 0, Total: 2}, &Snapshot{ActiveIndex: 1, Total: 2})
	if diff == nil {
		t.Fatal("expected a diff")
	}
	data, err := json.Marshal(diff)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"active_index":1`) {
		t.Errorf("expected active_index in %s", s)
	}
	if strings.Contains(s, "total") || strings.Contains(s, "activated") {
		t.Errorf("unchanged fields leaked into %s", s)
	}
}

func TestParseIntentKind(t *testing.T) {
	tests := []struct {
		in      string
		want    IntentKind
		wantErr bool
	}{
		{"next", IntentNext, false},
		{" PREV ", IntentPrev, false},
		{"goto", IntentGoTo, false},
		{"go-to", IntentGoTo, false},
		{"toggle_fullscreen", IntentToggleFullscreen, false},
		{"exit_fullscreen", IntentExitFullscreen, false},
		{"jump", "", true},
	}
	for _, tt := range tests {
		got, err := ParseIntentKind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIntentKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseIntentKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDeckBounds(t *testing.T) {
	var empty Deck
	if empty.Contains(0) || empty.Last() != -1 {
		t.Error("empty deck should contain nothing")
	}
	d := make(Deck, 3)
	if !d.Contains(0) || !d.Contains(2) || d.Contains(3) || d.Contains(-1) {
		t.Error("Contains bounds mismatch")
	}
	if d.Last() != 2 {
		t.Errorf("Last() = %d, want 2", d.Last())
	}
}
