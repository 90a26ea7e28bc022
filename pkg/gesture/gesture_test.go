package gesture

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		sample Sample
		want   Direction
	}{
		{"leftward swipe", Sample{StartX: 200, StartY: 0, EndX: 100, EndY: 0}, Next},
		{"rightward swipe", Sample{StartX: 100, StartY: 0, EndX: 200, EndY: 0}, Prev},
		{"below threshold", Sample{StartX: 100, StartY: 0, EndX: 120, EndY: 0}, None},
		{"vertical dominance", Sample{StartX: 100, StartY: 0, EndX: 150, EndY: 60}, None},
		{"exactly threshold", Sample{StartX: 100, StartY: 0, EndX: 50, EndY: 0}, None},
		{"diagonal equal axes", Sample{StartX: 0, StartY: 0, EndX: 80, EndY: 80}, None},
		{"no movement", Sample{}, None},
		{"NaN start", Sample{StartX: math.NaN(), EndX: 100}, None},
		{"NaN vertical", Sample{StartX: 300, EndX: 100, StartY: math.NaN()}, None},
		{"infinite vertical", Sample{StartX: 300, EndX: 100, EndY: math.Inf(1)}, None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.sample); got != tt.want {
				t.Errorf("Classify(%+v) = %v, want %v", tt.sample, got, tt.want)
			}
		})
	}
}

func TestClassify_Pure(t *testing.T) {
	s := Sample{StartX: 300, StartY: 10, EndX: 120, EndY: 30}
	first := Classify(s)
	for i := 0; i < 10; i++ {
		if got := Classify(s); got != first {
			t.Fatalf("Classify is not deterministic: %v then %v", first, got)
		}
	}
}

func TestClassifier_CustomThreshold(t *testing.T) {
	c := Classifier{MinDistance: 10}
	s := Sample{StartX: 100, EndX: 120}
	if got := c.Classify(s); got != Prev {
		t.Errorf("Classify with threshold 10 = %v, want prev", got)
	}
	if got := Classify(s); got != None {
		t.Errorf("Classify with default threshold = %v, want none", got)
	}
}

func TestDirection_String(t *testing.T) {
	if Next.String() != "next" || Prev.String() != "prev" || None.String() != "none" {
		t.Error("unexpected direction names")
	}
}
