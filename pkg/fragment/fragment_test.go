package fragment

import "testing"

func TestFormat(t *testing.T) {
	if got := Format(3); got != "#slide-3" {
		t.Errorf("Format(3) = %q", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"#slide-0", 0, true},
		{"#slide-12", 12, true},
		{"slide-4", 4, true},
		{" #slide-2 ", 2, true},
		{"#slide--1", -1, true},
		{"#slide-", 0, false},
		{"#slide-x", 0, false},
		{"#slide-3abc", 0, false},
		{"#page-3", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("Parse(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, i := range []int{0, 1, 7, 99} {
		got, ok := Parse(Format(i))
		if !ok || got != i {
			t.Errorf("Parse(Format(%d)) = (%d, %v)", i, got, ok)
		}
	}
}
