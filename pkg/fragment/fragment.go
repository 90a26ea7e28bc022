// Package fragment encodes slide positions as location fragments ("#slide-3").
package fragment

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix precedes the slide index in a fragment.
const Prefix = "slide-"

// Format returns the fragment addressing index.
func Format(index int) string {
	return fmt.Sprintf("#%s%d", Prefix, index)
}

// Parse extracts the slide index from a fragment. The leading '#' is optional.
// ok is false when s does not have the "#slide-<integer>" shape; range checks
// are left to the caller, which knows the deck size.
func Parse(s string) (index int, ok bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !strings.HasPrefix(s, Prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(s, Prefix))
	if err != nil {
		return 0, false
	}
	return n, true
}
