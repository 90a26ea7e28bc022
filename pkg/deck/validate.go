package deck

import (
	"fmt"
	"sort"

	"github.com/aretw0/slidedeck/pkg/activation"
)

// Issue is a problem found by Validate.
type Issue struct {
	Slide   int    // -1 when not tied to a slide
	File    string
	Message string
}

func (i Issue) String() string {
	if i.Slide < 0 {
		return i.Message
	}
	return fmt.Sprintf("slide %d (%s): %s", i.Slide, i.File, i.Message)
}

// Validate reports hooks referenced by slides but not configured, hooks
// without a command and conventional hook names pointing past the last slide.
func (d *Deck) Validate() []Issue {
	var issues []Issue

	for i, s := range d.Slides {
		if s.Meta.Activate == "" {
			continue
		}
		if _, ok := d.Hooks[s.Meta.Activate]; !ok {
			issues = append(issues, Issue{Slide: i, File: s.File, Message: fmt.Sprintf("unknown activation hook %q", s.Meta.Activate)})
		}
	}

	for _, name := range sortedKeys(d.Hooks) {
		h := d.Hooks[name]
		if h.Command == "" {
			issues = append(issues, Issue{Slide: -1, Message: fmt.Sprintf("hook %q has no command", name)})
		}
		var n int
		if _, err := fmt.Sscanf(name, "slide-%d", &n); err == nil && name == activation.ConventionalName(n) && n >= len(d.Slides) {
			issues = append(issues, Issue{Slide: -1, Message: fmt.Sprintf("hook %q targets a slide past the end of the deck (%d slides)", name, len(d.Slides))})
		}
	}

	return issues
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
