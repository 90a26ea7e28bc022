package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the slidedeck ASCII art banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.NewOutput(w).Profile
	// Indigo to rose, top to bottom.
	lines := []struct {
		text  string
		color string
	}{
		{"      _ _     _           _           _    ", "#818cf8"},
		{"  ___| (_) __| | ___  __| | ___  ___| | __", "#a78bfa"},
		{" / __| | |/ _` |/ _ \\/ _` |/ _ \\/ __| |/ /", "#c084fc"},
		{" \\__ \\ | | (_| |  __/ (_| |  __/ (__|   < ", "#e879f9"},
		{" |___/_|_|\\__,_|\\___|\\__,_|\\___|\\___|_|\\_\\", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Foreground(p.Color("#fb7185")).Faint())
	}
	fmt.Fprintln(w)
}
