package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/slidedeck/pkg/view"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is used when the terminal size is unknown.
const DefaultWidth = 80

// Options configures the frame renderer.
type Options struct {
	Width int
	// Style is a glamour standard style name ("dark", "light", "notty").
	// Empty means auto-detect.
	Style string
}

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer(opts Options) (func(string) (string, error), error) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	style := glamour.WithAutoStyle()
	if opts.Style != "" {
		style = glamour.WithStandardStyle(opts.Style)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(opts.Width))
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a78bfa"))
	dotOn         = lipgloss.NewStyle().Foreground(lipgloss.Color("#e879f9")).Render("●")
	dotOff        = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Render("○")
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	disabledStyle = lipgloss.NewStyle().Faint(true)
	counterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#818cf8"))
)

// NewFrameRenderer draws the active slide through glamour and a footer with
// the progress dots, the counter and the navigation hints.
func NewFrameRenderer(opts Options) (func(view.Frame) (string, error), error) {
	md, err := NewRenderer(opts)
	if err != nil {
		return nil, err
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}

	return func(f view.Frame) (string, error) {
		if f.Index < 0 {
			return titleStyle.Render("No slides."), nil
		}
		body, err := md(f.Body)
		if err != nil {
			return "", err
		}
		body = scroll(body, f.ScrollTop)

		var b strings.Builder
		if f.Title != "" && !strings.Contains(f.Body, f.Title) {
			b.WriteString(titleStyle.Render(f.Title))
			b.WriteString("\n")
		}
		b.WriteString(body)
		b.WriteString("\n")
		b.WriteString(Footer(f, width))
		return b.String(), nil
	}, nil
}

// Footer renders the widgets of f centered in width columns.
func Footer(f view.Frame, width int) string {
	var parts []string
	if f.Buttons != nil {
		parts = append(parts, hint("← prev", f.Buttons.Prev))
	}
	if len(f.Dots) > 0 {
		dots := make([]string, len(f.Dots))
		for i, on := range f.Dots {
			if on {
				dots[i] = dotOn
			} else {
				dots[i] = dotOff
			}
		}
		parts = append(parts, strings.Join(dots, " "))
	}
	if f.Counter != "" {
		parts = append(parts, counterStyle.Render(f.Counter))
	}
	if f.Buttons != nil {
		parts = append(parts, hint("next →", f.Buttons.Next))
	}
	line := strings.Join(parts, "   ")
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func hint(label string, enabled bool) string {
	if enabled {
		return hintStyle.Render(label)
	}
	return disabledStyle.Render(label)
}

func scroll(text string, top int) string {
	if top <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	if top >= len(lines) {
		return ""
	}
	return strings.Join(lines[top:], "\n")
}
