package logging

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the slog handler used by NewTo.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// New creates the application logger on Stderr, keeping Stdout free for the
// presenter and the MCP JSON-RPC stream.
func New(level slog.Level) *slog.Logger {
	return NewTo(os.Stderr, level, FormatText)
}

// NewTo creates a logger writing to w. Unknown formats fall back to text.
// The "error" key is renamed to "err" in every record.
func NewTo(w io.Writer, level slog.Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceAttr}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
