package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTo_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTo(&buf, slog.LevelInfo, FormatText)
	logger.Debug("hidden")
	logger.Info("slide changed", "error", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=\"slide changed\"")
	assert.Contains(t, out, "err=boom")
}

func TestNewTo_JSON(t *testing.T) {
	var buf bytes.Buffer
	NewTo(&buf, slog.LevelDebug, FormatJSON).Debug("activated", "index", 2, "error", "none")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "activated", rec["msg"])
	assert.EqualValues(t, 2, rec["index"])
	assert.Equal(t, "none", rec["err"])
	assert.NotContains(t, rec, "error")
}

func TestNewNop(t *testing.T) {
	assert.False(t, NewNop().Enabled(context.Background(), slog.LevelError))
}
