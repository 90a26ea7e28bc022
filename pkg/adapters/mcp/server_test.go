package mcp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/slidedeck"
	"github.com/aretw0/slidedeck/pkg/view"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*slidedeck.Presentation
	fail     error
}

func (f *fakeSessions) Open(ctx context.Context, id string) (*slidedeck.Presentation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	if p, ok := f.sessions[id]; ok {
		return p, nil
	}
	p := slidedeck.NewFromContents("demo", []view.Content{
		{Title: "One", Body: "first"},
		{Title: "Two", Body: "second"},
		{Title: "Three", Body: "third"},
	}, slidedeck.WithSettleDelay(10*time.Millisecond))
	if err := p.Start(context.Background()); err != nil {
		return nil, err
	}
	f.sessions[id] = p
	return p, nil
}

func (f *fakeSessions) closeAll() {
	for _, p := range f.sessions {
		_ = p.Close()
	}
}

func newTestServer(t *testing.T) (*Server, *fakeSessions) {
	t.Helper()
	sessions := &fakeSessions{sessions: make(map[string]*slidedeck.Presentation)}
	t.Cleanup(sessions.closeAll)
	return NewServer(sessions, nil), sessions
}

func waitSettled(t *testing.T, s *Server, id string) {
	t.Helper()
	assert.Eventually(t, func() bool {
		pos, err := s.handlePosition(context.Background(), mcp.CallToolRequest{}, sessionArgs{SessionID: id})
		return err == nil && !pos.Transitioning
	}, 2*time.Second, 5*time.Millisecond)
}

func TestPosition_DefaultSession(t *testing.T) {
	s, sessions := newTestServer(t)

	pos, err := s.handlePosition(context.Background(), mcp.CallToolRequest{}, sessionArgs{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionID, pos.SessionID)
	assert.Equal(t, 0, pos.ActiveIndex)
	assert.Equal(t, 3, pos.Total)
	assert.Equal(t, "One", pos.Title)
	assert.Contains(t, sessions.sessions, DefaultSessionID)
}

func TestNavigationTools(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	waitSettled(t, s, "talk")

	pos, err := s.handleNext(ctx, req, sessionArgs{SessionID: "talk"})
	require.NoError(t, err)
	assert.Equal(t, 1, pos.ActiveIndex)
	assert.Equal(t, "second", pos.Body)

	pos, err = s.handleNext(ctx, req, sessionArgs{SessionID: "talk"})
	require.NoError(t, err)
	assert.Equal(t, 1, pos.ActiveIndex, "ignored while settling")
	waitSettled(t, s, "talk")

	pos, err = s.handleGoTo(ctx, req, goToArgs{SessionID: "talk", Index: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, pos.ActiveIndex)
	waitSettled(t, s, "talk")

	pos, err = s.handleGoTo(ctx, req, goToArgs{SessionID: "talk", Index: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, pos.ActiveIndex, "out of range is ignored")

	pos, err = s.handlePrev(ctx, req, sessionArgs{SessionID: "talk"})
	require.NoError(t, err)
	assert.Equal(t, 1, pos.ActiveIndex)

	other, err := s.handlePosition(ctx, req, sessionArgs{SessionID: "other"})
	require.NoError(t, err)
	assert.Equal(t, 0, other.ActiveIndex, "sessions are independent")
}

func TestOpenFailure(t *testing.T) {
	s, sessions := newTestServer(t)
	sessions.fail = errors.New("boom")

	_, err := s.handleNext(context.Background(), mcp.CallToolRequest{}, sessionArgs{})
	assert.ErrorContains(t, err, "boom")
}
