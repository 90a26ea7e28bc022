package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/slidedeck/internal/logging"
	"github.com/aretw0/slidedeck/pkg/domain"
)

// Event names used on the SSE stream besides the lifecycle event types.
const (
	EventDiff   = "diff"
	EventReload = "reload"
	EventPing   = "ping"
)

// Message is one server-sent event.
type Message struct {
	Event string
	Data  string
}

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Message]struct{} // SessionID -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates a StreamManager. A nil logger discards.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Message]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a listener for sessionID. The returned func unsubscribes
// and closes the channel.
func (sm *StreamManager) Subscribe(sessionID string) (<-chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, 16)
	if _, ok := sm.subscribers[sessionID]; !ok {
		sm.subscribers[sessionID] = make(map[chan<- Message]struct{})
	}
	sm.subscribers[sessionID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[sessionID]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, sessionID)
				}
			}
		})
	}
}

// Subscribers returns the number of listeners for sessionID.
func (sm *StreamManager) Subscribers(sessionID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[sessionID])
}

// Broadcast delivers msg to the listeners of sessionID without blocking.
func (sm *StreamManager) Broadcast(sessionID string, msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.send(sessionID, sm.subscribers[sessionID], msg)
}

// BroadcastAll delivers msg to every listener.
func (sm *StreamManager) BroadcastAll(msg Message) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for sessionID, subs := range sm.subscribers {
		sm.send(sessionID, subs, msg)
	}
}

func (sm *StreamManager) send(sessionID string, subs map[chan<- Message]struct{}, msg Message) {
	for ch := range subs {
		select {
		case ch <- msg:
		default:
			// Slow client.
			sm.logger.Warn("SSE: client buffer full, dropping message", "session_id", sessionID, "event", msg.Event)
		}
	}
}

// BroadcastJSON encodes v and broadcasts it under event.
func (sm *StreamManager) BroadcastJSON(sessionID, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		sm.logger.Error("SSE: encode failed", "event", event, "err", err)
		return
	}
	sm.Broadcast(sessionID, Message{Event: event, Data: string(data)})
}

// Hooks streams the controller lifecycle of sessionID.
func (sm *StreamManager) Hooks(sessionID string) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSlideEnter: func(ctx context.Context, e *domain.SlideEvent) {
			sm.BroadcastJSON(sessionID, string(e.Type), e)
		},
		OnSettle: func(ctx context.Context, e *domain.SlideEvent) {
			sm.BroadcastJSON(sessionID, string(e.Type), e)
		},
		OnActivate: func(ctx context.Context, e *domain.ActivationEvent) {
			sm.BroadcastJSON(sessionID, string(e.Type), e)
		},
		OnReject: func(ctx context.Context, e *domain.RejectEvent) {
			sm.BroadcastJSON(sessionID, string(e.Type), e)
		},
	}
}
