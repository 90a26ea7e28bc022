package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/slidedeck"
	"github.com/aretw0/slidedeck/internal/logging"
	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/aretw0/slidedeck/pkg/gesture"
	"github.com/aretw0/slidedeck/pkg/input"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds request bodies; every payload here is a few fields.
const maxBodyBytes = 64 << 10

// Sessions is the part of the session manager the server needs.
type Sessions interface {
	Open(ctx context.Context, sessionID string) (*slidedeck.Presentation, error)
	Reset(ctx context.Context, sessionID string) error
	List() []string
}

// Server serves presentations over HTTP, one per session ID.
type Server struct {
	Sessions Sessions
	Streams  *StreamManager

	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStreams shares a StreamManager, typically the one whose Hooks were
// installed on the presentations.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// NewServer creates a Server.
func NewServer(sessions Sessions, opts ...Option) *Server {
	s := &Server{Sessions: sessions, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}
	return s
}

// NewHandler creates the HTTP handler for sessions.
func NewHandler(sessions Sessions, opts ...Option) http.Handler {
	return NewServer(sessions, opts...).Handler()
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetPosition)
			r.Delete("/", s.ResetSession)
			r.Get("/frame", s.GetFrame)
			r.Get("/events", s.SubscribeEvents)
			r.Get("/slides/{index}", s.GetSlide)
			r.Post("/intents", s.PostIntent)
			r.Post("/keys", s.PostKey)
			r.Post("/gestures", s.PostGesture)
			r.Post("/dots/{index}", s.PostDot)
		})
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Position is the navigation state returned by most endpoints.
type Position struct {
	SessionID string `json:"session_id"`
	domain.Snapshot
	Title      string `json:"title,omitempty"`
	Fullscreen bool   `json:"fullscreen"`
}

// IntentRequest is the body of POST /sessions/{id}/intents.
type IntentRequest struct {
	Intent string `json:"intent"`
	Index  *int   `json:"index,omitempty"`
}

// KeyResponse is returned by POST /sessions/{id}/keys.
type KeyResponse struct {
	Handled  bool     `json:"handled"`
	Position Position `json:"position"`
}

// GestureResponse is returned by POST /sessions/{id}/gestures.
type GestureResponse struct {
	Direction string   `json:"direction"`
	Position  Position `json:"position"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "slidedeck-http",
		"version": strings.TrimSpace(slidedeck.Version),
	})
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": s.Sessions.List()})
}

// GetPosition handles the GET /sessions/{id} request, opening the session if needed.
func (s *Server) GetPosition(w http.ResponseWriter, r *http.Request) {
	p, ok := s.open(w, r)
	if !ok {
		return
	}
	pos, err := s.position(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		s.fail(w, "GetPosition", err)
		return
	}
	s.writeJSON(w, http.StatusOK, pos)
}

// ResetSession handles the DELETE /sessions/{id} request.
func (s *Server) ResetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Sessions.Reset(r.Context(), id); err != nil {
		s.fail(w, "ResetSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetFrame handles the GET /sessions/{id}/frame request.
func (s *Server) GetFrame(w http.ResponseWriter, r *http.Request) {
	p, ok := s.open(w, r)
	if !ok {
		return
	}
	f, err := p.Frame(r.Context())
	if err != nil {
		s.fail(w, "GetFrame", err)
		return
	}
	s.writeJSON(w, http.StatusOK, f)
}

// GetSlide handles the GET /sessions/{id}/slides/{index} request.
func (s *Server) GetSlide(w http.ResponseWriter, r *http.Request) {
	index, ok := s.indexParam(w, r)
	if !ok {
		return
	}
	p, ok := s.open(w, r)
	if !ok {
		return
	}
	content, err := p.Slide(index)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, content)
}

// PostIntent handles the POST /sessions/{id}/intents request.
func (s *Server) PostIntent(w http.ResponseWriter, r *http.Request) {
	var body IntentRequest
	if !s.decode(w, r, "PostIntent", &body) {
		return
	}
	kind, err := domain.ParseIntentKind(body.Intent)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	intent := domain.Intent{Kind: kind}
	if kind == domain.IntentGoTo {
		if body.Index == nil {
			http.Error(w, "goto requires an index", http.StatusBadRequest)
			return
		}
		intent.Index = *body.Index
	}

	p, ok := s.open(w, r)
	if !ok {
		return
	}
	pos, err := s.navigate(r.Context(), chi.URLParam(r, "id"), p, func(ctx context.Context) error {
		_, err := p.Dispatch(ctx, intent)
		return err
	})
	if err != nil {
		s.fail(w, "PostIntent", err)
		return
	}
	s.writeJSON(w, http.StatusOK, pos)
}

// PostKey handles the POST /sessions/{id}/keys request.
func (s *Server) PostKey(w http.ResponseWriter, r *http.Request) {
	var key input.Key
	if !s.decode(w, r, "PostKey", &key) {
		return
	}
	if key.Name == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}

	p, ok := s.open(w, r)
	if !ok {
		return
	}
	var handled bool
	pos, err := s.navigate(r.Context(), chi.URLParam(r, "id"), p, func(ctx context.Context) error {
		var err error
		handled, err = p.Key(ctx, key)
		return err
	})
	if err != nil {
		s.fail(w, "PostKey", err)
		return
	}
	s.writeJSON(w, http.StatusOK, KeyResponse{Handled: handled, Position: pos})
}

// PostGesture handles the POST /sessions/{id}/gestures request.
func (s *Server) PostGesture(w http.ResponseWriter, r *http.Request) {
	var sample gesture.Sample
	if !s.decode(w, r, "PostGesture", &sample) {
		return
	}

	p, ok := s.open(w, r)
	if !ok {
		return
	}
	var dir gesture.Direction
	pos, err := s.navigate(r.Context(), chi.URLParam(r, "id"), p, func(ctx context.Context) error {
		var err error
		dir, err = p.Swipe(ctx, sample)
		return err
	})
	if err != nil {
		s.fail(w, "PostGesture", err)
		return
	}
	s.writeJSON(w, http.StatusOK, GestureResponse{Direction: dir.String(), Position: pos})
}

// PostDot handles the POST /sessions/{id}/dots/{index} request.
func (s *Server) PostDot(w http.ResponseWriter, r *http.Request) {
	index, ok := s.indexParam(w, r)
	if !ok {
		return
	}
	p, ok := s.open(w, r)
	if !ok {
		return
	}
	pos, err := s.navigate(r.Context(), chi.URLParam(r, "id"), p, func(ctx context.Context) error {
		_, err := p.SelectDot(ctx, index)
		return err
	})
	if err != nil {
		s.fail(w, "PostDot", err)
		return
	}
	s.writeJSON(w, http.StatusOK, pos)
}

// SubscribeEvents handles the GET /sessions/{id}/events request (SSE).
// The optional "watch" query parameter is a comma separated list of event names.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: streaming not supported")
		return
	}

	sessionID := chi.URLParam(r, "id")
	watch := make(map[string]bool)
	for _, name := range strings.Split(r.URL.Query().Get("watch"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			watch[name] = true
		}
	}

	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()
	s.logger.Info("SSE: subscribed", "session_id", sessionID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: %s\ndata: connected\n\n", EventPing)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "session_id", sessionID)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if len(watch) > 0 && !watch[msg.Event] && msg.Event != EventReload {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}

// -- Helpers --

func (s *Server) open(w http.ResponseWriter, r *http.Request) (*slidedeck.Presentation, bool) {
	id := chi.URLParam(r, "id")
	p, err := s.Sessions.Open(r.Context(), id)
	if err != nil {
		s.fail(w, "open session", err)
		return nil, false
	}
	return p, true
}

// navigate runs fn and broadcasts the resulting snapshot diff.
func (s *Server) navigate(ctx context.Context, sessionID string, p *slidedeck.Presentation, fn func(context.Context) error) (Position, error) {
	before, err := p.Snapshot(ctx)
	if err != nil {
		return Position{}, err
	}
	if err := fn(ctx); err != nil {
		return Position{}, err
	}
	pos, err := s.position(ctx, sessionID, p)
	if err != nil {
		return Position{}, err
	}
	if diff := domain.Diff(sessionID, &before, &pos.Snapshot); diff != nil {
		s.logger.Debug("navigate: diff calculated", "session_id", sessionID, "diff", diff)
		s.Streams.BroadcastJSON(sessionID, EventDiff, diff)
	}
	return pos, nil
}

func (s *Server) position(ctx context.Context, sessionID string, p *slidedeck.Presentation) (Position, error) {
	snap, err := p.Snapshot(ctx)
	if err != nil {
		return Position{}, err
	}
	fs, err := p.Fullscreen(ctx)
	if err != nil {
		return Position{}, err
	}
	pos := Position{SessionID: sessionID, Snapshot: snap, Fullscreen: fs}
	if content, err := p.Slide(snap.ActiveIndex); err == nil {
		pos.Title = content.Title
	}
	return pos, nil
}

func (s *Server) indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn(op+": invalid request body", "err", err)
		return false
	}
	return true
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		http.Error(w, fmt.Sprintf("%s error: %v", op, err), http.StatusInternalServerError)
		s.logger.Error(op+" failed", "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
