package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/slidedeck"
	"github.com/aretw0/slidedeck/internal/logging"
	"github.com/aretw0/slidedeck/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// DefaultSessionID is used when a tool call names no session.
const DefaultSessionID = "mcp"

// Sessions is the part of the session manager the MCP server needs.
type Sessions interface {
	Open(ctx context.Context, sessionID string) (*slidedeck.Presentation, error)
}

// Position aligns with the HTTP adapter and provides a unified structure across adapters.
type Position struct {
	SessionID     string `json:"session_id" jsonschema_description:"The session the position belongs to"`
	ActiveIndex   int    `json:"active_index" jsonschema_description:"Zero-based index of the active slide"`
	Total         int    `json:"total" jsonschema_description:"Number of slides in the deck"`
	Transitioning bool   `json:"transitioning" jsonschema_description:"True while a slide change is settling; navigation is ignored meanwhile"`
	Activated     []int  `json:"activated" jsonschema_description:"Slides whose activation already ran"`
	Title         string `json:"title,omitempty" jsonschema_description:"Title of the active slide"`
	Body          string `json:"body,omitempty" jsonschema_description:"Markdown body of the active slide"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type goToArgs struct {
	SessionID string `json:"session_id"`
	Index     int    `json:"index"`
}

// Server exposes presentations as an MCP Server.
type Server struct {
	sessions  Sessions
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance. A nil logger discards.
func NewServer(sessions Sessions, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		sessions:  sessions,
		mcpServer: server.NewMCPServer("slidedeck-mcp", strings.TrimSpace(slidedeck.Version)),
		logger:    logger,
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	sessionOpt := mcp.WithString("session_id", mcp.Description("Presentation session (optional, defaults to \""+DefaultSessionID+"\")"))

	s.mcpServer.AddTool(mcp.NewTool("deck_position",
		mcp.WithDescription("Report the active slide of a presentation session."),
		sessionOpt,
		mcp.WithOutputSchema[Position](),
	), mcp.NewStructuredToolHandler(s.handlePosition))

	s.mcpServer.AddTool(mcp.NewTool("next_slide",
		mcp.WithDescription("Advance to the next slide. Ignored on the last slide or while a change is settling."),
		sessionOpt,
		mcp.WithOutputSchema[Position](),
	), mcp.NewStructuredToolHandler(s.handleNext))

	s.mcpServer.AddTool(mcp.NewTool("prev_slide",
		mcp.WithDescription("Go back to the previous slide. Ignored on the first slide or while a change is settling."),
		sessionOpt,
		mcp.WithOutputSchema[Position](),
	), mcp.NewStructuredToolHandler(s.handlePrev))

	s.mcpServer.AddTool(mcp.NewTool("go_to_slide",
		mcp.WithDescription("Jump to a slide by zero-based index. Out of range indices are ignored."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Zero-based slide index")),
		sessionOpt,
		mcp.WithOutputSchema[Position](),
	), mcp.NewStructuredToolHandler(s.handleGoTo))
}

func (s *Server) handlePosition(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (Position, error) {
	p, id, err := s.open(ctx, args.SessionID)
	if err != nil {
		return Position{}, err
	}
	return position(ctx, id, p)
}

func (s *Server) handleNext(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (Position, error) {
	return s.dispatch(ctx, args.SessionID, domain.Next())
}

func (s *Server) handlePrev(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (Position, error) {
	return s.dispatch(ctx, args.SessionID, domain.Prev())
}

func (s *Server) handleGoTo(ctx context.Context, request mcp.CallToolRequest, args goToArgs) (Position, error) {
	return s.dispatch(ctx, args.SessionID, domain.GoTo(args.Index))
}

func (s *Server) dispatch(ctx context.Context, sessionID string, intent domain.Intent) (Position, error) {
	p, id, err := s.open(ctx, sessionID)
	if err != nil {
		return Position{}, err
	}
	if _, err := p.Dispatch(ctx, intent); err != nil {
		return Position{}, fmt.Errorf("%s failed: %w", intent, err)
	}
	s.logger.Debug("MCP: dispatched", "session_id", id, "intent", intent.String())
	return position(ctx, id, p)
}

func (s *Server) open(ctx context.Context, sessionID string) (*slidedeck.Presentation, string, error) {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}
	p, err := s.sessions.Open(ctx, sessionID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open session %s: %w", sessionID, err)
	}
	return p, sessionID, nil
}

func position(ctx context.Context, sessionID string, p *slidedeck.Presentation) (Position, error) {
	snap, err := p.Snapshot(ctx)
	if err != nil {
		return Position{}, err
	}
	pos := Position{
		SessionID:     sessionID,
		ActiveIndex:   snap.ActiveIndex,
		Total:         snap.Total,
		Transitioning: snap.Transitioning,
		Activated:     snap.Activated,
	}
	if content, err := p.Slide(snap.ActiveIndex); err == nil {
		pos.Title = content.Title
		pos.Body = content.Body
	}
	return pos, nil
}

func (s *Server) registerResources() {
	// EXPOSE: slidedeck://slides
	s.mcpServer.AddResource(mcp.NewResource("slidedeck://slides", "Slides of the default session",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		p, _, err := s.open(ctx, "")
		if err != nil {
			return nil, err
		}
		slides := make([]any, 0, p.Total())
		for i := range p.Total() {
			content, err := p.Slide(i)
			if err != nil {
				return nil, err
			}
			slides = append(slides, content)
		}
		jsonBytes, err := json.Marshal(slides)
		if err != nil {
			return nil, fmt.Errorf("failed to encode slides: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "slidedeck://slides",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
