package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/slidedeck"
	httpAdapter "github.com/aretw0/slidedeck/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/slidedeck/pkg/adapters/mcp"
	"github.com/aretw0/slidedeck/pkg/adapters/memory"
	"github.com/aretw0/slidedeck/pkg/adapters/redis"
	"github.com/aretw0/slidedeck/pkg/deck"
	"github.com/aretw0/slidedeck/pkg/observability"
	"github.com/aretw0/slidedeck/pkg/ports"
	"github.com/aretw0/slidedeck/pkg/session"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// ServeOptions contains all the configuration for the serve command.
type ServeOptions struct {
	DeckOptions
	Port          int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration
	Watch         bool
}

// Backend is the session storage shared by the network surfaces.
type Backend struct {
	Store    ports.LocationStore
	Sessions *session.Manager[*slidedeck.Presentation]
	Streams  *httpAdapter.StreamManager
	Metrics  *observability.Metrics

	closers []func() error
}

// NewBackend wires location storage, locking, metrics and the session factory.
// With a Redis address, positions survive restarts and sessions are locked
// across replicas; otherwise everything stays in memory.
func NewBackend(opts DeckOptions, redisAddr, redisPassword string, redisDB int, ttl time.Duration, logger *slog.Logger) (*Backend, error) {
	b := &Backend{
		Metrics: observability.NewMetrics(),
		Streams: httpAdapter.NewStreamManager(logger),
	}

	sessionOpts := []session.Option{session.WithLogger(logger)}
	if redisAddr != "" {
		store := redis.New(redisAddr, redisPassword, redisDB, redis.WithTTL(ttl))
		if err := store.Client().Ping(context.Background()).Err(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", redisAddr, err)
		}
		b.Store = store
		b.closers = append(b.closers, store.Close)
		sessionOpts = append(sessionOpts, session.WithLocker(redis.NewLocker(store.Client(), "slidedeck:")))
		logger.Info("Using Redis location store", "addr", redisAddr)
	} else {
		b.Store = memory.NewStore()
	}
	sessionOpts = append(sessionOpts, session.WithStore(b.Store))

	// Fail fast on a broken deck instead of on the first request.
	if _, err := deck.Load(opts.Dir); err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("error loading deck: %w", err)
	}

	base := opts.presentationOptions(logger)
	b.Sessions = session.NewManager(func(ctx context.Context, id string) (*slidedeck.Presentation, error) {
		pOpts := append(append([]slidedeck.Option(nil), base...),
			slidedeck.WithLogger(logger.With("session_id", id)),
			slidedeck.WithLocation(ports.BindLocation(b.Store, id)),
			slidedeck.WithLifecycleHooks(b.Metrics.Hooks()),
			slidedeck.WithLifecycleHooks(b.Streams.Hooks(id)),
		)
		p, err := slidedeck.New(opts.Dir, pOpts...)
		if err != nil {
			return nil, err
		}
		// Sessions outlive the request that opened them.
		if err := p.Start(context.WithoutCancel(ctx)); err != nil {
			return nil, err
		}
		return p, nil
	}, sessionOpts...)

	return b, nil
}

// Reload drops every live session so the next request rebuilds it from the
// changed deck, resuming at the stored position.
func (b *Backend) Reload(changed string) error {
	err := b.Sessions.CloseAll()
	b.Streams.BroadcastAll(httpAdapter.Message{Event: httpAdapter.EventReload, Data: changed})
	return err
}

// Close stops every session and releases the store.
func (b *Backend) Close() error {
	var err error
	if b.Sessions != nil {
		err = multierr.Append(err, b.Sessions.CloseAll())
	}
	for _, c := range b.closers {
		err = multierr.Append(err, c())
	}
	return err
}

// RunServe serves the deck over HTTP until ctx is done.
func RunServe(ctx context.Context, opts ServeOptions) error {
	logger := createLogger(opts.Debug, opts.LogFormat)

	backend, err := NewBackend(opts.DeckOptions, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.SessionTTL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("Shutdown cleanup failed", "err", err)
		}
	}()

	handler := httpAdapter.NewHandler(backend.Sessions,
		httpAdapter.WithStreams(backend.Streams),
		httpAdapter.WithMetrics(backend.Metrics.Handler()),
		httpAdapter.WithLogger(logger),
	)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	if opts.Watch {
		changes, err := deck.Watch(ctx, opts.Dir, logger)
		if err != nil {
			return err
		}
		g.Go(func() error {
			for name := range changes {
				logger.Info("Change detected, reloading sessions", "event", name)
				if err := backend.Reload(name); err != nil {
					logger.Warn("Reload failed", "err", err)
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		fmt.Printf("Starting slidedeck server on %s\n", srv.Addr)
		fmt.Printf("Serving deck from: %s\n", opts.Dir)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		fmt.Println("slidedeck server stopped gracefully")
		return nil
	})
	return g.Wait()
}

// MCPOptions contains all the configuration for the mcp command.
type MCPOptions struct {
	DeckOptions
	Transport string
	Port      int
}

// RunMCP exposes the deck's navigation as MCP tools until ctx is done or
// stdin closes.
func RunMCP(ctx context.Context, opts MCPOptions) error {
	logger := createLogger(opts.Debug, opts.LogFormat)

	backend, err := NewBackend(opts.DeckOptions, "", "", 0, 0, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	srv := mcpAdapter.NewServer(backend.Sessions, logger)
	switch opts.Transport {
	case "", "stdio":
		logger.Info("Starting slidedeck MCP Server (Stdio)...")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting slidedeck MCP Server (SSE)", "port", opts.Port)
		return srv.ServeSSE(ctx, opts.Port)
	}
	return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
}
