// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/pocketnotes/internal/api"
	"github.com/starford/pocketnotes/internal/journal"
	"github.com/starford/pocketnotes/internal/mcpserver"
	"github.com/starford/pocketnotes/internal/noteservice"
	"github.com/starford/pocketnotes/internal/notestore"
	"github.com/starford/pocketnotes/internal/sse"
	"github.com/starford/pocketnotes/internal/watch"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{logOutput: os.Stdout, version: "dev"}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// logger builds the structured JSON logger and installs it as the default.
func (a *application) logger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOutput, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// Notes is an opened note service together with the resources it owns.
type Notes struct {
	Service *noteservice.Service
	Store   *notestore.Store

	journal *journal.DB
}

// Close releases the journal database.
func (n *Notes) Close() error {
	return n.journal.Close()
}

// openNotes opens the notes directory and the journal. Load errors are
// logged and tolerated. An unusable directory is reported by the service on
// every mutation until a reload succeeds.
func openNotes(cfg *Config, logger *slog.Logger, pub noteservice.Publisher) (*Notes, error) {
	store, err := notestore.Open(cfg.Notes.Path, notestore.WithLogger(logger))
	if err != nil {
		logger.Warn("notes loaded with errors",
			slog.String("path", cfg.Notes.Path),
			slog.Bool("available", store.Available()),
			slog.String("error", err.Error()))
	}

	db, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("init journal: %w", err)
	}

	opts := []noteservice.Option{
		noteservice.WithJournal(db),
		noteservice.WithLogger(logger),
	}
	if pub != nil {
		opts = append(opts, noteservice.WithPublisher(pub))
	}

	return &Notes{
		Service: noteservice.NewService(store, opts...),
		Store:   store,
		journal: db,
	}, nil
}

// Open wires the note service for one-shot use by terminal commands.
// The caller must Close the result.
func Open(opts ...Option) (*Notes, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	return openNotes(app.config, app.logger(), nil)
}

// RunMCP serves the note tools over stdio until the client disconnects.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := app.logger()

	notes, err := openNotes(app.config, logger, nil)
	if err != nil {
		return err
	}
	defer notes.Close()

	srv := mcpserver.New(notes.Service, app.version)
	logger.Info("MCP server starting on stdio", slog.String("notes_path", app.config.Notes.Path))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ServeStdio() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}

	cfg := app.config
	logger := app.logger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("notes_path", cfg.Notes.Path),
		slog.String("journal_path", cfg.Journal.Path),
		slog.Bool("watch", cfg.Notes.Watch),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// SSE broker.
	broker := sse.NewBroker(cfg.Events.Throttle)
	defer broker.Close()

	notes, err := openNotes(cfg, logger, broker)
	if err != nil {
		return err
	}
	defer notes.Close()
	svc := notes.Service

	logger.Info("Notes loaded", slog.Int("count", svc.Count(ctx)))

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !svc.Available(r.Context()) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"notes directory unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	g, gCtx := errgroup.WithContext(ctx)

	// Reconcile edits made to the directory by other programs.
	if cfg.Notes.Watch {
		g.Go(func() error {
			if err := watch.Watch(gCtx, notes.Store.Dir(), notestore.Extension, cfg.Notes.Debounce, svc, logger); err != nil {
				logger.Warn("directory watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		stop()

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
