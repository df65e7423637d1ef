// Package server implements the FunnelGraph HTTP API.
//
// The API exposes two surfaces: a stateless render endpoint that turns a
// chart definition into artifacts, and a chart store for saving
// definitions and re-rendering them by ID.
//
// # Endpoints
//
//	POST   /v1/render              render a definition from the request body
//	POST   /v1/charts              save a chart definition
//	GET    /v1/charts              list stored charts
//	GET    /v1/charts/{id}         fetch a stored definition
//	GET    /v1/charts/{id}/render  render a stored chart (?format=svg)
//	DELETE /v1/charts/{id}         delete a stored chart
//	GET    /healthz                liveness probe
//
// Errors are returned as JSON envelopes carrying the machine-readable
// error code, mapped onto HTTP status codes.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/funnelgraph/pkg/cache"
	"github.com/matzehuels/funnelgraph/pkg/pipeline"
	"github.com/matzehuels/funnelgraph/pkg/store"
)

// Config configures the HTTP server.
type Config struct {
	Addr   string      // listen address (default ":8080")
	Store  store.Store // chart persistence (default in-memory)
	Cache  cache.Cache // pipeline cache (default disabled)
	Logger *log.Logger
}

// Server serves the FunnelGraph HTTP API.
type Server struct {
	addr   string
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// New creates a server with its routes and middleware wired up.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Server{
		addr:   cfg.Addr,
		runner: pipeline.NewRunner(cfg.Cache, nil, cfg.Logger),
		store:  cfg.Store,
		logger: cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(cfg.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Route("/charts", func(r chi.Router) {
			r.Post("/", s.handleSaveChart)
			r.Get("/", s.handleListCharts)
			r.Get("/{id}", s.handleGetChart)
			r.Get("/{id}/render", s.handleRenderChart)
			r.Delete("/{id}", s.handleDeleteChart)
		})
	})
	s.router = r

	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// Close releases the server's backend resources.
func (s *Server) Close(ctx context.Context) error {
	if err := s.runner.Close(); err != nil {
		return err
	}
	return s.store.Close(ctx)
}
