// Package server exposes the mind map pipeline over HTTP.
//
// Routes:
//
//	GET  /health                       build info
//	POST /api/parse                    outline text → tree
//	POST /api/layout                   outline text → positioned diagram
//	POST /api/render                   outline text → artifacts + share ID
//	GET  /api/diagrams/{id}.{format}   re-render a shared diagram
//
// Request bodies are JSON-encoded [pipeline.Options].
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mindmap/pkg/config"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// Server is the HTTP API server for mindmap.
type Server struct {
	router chi.Router
	runner *pipeline.Runner
	log    *log.Logger
	cfg    config.ServerConfig
}

// New creates and configures the HTTP server. Shared diagrams are stored in
// the runner's cache.
func New(runner *pipeline.Runner, logger *log.Logger, cfg config.ServerConfig) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = config.Default().Server.MaxBodyBytes
	}
	s := &Server{
		runner: runner,
		log:    logger,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Get("/diagrams/{id}.{format}", s.handleDiagram)
	})

	s.router = r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
// within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.log.Info("shutting down", "timeout", timeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
