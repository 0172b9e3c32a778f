// Package server exposes variant generation over HTTP.
//
// Routes:
//
//	POST /v1/variants  multipart image + generation fields, JSON batch
//	POST /v1/palette   multipart image + method/count, JSON palette report
//	GET  /healthz      liveness
//	GET  /version      build information
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/hueshift/pkg/config"
	"github.com/matzehuels/hueshift/pkg/pipeline"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	cfg    config.Server
	logger *log.Logger
	router chi.Router
}

// New builds a server around runner. Zero limits in cfg fall back to
// config.Default().
func New(runner *pipeline.Runner, cfg config.Server, logger *log.Logger) *Server {
	def := config.Default().Server
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = def.MaxUploadBytes
	}
	if cfg.MaxPixels <= 0 {
		cfg.MaxPixels = def.MaxPixels
	}
	if cfg.MaxVariants <= 0 {
		cfg.MaxVariants = def.MaxVariants
	}
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		runner: runner,
		cfg:    cfg,
		logger: logger.WithPrefix("http"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/variants", s.handleVariants)
		r.Post("/palette", s.handlePalette)
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.cfg.Addr
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
