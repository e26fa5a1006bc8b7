// Package server exposes the mesh pipeline over HTTP.
//
// Routes:
//
//	POST /v1/mesh    build a mesh from segments, respond with points, edges, tags and labels
//	POST /v1/export  build and render a single format, respond with the artifact
//	GET  /healthz    liveness and build information
//
// Request bodies share one shape: the segment document read by
// [trussio.ReadSegmentsJSON] plus an optional "options" object holding
// [pipeline.Options] fields. Server-side file inputs are never read.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/trussmesh/pkg/pipeline"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "localhost:8080"

const (
	maxBodyBytes    = 32 << 20
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server serves the mesh API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server backed by runner. A nil logger logs nowhere.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, logger: logger}
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/mesh", s.handleMesh)
		r.Post("/export", s.handleExport)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
