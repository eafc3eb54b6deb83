// Package server provides the HTTP REST API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mikhail/resume-builder/internal/airtable"
	"github.com/mikhail/resume-builder/internal/db"
	"github.com/mikhail/resume-builder/internal/pipeline"
	"github.com/mikhail/resume-builder/internal/session"
)

// Server exposes the builder pipeline over HTTP.
type Server struct {
	httpServer      *http.Server
	sessions        *session.Store
	pipeline        *pipeline.Pipeline
	feedback        *airtable.Client
	feedbackTableID string
	database        *db.DB
	devMode         bool
	logger          zerolog.Logger
}

// Config holds server wiring.
type Config struct {
	Port            int
	Pipeline        *pipeline.Pipeline
	FeedbackStore   *airtable.Client
	FeedbackTableID string
	Database        *db.DB
	DevMode         bool
	Logger          zerolog.Logger
}

// New creates a server instance.
func New(cfg Config) *Server {
	s := &Server{
		sessions:        session.NewStore(),
		pipeline:        cfg.Pipeline,
		feedback:        cfg.FeedbackStore,
		feedbackTableID: cfg.FeedbackTableID,
		database:        cfg.Database,
		devMode:         cfg.DevMode,
		logger:          cfg.Logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("POST /sessions/{id}/generate", s.handleGenerate)
	mux.HandleFunc("GET /sessions/{id}/record", s.handleGetRecord)
	mux.HandleFunc("GET /sessions/{id}/artifact", s.handleGetArtifact)
	mux.HandleFunc("POST /sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("POST /sessions/{id}/upload", s.handleUpload)
	mux.HandleFunc("POST /sessions/{id}/feedback", s.handleFeedback)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // generation round trips are slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the routed handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening and blocks until an interrupt, then shuts
// down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-stop:
	}

	s.logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.database != nil {
		s.database.Close()
	}

	s.logger.Info().Msg("server stopped")
	return nil
}

// withLogging logs each request with method, path, and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// jsonResponse writes a JSON body with the given status.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// errorResponse writes a JSON error body with the given status.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
