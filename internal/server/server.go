// Package server provides the HTTP API for triggering and reading prep
// sheets. It is a thin wrapper over the pipeline: list/browse pages,
// authentication, and the web front end live elsewhere.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/leemount96/hearing-prep/internal/generation"
	"github.com/leemount96/hearing-prep/internal/pipeline"
	"github.com/leemount96/hearing-prep/internal/schemas"
	"github.com/leemount96/hearing-prep/internal/types"
)

// PrepSheetService is the pipeline surface the server exposes.
type PrepSheetService interface {
	Generate(ctx context.Context, hearingID uuid.UUID) (*types.PrepSheetRecord, error)
	Get(ctx context.Context, hearingID uuid.UUID) (*types.PrepSheetRecord, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	service    PrepSheetService
}

// Config holds server configuration
type Config struct {
	Port int
}

// New creates a new server instance around an already-constructed pipeline.
func New(cfg Config, service PrepSheetService) *Server {
	s := &Server{service: service}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/hearings/{id}/prep-sheet", s.handleGet)
	mux.HandleFunc("POST /api/hearings/{id}/prep-sheet", s.handleGenerate)

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort("", fmt.Sprintf("%d", cfg.Port)),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	hearingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid hearing id")
		return
	}

	record, err := s.service.Get(r.Context(), hearingID)
	if err != nil {
		log.Printf("get prep sheet for %s: %v", hearingID, err)
		writeError(w, http.StatusInternalServerError, "failed to load prep sheet")
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "no prep sheet for this hearing")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	hearingID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid hearing id")
		return
	}

	record, err := s.service.Generate(r.Context(), hearingID)
	if err != nil {
		status, message := classifyError(err)
		log.Printf("generate prep sheet for %s: %v", hearingID, err)
		writeError(w, status, message)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// classifyError maps pipeline failures to HTTP responses that tell the
// caller whether a retry can help.
func classifyError(err error) (int, string) {
	var genErr *generation.GenerationError
	var valErr *schemas.ValidationError
	switch {
	case errors.Is(err, pipeline.ErrHearingNotFound):
		return http.StatusNotFound, "hearing not found"
	case errors.As(err, &genErr):
		return http.StatusBadGateway, "generation failed, retry"
	case errors.As(err, &valErr):
		return http.StatusBadGateway, "model output rejected, retry"
	default:
		return http.StatusInternalServerError, "generation failed"
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
