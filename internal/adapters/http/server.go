// Package http exposes the conversation engine over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/berryair/concierge/internal/logging"
	"github.com/berryair/concierge/pkg/domain"
)

// SessionManager is the slice of the session manager the API needs.
type SessionManager interface {
	HandleMessage(ctx context.Context, sessionID, message string) (string, error)
	Inspect(ctx context.Context, sessionID string) (*domain.Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
}

// Server serves the conversation API.
type Server struct {
	manager SessionManager
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithLogger configures request-scoped logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewHandler builds the HTTP handler. The gatherer backs GET /metrics; pass
// prometheus.DefaultGatherer unless metrics were registered elsewhere.
func NewHandler(manager SessionManager, gatherer prometheus.Gatherer, opts ...Option) http.Handler {
	server := &Server{
		manager: manager,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", server.health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", server.listSessions)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Post("/messages", server.postMessage)
			r.Get("/", server.getSession)
			r.Delete("/", server.deleteSession)
		})
	})

	return r
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	SessionID string `json:"session_id"`
	Response  string `json:"response"`
}

type listResponse struct {
	Sessions []string `json:"sessions"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		s.writeError(w, http.StatusBadRequest, "message cannot be empty")
		return
	}

	response, err := s.manager.HandleMessage(r.Context(), sessionID, req.Message)
	if err != nil {
		s.logger.Error("turn failed", "session_id", sessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	s.writeJSON(w, http.StatusOK, messageResponse{SessionID: sessionID, Response: response})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	snap, err := s.manager.Inspect(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			s.writeError(w, http.StatusNotFound, "session not found")
			return
		}
		s.logger.Error("session lookup failed", "session_id", sessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	s.writeJSON(w, http.StatusOK, snap)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	if err := s.manager.Delete(r.Context(), sessionID); err != nil {
		s.logger.Error("session delete failed", "session_id", sessionID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.manager.List(r.Context())
	if err != nil {
		s.logger.Error("session list failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}
	if ids == nil {
		ids = []string{}
	}

	s.writeJSON(w, http.StatusOK, listResponse{Sessions: ids})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}
