// Package web exposes the inventory service as a small JSON API for UI
// clients, plus a server-sent-events stream of mutations.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/tbruckner/heldeninv/internal/audit"
	"github.com/tbruckner/heldeninv/internal/inventory"
)

type Server struct {
	service *inventory.Service
	trail   *audit.Trail
	mux     *http.ServeMux
	logger  *slog.Logger
}

func NewServer(svc *inventory.Service, trail *audit.Trail, logger *slog.Logger) *Server {
	s := &Server{
		service: svc,
		trail:   trail,
		mux:     http.NewServeMux(),
		logger:  logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/containers", s.handleListContainers)
	s.mux.HandleFunc("POST /api/containers", s.handleCreateContainer)
	s.mux.HandleFunc("GET /api/containers/{id}", s.handleGetContainer)
	s.mux.HandleFunc("PUT /api/containers/{id}", s.handleUpdateContainer)
	s.mux.HandleFunc("DELETE /api/containers/{id}", s.handleDeleteContainer)

	s.mux.HandleFunc("POST /api/containers/{id}/items", s.handleAddItem)
	s.mux.HandleFunc("PUT /api/containers/{id}/items/{itemID}", s.handleEditItem)
	s.mux.HandleFunc("DELETE /api/containers/{id}/items/{itemID}", s.handleRemoveItem)
	s.mux.HandleFunc("POST /api/containers/{id}/items/{itemID}/adjust", s.handleAdjustQuantity)
	s.mux.HandleFunc("POST /api/containers/{id}/items/{itemID}/move", s.handleMoveItem)
	s.mux.HandleFunc("POST /api/containers/{id}/items/{itemID}/copy", s.handleCopyItem)

	s.mux.HandleFunc("POST /api/containers/{id}/money", s.handleAdjustMoney)
	s.mux.HandleFunc("POST /api/containers/{id}/transfer", s.handleTransferMoney)
	s.mux.HandleFunc("POST /api/containers/{id}/transfer-to-treasury", s.handleTransferToTreasury)

	s.mux.HandleFunc("GET /api/summary", s.handleSummary)
	s.mux.HandleFunc("GET /api/search", s.handleSearch)
	s.mux.HandleFunc("GET /api/audit", s.handleAuditTrail)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, s.mux).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:        addr,
		Handler:     s,
		ReadTimeout: 60 * time.Second,
		// No write timeout: /api/events is long-lived.
		IdleTimeout: 120 * time.Second,
	}
	return srv.ListenAndServe()
}
