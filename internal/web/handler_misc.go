package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tbruckner/heldeninv/internal/inventory"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.service.Summarize())
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	results := s.service.SearchItems(r.URL.Query().Get("q"))
	if results == nil {
		results = []inventory.SearchResult{}
	}
	s.writeJSON(w, http.StatusOK, struct {
		Results []inventory.SearchResult `json:"results"`
	}{Results: results})
}

func (s *Server) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	n := 100
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "n must be a positive integer"})
			return
		}
		n = parsed
	}
	s.writeJSON(w, http.StatusOK, struct {
		Entries []string `json:"entries"`
	}{Entries: s.trail.Recent(n)})
}

// handleEvents streams mutation events as server-sent events until the
// client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming not supported"})
		return
	}

	events, cancel := s.service.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				s.logger.Error("failed to encode event", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
