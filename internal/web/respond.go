package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tbruckner/heldeninv/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrContainerNotFound), errors.Is(err, domain.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientQuantity),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrFixedTreasury):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidTarget):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
