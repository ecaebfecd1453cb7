package web

import (
	"net/http"

	"github.com/tbruckner/heldeninv/internal/domain"
)

func (s *Server) handleAdjustMoney(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount  domain.Coins `json:"amount"`
		Comment string       `json:"comment"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.service.AdjustMoney(r.PathValue("id"), req.Amount, req.Comment); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTransferMoney(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To     string       `json:"to"`
		Amount domain.Coins `json:"amount"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.service.TransferMoney(r.PathValue("id"), req.To, req.Amount); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTransferToTreasury(w http.ResponseWriter, r *http.Request) {
	if err := s.service.TransferAllToTreasury(r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
