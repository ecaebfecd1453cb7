package web

import (
	"net/http"

	"github.com/tbruckner/heldeninv/internal/inventory"
)

type itemRequest struct {
	inventory.ItemDraft
	Comment string `json:"comment"`
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !s.decode(w, r, &req) {
		return
	}

	it, err := s.service.AddItem(r.PathValue("id"), req.ItemDraft, req.Comment)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, it)
}

func (s *Server) handleEditItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !s.decode(w, r, &req) {
		return
	}

	it, err := s.service.EditItem(r.PathValue("id"), r.PathValue("itemID"), req.ItemDraft, req.Comment)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	comment := r.URL.Query().Get("comment")
	if err := s.service.RemoveItem(r.PathValue("id"), r.PathValue("itemID"), comment); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Delta   int    `json:"delta"`
		Comment string `json:"comment"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	it, err := s.service.AdjustQuantity(r.PathValue("id"), r.PathValue("itemID"), req.Delta, req.Comment)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleMoveItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To       string `json:"to"`
		Quantity int    `json:"quantity"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.service.MoveItem(r.PathValue("id"), req.To, r.PathValue("itemID"), req.Quantity); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCopyItem(w http.ResponseWriter, r *http.Request) {
	it, err := s.service.CopyItem(r.PathValue("id"), r.PathValue("itemID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, it)
}
