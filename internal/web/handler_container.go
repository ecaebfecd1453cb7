package web

import (
	"net/http"

	"github.com/tbruckner/heldeninv/internal/inventory"
)

func (s *Server) handleListContainers(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.service.Containers())
}

func (s *Server) handleGetContainer(w http.ResponseWriter, r *http.Request) {
	c, err := s.service.Container(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCreateContainer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !s.decode(w, r, &req) {
		return
	}

	c, err := s.service.CreateContainer(req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateContainer(w http.ResponseWriter, r *http.Request) {
	var patch inventory.ContainerPatch
	if !s.decode(w, r, &patch) {
		return
	}

	c, err := s.service.UpdateContainer(r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteContainer(w http.ResponseWriter, r *http.Request) {
	moveTo := r.URL.Query().Get("moveTo")
	if err := s.service.DeleteContainer(r.PathValue("id"), moveTo); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
