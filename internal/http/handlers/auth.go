package handlers

import (
	"net/http"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	s, err := h.API.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.API.Logout(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	s, err := h.API.Session(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}
