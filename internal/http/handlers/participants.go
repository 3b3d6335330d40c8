package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

func (h *Handlers) ListParticipants(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.API.ListParticipants(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) SetParticipantStatus(w http.ResponseWriter, r *http.Request) {
	var req models.ParticipantStatusRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.API.SetParticipantStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}
