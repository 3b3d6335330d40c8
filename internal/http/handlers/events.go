package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.API.ListEvents(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := h.API.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ev)
}

func (h *Handlers) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := h.API.ApproveEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ev)
}

func (h *Handlers) RejectEvent(w http.ResponseWriter, r *http.Request) {
	var req models.RejectEventRequest
	if err := decodeStrict(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	ev, err := h.API.RejectEvent(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ev)
}
