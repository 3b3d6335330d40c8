package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.API.ListPosts(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// HidePost: тело {"reason": "..."} необязательно.
func (h *Handlers) HidePost(w http.ResponseWriter, r *http.Request) {
	var req models.HidePostRequest
	if r.ContentLength != 0 {
		if err := decodeStrict(r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	p, err := h.API.HidePost(r.Context(), chi.URLParam(r, "id"), req.Reason)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.API.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
