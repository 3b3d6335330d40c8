package handlers

import "net/http"

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, err := h.API.Dashboard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, s)
}
