package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

// maxUpload — предел multipart-тела при создании товара.
const maxUpload = 10 << 20

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	page, err := h.API.ListProducts(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// CreateProduct принимает либо JSON (ProductInput), либо multipart, как его
// собирает FormData в браузере: поле/часть "product" с JSON и файл "image".
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var (
		in  models.ProductInput
		img *models.ProductImage
		err error
	)

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		in, img, err = readProductForm(r)
	} else {
		err = decodeStrict(r, &in)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.API.CreateProduct(r.Context(), in, img)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func readProductForm(r *http.Request) (models.ProductInput, *models.ProductImage, error) {
	var in models.ProductInput

	r.Body = http.MaxBytesReader(nil, r.Body, maxUpload)
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		return in, nil, badRequest("malformed multipart body")
	}

	raw := []byte(r.FormValue("product"))
	if len(raw) == 0 {
		// FormData.append("product", new Blob([json], {type: "application/json"}))
		// приходит файловой частью.
		f, _, err := r.FormFile("product")
		if err != nil {
			return in, nil, badRequest("product part is required")
		}
		defer f.Close()

		if raw, err = io.ReadAll(f); err != nil {
			return in, nil, badRequest("product part is unreadable")
		}
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, nil, badRequest("product part must be json")
	}

	f, fh, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil, nil
	}
	if err != nil {
		return in, nil, badRequest("image part is unreadable")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return in, nil, badRequest("image part is unreadable")
	}

	return in, &models.ProductImage{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if err := decodeStrict(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}

	p, err := h.API.UpdateProduct(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.API.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
