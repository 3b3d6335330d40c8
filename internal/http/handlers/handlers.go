package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pribylovaa/events-admin-console/internal/api"
	apierrors "github.com/pribylovaa/events-admin-console/internal/errors"
	"github.com/pribylovaa/events-admin-console/internal/gateway"
	"github.com/pribylovaa/events-admin-console/internal/models"
)

// Handlers агрегирует зависимости: типизированный клиент бэкенда и путь
// страницы входа для редиректа после потери сессии.
type Handlers struct {
	API       *api.Client
	LoginPath string
}

func New(c *api.Client, loginPath string) *Handlers {
	return &Handlers{API: c, LoginPath: loginPath}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через fail.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(value); err != nil {
		return badRequest("malformed json body")
	}

	return nil
}

// fail пишет ошибку; при потере сессии добавляет Location на страницу входа.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, gateway.ErrSessionExpired) && h.LoginPath != "" {
		w.Header().Set("Location", h.LoginPath)
	}

	apierrors.WriteError(w, r, err)
}

// badRequest — локальная ошибка разбора входа -> 400/invalid_argument.
func badRequest(msg string) error {
	return fmt.Errorf("%w: %s", api.ErrInvalidArgument, msg)
}

// listQuery читает ?page=&size=&status=&search=.
func listQuery(r *http.Request) (models.ListQuery, error) {
	q := r.URL.Query()
	out := models.ListQuery{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}

	var err error
	if v := q.Get("page"); v != "" {
		if out.Page, err = strconv.Atoi(v); err != nil {
			return out, badRequest("page must be an integer")
		}
	}
	if v := q.Get("size"); v != "" {
		if out.Size, err = strconv.Atoi(v); err != nil {
			return out, badRequest("size must be an integer")
		}
	}

	return out, nil
}
