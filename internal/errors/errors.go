// errors стандартизирует ответы об ошибках HTTP-слоя консоли.
// На вход принимает ошибку шлюза/типизированного клиента, на выход даёт:
//   - корректный HTTP-статус;
//   - краткий стабильный code и безопасное message.
//
// Ответы бэкенда (*api.Error) пробрасываются со своим статусом, а их
// errorCode (например, "EV404") становится code в нижнем регистре.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/pribylovaa/events-admin-console/internal/api"
	"github.com/pribylovaa/events-admin-console/internal/gateway"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

var (
	// ErrInternal — программная ошибка консоли (например, паника в хендлере).
	ErrInternal = errors.New("internal error")

	// ErrUnauthenticated — в консоли нет сессии, нужно войти.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

func response(code, msg string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

// ToHTTP конвертирует ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - nil — программная ошибка вызова: 500/internal, а не "200 OK" с телом ошибки;
//   - gateway.ErrSessionExpired — 401/session_expired (фронт уводит на логин);
//   - api.ErrInvalidArgument — 400/invalid_argument с текстом проверки;
//   - *api.Error — статус бэкенда, code = errorCode в нижнем регистре;
//   - context.Canceled — 499, context.DeadlineExceeded — 504;
//   - сетевая ошибка до бэкенда (*url.Error) — 502/bad_gateway;
//   - прочее — 500/internal без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, response("internal", "internal error")
	}

	var apiErr *api.Error
	var urlErr *url.Error

	switch {
	case errors.Is(err, gateway.ErrSessionExpired):
		return http.StatusUnauthorized, response("session_expired", "session expired, sign in again")
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, response("unauthenticated", "sign in required")
	case errors.Is(err, api.ErrInvalidArgument):
		return http.StatusBadRequest, response("invalid_argument", invalidMessage(err))
	case errors.As(err, &apiErr):
		return fromBackend(apiErr)
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, response("canceled", "canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, response("deadline_exceeded", "deadline exceeded")
	case errors.As(err, &urlErr):
		return http.StatusBadGateway, response("bad_gateway", "backend unavailable")
	default:
		return http.StatusInternalServerError, response("internal", "internal error")
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func fromBackend(e *api.Error) (int, ErrorResponse) {
	status := e.Status
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}

	code := strings.ToLower(e.Code)
	if code == "" {
		code = codeFromStatus(status)
	}

	msg := e.Message
	if msg == "" {
		msg = strings.ToLower(http.StatusText(status))
	}

	return status, response(code, msg)
}

// codeFromStatus: 404 -> "not_found", 429 -> "too_many_requests".
func codeFromStatus(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "backend_error"
	}

	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}

// invalidMessage отрезает op-префиксы: "internal/api/RejectEvent: invalid argument: reason is required"
// -> "invalid argument: reason is required".
func invalidMessage(err error) string {
	s := err.Error()
	if i := strings.Index(s, api.ErrInvalidArgument.Error()); i >= 0 {
		return s[i:]
	}

	return api.ErrInvalidArgument.Error()
}
