// api — типизированный клиент административного REST API платформы.
// Все вызовы идут через gateway.Client, поэтому прикрепление токена,
// обновление истёкшей пары и повтор запроса здесь прозрачны.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pribylovaa/events-admin-console/internal/gateway"
	"github.com/pribylovaa/events-admin-console/internal/models"
	"github.com/pribylovaa/events-admin-console/internal/tokenstore"
)

// ErrInvalidArgument — локальная проверка аргументов не пройдена, запрос не отправлялся.
var ErrInvalidArgument = errors.New("invalid argument")

// maxErrorBody — сколько тела ошибки читаем для Error.Message.
const maxErrorBody = 4 << 10

// Doer — то, что умеет выполнить вызов бэкенда (*gateway.Client).
type Doer interface {
	Do(ctx context.Context, endpoint string, req gateway.Request) (*http.Response, error)
}

// Error — не-2xx ответ бэкенда.
// Code — errorCode из тела (может быть пустым), Message — message из тела
// или начало текста ответа.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "backend status %d", e.Status)
	if e.Code != "" {
		b.WriteString(": ")
		b.WriteString(e.Code)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	return b.String()
}

// Client — операции консоли поверх шлюза.
type Client struct {
	doer  Doer
	store tokenstore.Store
}

// New собирает клиент. store — то же хранилище, с которым работает шлюз:
// Login записывает в него пару, Logout очищает.
func New(doer Doer, store tokenstore.Store) *Client {
	return &Client{doer: doer, store: store}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// call выполняет вызов и декодирует JSON-ответ в out (nil — тело игнорируется).
func (c *Client) call(ctx context.Context, method, endpoint string, body, out any) error {
	resp, err := c.doer.Do(ctx, endpoint, gateway.Request{
		Method: method,
		Header: http.Header{"Accept": []string{"application/json"}},
		Body:   body,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, endpoint, err)
	}

	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	e := &Error{Status: resp.StatusCode}

	var p models.ErrorPayload
	if err := json.Unmarshal(raw, &p); err == nil {
		e.Code = p.ErrorCode
		e.Message = p.Message
		return e
	}

	e.Message = strings.TrimSpace(string(raw))
	return e
}

// path склеивает сегменты, экранируя идентификаторы.
func path(base string, id string, tail ...string) string {
	p := base + "/" + url.PathEscape(id)
	for _, t := range tail {
		p += "/" + t
	}

	return p
}

func withQuery(endpoint string, q models.ListQuery) string {
	return endpoint + "?" + q.Values().Encode()
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("id is required")
	}

	return nil
}
