// gateway — единая точка исходящих вызовов консоли к REST-бэкенду платформы.
//
// Client.Do прикрепляет bearer-токен из хранилища, распознаёт ответ
// «access-токен истёк» (код ошибки ExpiredCode), обновляет пару через
// POST {base}/admin/auth/refresh и повторяет исходный запрос ровно один раз.
//
// Основные аспекты:
//   - конкурентные вызовы, упёршиеся в истёкший токен, разделяют один
//     refresh (singleflight); после завершения слот освобождается;
//   - неуспешный refresh очищает хранилище и публикует SessionEvent
//     один раз на всех ожидающих;
//   - сетевые ошибки исходного запроса и ответы с прочими кодами
//     возвращаются вызывающему как есть;
//   - таймаутов шлюз не навязывает: дедлайн задаёт ctx вызывающего.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pribylovaa/events-admin-console/internal/gateway/transport"
	"github.com/pribylovaa/events-admin-console/internal/models"
	logctx "github.com/pribylovaa/events-admin-console/internal/pkg/log"
	"github.com/pribylovaa/events-admin-console/internal/tokenstore"
)

const (
	DefaultRefreshPath    = "/admin/auth/refresh"
	DefaultExpiredCode    = "AD1009"
	DefaultLoginPath      = "/login"
	DefaultRefreshTimeout = 10 * time.Second

	// maxProbeBytes — сколько тела ошибки читается для поиска errorCode.
	maxProbeBytes = 64 << 10
)

// SessionListener получает сигнал о невосстановимой потере сессии.
type SessionListener interface {
	SessionInvalidated(ctx context.Context, ev models.SessionEvent)
}

// Options — параметры сборки Client.
type Options struct {
	BaseURL        string // обязателен, абсолютный URL
	RefreshPath    string
	ExpiredCode    string
	LoginPath      string
	RefreshTimeout time.Duration

	// RequestTimeout и UserAgent используются, только если HTTPClient == nil.
	RequestTimeout time.Duration
	UserAgent      string
	HTTPClient     *http.Client

	Store    tokenstore.Store // обязателен
	Listener SessionListener
	Metrics  *Metrics
	// Logger — логгер шлюза, если у ctx вызова своего нет (nil — slog.Default()).
	Logger *slog.Logger
}

// Client — Authenticated Request Gateway. Безопасен для конкурентного использования.
type Client struct {
	base           string
	refreshPath    string
	expiredCode    string
	loginPath      string
	refreshTimeout time.Duration

	http     *http.Client
	store    tokenstore.Store
	listener SessionListener
	metrics  *Metrics
	log      *slog.Logger

	// refreshes — единственный слот «refresh в полёте».
	refreshes singleflight.Group
}

func New(opts Options) (*Client, error) {
	const op = "internal/gateway/New"

	if opts.Store == nil {
		return nil, fmt.Errorf("%s: token store is required", op)
	}

	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: base url %q is not absolute", op, opts.BaseURL)
	}

	c := &Client{
		base:           strings.TrimRight(opts.BaseURL, "/"),
		refreshPath:    withDefault(opts.RefreshPath, DefaultRefreshPath),
		expiredCode:    withDefault(opts.ExpiredCode, DefaultExpiredCode),
		loginPath:      withDefault(opts.LoginPath, DefaultLoginPath),
		refreshTimeout: opts.RefreshTimeout,
		http:           opts.HTTPClient,
		store:          opts.Store,
		listener:       opts.Listener,
		metrics:        opts.Metrics,
		log:            opts.Logger,
	}
	if c.refreshTimeout <= 0 {
		c.refreshTimeout = DefaultRefreshTimeout
	}
	if c.log == nil {
		c.log = slog.Default()
	}

	if c.http == nil {
		// Цепочка исходящих мидлваров: metadata -> timeout -> logging.
		c.http = &http.Client{
			Transport: transport.Chain(http.DefaultTransport,
				transport.WithMetadata(opts.UserAgent),
				transport.WithTimeout(opts.RequestTimeout),
				transport.WithLogging(c.log),
			),
		}
	}

	return c, nil
}

// LoginPath — куда перенаправлять оператора после потери сессии.
func (c *Client) LoginPath() string { return c.loginPath }

// Store — хранилище, с которым работает шлюз (логин/логаут пишут туда же).
func (c *Client) Store() tokenstore.Store { return c.store }

// Do выполняет один логический вызов endpoint (путь относительно base URL,
// может содержать query) и возвращает ответ исходного запроса либо его
// единственного повтора после refresh.
//
// Ошибки:
//   - сетевые ошибки отправки возвращаются без обёртки;
//   - ErrSessionExpired (через errors.Is) — refresh не удался, сессия снесена;
//   - ctx.Err() — вызывающий перестал ждать refresh.
//
// Тело ответа всегда должен закрыть вызывающий.
func (c *Client) Do(ctx context.Context, endpoint string, req Request) (*http.Response, error) {
	const op = "internal/gateway/Do"

	payload, contentType, err := req.encode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Логгер вызывающего (или шлюза) с endpoint: его же увидят refresh и teardown.
	ctx = logctx.With(logctx.Into(ctx, logctx.FromOr(ctx, c.log)), slog.String("endpoint", endpoint))

	sent := c.accessToken(ctx)

	resp, err := c.send(ctx, endpoint, req, payload, contentType, sent)
	if err != nil {
		return nil, err
	}

	if isSuccess(resp.StatusCode) || probeErrorCode(resp) != c.expiredCode {
		return resp, nil
	}

	logctx.From(ctx).Debug("access_token_expired")
	drainClose(resp)

	pair, err := c.refresh(ctx, sent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.metrics.replayed()

	return c.send(ctx, endpoint, req, payload, contentType, pair.AccessToken)
}

// accessToken — текущий access-токен или "" (отсутствие сессии — не ошибка).
func (c *Client) accessToken(ctx context.Context) string {
	pair, err := c.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, tokenstore.ErrNotFound) {
			logctx.From(ctx).Warn("token_store_read_failed", slog.String("err", err.Error()))
		}
		return ""
	}

	return pair.AccessToken
}

func (c *Client) send(ctx context.Context, endpoint string, req Request, payload []byte, contentType, token string) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	hr, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), body)
	if err != nil {
		return nil, err
	}

	if req.Header != nil {
		hr.Header = req.Header.Clone()
	}
	if payload != nil && hr.Header.Get("Content-Type") == "" {
		hr.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		hr.Header.Set("Authorization", "Bearer "+token)
	}

	return c.http.Do(hr)
}

func (c *Client) url(endpoint string) string {
	if endpoint == "" {
		return c.base
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	return c.base + endpoint
}

// probeErrorCode читает начало тела ошибки и ищет errorCode. Любая ошибка
// чтения/разбора означает «кода нет». Тело восстанавливается для вызывающего.
func probeErrorCode(resp *http.Response) string {
	if resp.Body == nil || resp.Body == http.NoBody {
		return ""
	}

	head, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBytes))
	resp.Body = &replayBody{
		Reader: io.MultiReader(bytes.NewReader(head), resp.Body),
		Closer: resp.Body,
	}
	if err != nil {
		return ""
	}

	var p models.ErrorPayload
	if err := json.Unmarshal(head, &p); err != nil {
		return ""
	}

	return p.ErrorCode
}

type replayBody struct {
	io.Reader
	io.Closer
}

func drainClose(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxProbeBytes))
	_ = resp.Body.Close()
}

func isSuccess(code int) bool { return code >= 200 && code < 300 }

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
