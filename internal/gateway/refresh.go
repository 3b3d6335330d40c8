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
	"time"

	"github.com/pribylovaa/events-admin-console/internal/models"
	logctx "github.com/pribylovaa/events-admin-console/internal/pkg/log"
	"github.com/pribylovaa/events-admin-console/internal/tokenstore"
)

const refreshKey = "refresh"

// refresh возвращает свежую пару для вызова, отправленного с токеном sent.
//
// Все вызовы, пришедшие, пока refresh в полёте, ждут тот же результат.
// Лидер выполняет refresh в контексте без отмены (но с RefreshTimeout):
// уход лидера не должен ронять refresh для остальных. Ожидающий, чей ctx
// отменён, перестаёт ждать и получает ctx.Err().
func (c *Client) refresh(ctx context.Context, sent string) (models.TokenPair, error) {
	ch := c.refreshes.DoChan(refreshKey, func() (any, error) {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
		defer cancel()

		return c.refreshOnce(rctx, sent)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return models.TokenPair{}, res.Err
		}
		return res.Val.(models.TokenPair), nil
	case <-ctx.Done():
		return models.TokenPair{}, ctx.Err()
	}
}

// refreshOnce — тело единственного refresh. Перед походом в сеть сверяет
// хранилище с токеном, с которым ушёл запрос: вызов, опоздавший к уже
// завершившемуся refresh, не должен запускать второй.
func (c *Client) refreshOnce(ctx context.Context, sent string) (models.TokenPair, error) {
	l := logctx.From(ctx)

	cur, err := c.store.Get(ctx)
	switch {
	case err == nil && cur.AccessToken != "" && cur.AccessToken != sent:
		// Пару уже обновил соседний вызов.
		l.Debug("refresh_skipped_already_rotated")
		return cur, nil
	case errors.Is(err, tokenstore.ErrNotFound) && sent != "":
		// Соседний refresh уже провалился и снёс сессию; событие повторно не шлём.
		return models.TokenPair{}, ErrSessionExpired
	case err != nil && !errors.Is(err, tokenstore.ErrNotFound):
		l.Warn("token_store_read_failed", slog.String("err", err.Error()))
	}

	if cur.RefreshToken == "" {
		return c.teardown(ctx, ErrNoRefreshToken)
	}

	pair, err := c.callRefresh(ctx, cur.RefreshToken)
	if err != nil {
		return c.teardown(ctx, err)
	}

	if err := c.store.Set(ctx, pair); err != nil {
		return c.teardown(ctx, fmt.Errorf("persist refreshed credentials: %w", err))
	}

	c.metrics.refreshed(true)
	l.Info("credentials_refreshed", slog.Int64("expires_in", pair.ExpiresIn))

	return pair, nil
}

// callRefresh — POST {base}{refreshPath} {"refreshToken": ...}.
func (c *Client) callRefresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	body, err := json.Marshal(models.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return models.TokenPair{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(c.refreshPath), bytes.NewReader(body))
	if err != nil {
		return models.TokenPair{}, err
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	resp, err := c.http.Do(req)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh request: %w", err)
	}
	defer drainClose(resp)

	if !isSuccess(resp.StatusCode) {
		return models.TokenPair{}, fmt.Errorf("%w: status %d", ErrRefreshRejected, resp.StatusCode)
	}

	var pair models.TokenPair
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProbeBytes)).Decode(&pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %v", ErrMalformedRefresh, err)
	}
	if pair.AccessToken == "" {
		return models.TokenPair{}, fmt.Errorf("%w: empty access token", ErrMalformedRefresh)
	}
	if pair.RefreshToken == "" {
		// Бэкенд не ротировал refresh-токен — продолжаем жить со старым.
		pair.RefreshToken = refreshToken
	}

	return pair, nil
}

// teardown — невосстановимая потеря сессии: очистка хранилища и событие
// для хост-приложения. Вызывается только из refreshOnce, т.е. один раз
// на всех, кто ждал этот refresh.
func (c *Client) teardown(ctx context.Context, cause error) (models.TokenPair, error) {
	l := logctx.From(ctx)

	if err := c.store.Clear(ctx); err != nil {
		l.Error("token_store_clear_failed", slog.String("err", err.Error()))
	}

	c.metrics.refreshed(false)
	c.metrics.invalidated()
	l.Warn("session_invalidated", slog.String("reason", cause.Error()))

	if c.listener != nil {
		c.listener.SessionInvalidated(ctx, models.SessionEvent{
			Reason:    cause.Error(),
			LoginPath: c.loginPath,
			At:        time.Now().UTC(),
		})
	}

	return models.TokenPair{}, fmt.Errorf("%w: %w", ErrSessionExpired, cause)
}
