package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pribylovaa/events-admin-console/internal/models"
	logctx "github.com/pribylovaa/events-admin-console/internal/pkg/log"
	"github.com/pribylovaa/events-admin-console/internal/pkg/redact"
	"github.com/pribylovaa/events-admin-console/internal/tokenstore"
)

const (
	loginPath  = "/admin/auth/login"
	logoutPath = "/admin/auth/logout"
)

// Session — состояние сессии консоли без самих токенов.
type Session struct {
	Authenticated bool       `json:"authenticated"`
	Subject       string     `json:"subject,omitempty"`
	IssuedAt      *time.Time `json:"issuedAt,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}

// Login обменивает логин/пароль на пару токенов и сохраняет её в хранилище.
func (c *Client) Login(ctx context.Context, login, password string) (Session, error) {
	const op = "internal/api/Login"

	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return Session{}, invalid("login and password are required")
	}

	var pair models.TokenPair
	err := c.call(ctx, http.MethodPost, loginPath, models.LoginRequest{Login: login, Password: password}, &pair)
	if err != nil {
		logctx.From(ctx).Warn("admin_login_failed",
			slog.String("login", redact.Login(login)),
			slog.String("err", err.Error()),
		)
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if pair.AccessToken == "" {
		return Session{}, fmt.Errorf("%s: empty access token in login response", op)
	}

	if err := c.store.Set(ctx, pair); err != nil {
		return Session{}, fmt.Errorf("%s: store credentials: %w", op, err)
	}

	logctx.From(ctx).Info("admin_logged_in",
		slog.String("login", redact.Login(login)),
		slog.String("access_token", redact.Token(pair.AccessToken)),
	)

	return sessionOf(pair), nil
}

// Logout отзывает refresh-токен на бэкенде (best effort) и всегда очищает хранилище.
func (c *Client) Logout(ctx context.Context) error {
	const op = "internal/api/Logout"

	pair, err := c.store.Get(ctx)
	switch {
	case err == nil && pair.RefreshToken != "":
		if err := c.call(ctx, http.MethodPost, logoutPath, models.RefreshRequest{RefreshToken: pair.RefreshToken}, nil); err != nil {
			logctx.From(ctx).Warn("admin_logout_remote_failed", slog.String("err", err.Error()))
		}
	case err != nil && !errors.Is(err, tokenstore.ErrNotFound):
		logctx.From(ctx).Warn("token_store_read_failed", slog.String("err", err.Error()))
	}

	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logctx.From(ctx).Info("admin_logged_out")

	return nil
}

// Session описывает текущую сессию по содержимому хранилища (без сетевых вызовов).
func (c *Client) Session(ctx context.Context) (Session, error) {
	pair, err := c.store.Get(ctx)
	if errors.Is(err, tokenstore.ErrNotFound) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("internal/api/Session: %w", err)
	}

	return sessionOf(pair), nil
}

func sessionOf(pair models.TokenPair) Session {
	s := Session{Authenticated: pair.AccessToken != ""}

	claims, err := pair.Claims()
	if err != nil {
		return s
	}

	s.Subject = claims.Subject
	if !claims.IssuedAt.IsZero() {
		iat := claims.IssuedAt
		s.IssuedAt = &iat
	}
	if !claims.ExpiresAt.IsZero() {
		exp := claims.ExpiresAt
		s.ExpiresAt = &exp
	}

	return s
}
