package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/pribylovaa/events-admin-console/internal/errors"
	logctx "github.com/pribylovaa/events-admin-console/internal/pkg/log"
	"github.com/pribylovaa/events-admin-console/internal/tokenstore"
)

// RequireSession пропускает запрос дальше, только если в хранилище есть
// access-токен. Иначе — 401/unauthenticated и Location на страницу входа,
// без похода в бэкенд.
//
// Ошибка чтения хранилища (например, redis недоступен) не считается
// отсутствием сессии: запрос идёт дальше, а шлюз сам разберётся с токеном.
func RequireSession(store tokenstore.Store, loginPath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			pair, err := store.Get(r.Context())
			switch {
			case errors.Is(err, tokenstore.ErrNotFound), err == nil && pair.AccessToken == "":
				if loginPath != "" {
					w.Header().Set("Location", loginPath)
				}
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			case err != nil:
				logctx.From(r.Context()).Warn("token_store_read_failed", slog.String("err", err.Error()))
			}

			next.ServeHTTP(w, r)
		})
	}
}
