package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	apierrors "github.com/pribylovaa/events-admin-console/internal/errors"
	logctx "github.com/pribylovaa/events-admin-console/internal/pkg/log"
)

// Recover перехватывает panic и отвечает 500/internal. Детали паники
// остаются в логе.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					// Штатный способ оборвать ответ; его обрабатывает net/http.
					panic(rec)
				}

				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "panic",
					slog.String("path", r.URL.Path),
					slog.Any("reason", rec),
					slog.String("stack", string(debug.Stack())),
				)
				apierrors.WriteError(w, r, apierrors.ErrInternal)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
