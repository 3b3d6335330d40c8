package middleware

import (
	"context"
	"mime"
	"net/http"
	"time"
)

// Timeout навешивает deadline на входящий запрос, если его ещё нет.
// Обычные вызовы получают d, multipart-загрузки (картинка товара) — upload.
// Значение <=0 снимает дедлайн со своего класса запросов.
// Дедлайн доходит и до вызова бэкенда, но не до refresh: тот живёт со своим RefreshTimeout.
func Timeout(d, upload time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 && upload <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit := d
			if isUpload(r) {
				limit = upload
			}

			if limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := r.Context().Deadline(); ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isUpload(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}
