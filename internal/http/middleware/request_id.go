package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pribylovaa/events-admin-console/internal/gateway/transport"
)

// RequestID обеспечивает наличие X-Request-Id:
//  1. берёт заголовок входящего запроса, если он есть;
//  2. иначе генерирует UUID;
//  3. кладёт id в заголовки ответа и запроса и в контекст по ключу
//     transport.CtxRequestID — оттуда его подхватывает исходящий
//     вызов к бэкенду, и цепочка логов склеивается по одному id.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(transport.HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
				r.Header.Set(transport.HeaderRequestID, id)
			}
			w.Header().Set(transport.HeaderRequestID, id)

			ctx := context.WithValue(r.Context(), transport.CtxRequestID, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
