package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	logctx "github.com/pribylovaa/events-admin-console/internal/pkg/log"
)

// WithLogging — логирование исходящих запросов к бэкенду.
// Поведение:
//   - берёт X-Request-Id из заголовка запроса (или генерирует UUID и добавляет);
//   - прокладывает обогащённый логгер (request_id/method/path) в контекст запроса;
//   - пишет одну финальную запись уровня Info: msg="http_client", status, dur
//     (при сетевой ошибке — уровень Warn и err).
//
// Безопасность: не логирует тела и заголовок Authorization.
func WithLogging(base *slog.Logger) Middleware {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			start := time.Now()

			rid := r.Header.Get(HeaderRequestID)
			if rid == "" {
				rid = uuid.NewString()
				r = r.Clone(r.Context())
				r.Header.Set(HeaderRequestID, rid)
			}

			l := base.With(
				slog.String("request_id", rid),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			r = r.WithContext(logctx.Into(r.Context(), l))

			resp, err := next.RoundTrip(r)
			if err != nil {
				l.Warn("http_client",
					slog.String("err", err.Error()),
					slog.Duration("dur", time.Since(start)),
				)
				return nil, err
			}

			l.Info("http_client",
				slog.Int("status", resp.StatusCode),
				slog.Duration("dur", time.Since(start)),
			)

			return resp, nil
		})
	}
}
