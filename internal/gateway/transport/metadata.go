package transport

import "net/http"

// WithMetadata — добавляет в исходящий запрос заголовки:
//   - X-Request-Id (если есть в контексте и ещё не выставлен),
//   - User-Agent (если передан параметром).
//
// Authorization здесь не трогается: его выставляет шлюз, т.к. токен
// меняется между исходным запросом и повтором.
func WithMetadata(userAgent string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			var rid string
			if v := r.Context().Value(CtxRequestID); v != nil {
				rid, _ = v.(string)
			}

			setRID := rid != "" && r.Header.Get(HeaderRequestID) == ""
			if !setRID && userAgent == "" {
				return next.RoundTrip(r)
			}

			r = r.Clone(r.Context())
			if setRID {
				r.Header.Set(HeaderRequestID, rid)
			}
			if userAgent != "" {
				r.Header.Set("User-Agent", userAgent)
			}

			return next.RoundTrip(r)
		})
	}
}
