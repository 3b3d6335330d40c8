// transport предоставляет набор http.RoundTripper-мидлваров для исходящих
// вызовов консоли к бэкенду: метаданные запроса, таймаут, логирование.
package transport

import "net/http"

type CtxKey string

// CtxRequestID — ключ контекста с X-Request-Id входящего запроса;
// его кладёт HTTP-мидлвар RequestID, читает WithMetadata.
const CtxRequestID CtxKey = "request_id"

const HeaderRequestID = "X-Request-Id"

// Middleware оборачивает RoundTripper.
type Middleware func(http.RoundTripper) http.RoundTripper

// RoundTripperFunc — адаптер функции к http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain применяет мидлвары к base так, что первый в списке выполняется первым.
// base == nil — http.DefaultTransport.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}
