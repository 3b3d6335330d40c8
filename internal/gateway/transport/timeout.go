package transport

import (
	"context"
	"io"
	"net/http"
	"time"
)

// WithTimeout навешивает таймаут d на исходящий запрос, если у контекста ещё нет
// дедлайна. Существующий дедлайн не переопределяется.
//
// Контракт:
//  1. d <= 0 — запрос уходит без изменений;
//  2. у ctx уже есть deadline — оставляет как есть;
//  3. иначе — context.WithTimeout(ctx, d); cancel вызывается при закрытии тела
//     ответа (а не при выходе из RoundTrip), иначе чтение тела оборвётся.
func WithTimeout(d time.Duration) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		if d <= 0 {
			return next
		}

		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if _, ok := r.Context().Deadline(); ok {
				return next.RoundTrip(r)
			}

			ctx, cancel := context.WithTimeout(r.Context(), d)
			resp, err := next.RoundTrip(r.WithContext(ctx))
			if err != nil {
				cancel()
				return nil, err
			}

			resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
			return resp, nil
		})
	}
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnClose) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}
