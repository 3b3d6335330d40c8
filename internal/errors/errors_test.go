package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/events-admin-console/internal/api"
	"github.com/pribylovaa/events-admin-console/internal/gateway"
)

func TestToHTTP_Mapping(t *testing.T) {
	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"session_expired", fmt.Errorf("op: %w", fmt.Errorf("%w: %w", gateway.ErrSessionExpired, gateway.ErrRefreshRejected)), http.StatusUnauthorized, "session_expired"},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
		{"invalid_argument", fmt.Errorf("op: %w: reason is required", api.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"backend_code", fmt.Errorf("op: %w", &api.Error{Status: 404, Code: "EV404", Message: "event not found"}), http.StatusNotFound, "ev404"},
		{"backend_no_code", &api.Error{Status: 409}, http.StatusConflict, "conflict"},
		{"backend_weird_status", &api.Error{Status: 302}, http.StatusBadGateway, "bad_gateway"},
		{"canceled", fmt.Errorf("op: %w", context.Canceled), StatusClientClosedRequest, "canceled"},
		{"deadline", &url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded}, http.StatusGatewayTimeout, "deadline_exceeded"},
		{"network", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection refused")}, http.StatusBadGateway, "bad_gateway"},
		{"internal", ErrInternal, http.StatusInternalServerError, "internal"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestToHTTP_NilError_Returns500Internal(t *testing.T) {
	gotStatus, resp := ToHTTP(nil)
	require.Equal(t, http.StatusInternalServerError, gotStatus)
	require.Equal(t, "internal", resp.Error.Code)
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestToHTTP_Messages(t *testing.T) {
	_, resp := ToHTTP(fmt.Errorf("internal/api/RejectEvent: %w", fmt.Errorf("%w: reason is required", api.ErrInvalidArgument)))
	require.Equal(t, "invalid argument: reason is required", resp.Error.Message)

	_, resp = ToHTTP(&api.Error{Status: 404, Code: "EV404", Message: "event not found"})
	require.Equal(t, "event not found", resp.Error.Message)

	_, resp = ToHTTP(&api.Error{Status: 503})
	require.Equal(t, "service unavailable", resp.Error.Message)

	// Детали неизвестной ошибки наружу не уходят.
	_, resp = ToHTTP(errors.New("dial tcp 10.0.0.1:5432: secret topology"))
	require.Equal(t, "internal error", resp.Error.Message)
}

func TestWriteError_SetsRequestIDAndJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("X-Request-Id", "rid-1")

	WriteError(rr, req, &api.Error{Status: 403, Code: "AD2001", Message: "forbidden"})

	require.Equal(t, http.StatusForbidden, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "ad2001", env.Error.Code)
	require.Equal(t, "rid-1", env.Error.RequestID)
}
