package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/events-admin-console/internal/models"
	"github.com/pribylovaa/events-admin-console/internal/tokenstore"
)

var (
	oldPair = models.TokenPair{AccessToken: "old", RefreshToken: "old-r", TokenType: "Bearer", ExpiresIn: 3600}
	newPair = models.TokenPair{AccessToken: "new", RefreshToken: "new-r", TokenType: "Bearer", ExpiresIn: 3600}
)

// hit — один запрос, дошедший до фейкового бэкенда.
type hit struct {
	Path        string
	Method      string
	Auth        string
	ContentType string
	Body        string
}

// backend — фейковый REST-бэкенд: ресурсы отвечают AD1009 на токен "old",
// refresh-эндпоинт отдаёт newPair (поведение настраивается полями).
type backend struct {
	t   *testing.T
	srv *httptest.Server

	mu   sync.Mutex
	hits []hit

	refreshCalls atomic.Int32
	refreshBody  atomic.Value // string

	// refreshGate, если не nil, блокирует ответ refresh до закрытия канала.
	refreshGate chan struct{}
	// refreshHandler переопределяет ответ refresh.
	refreshHandler http.HandlerFunc
	// resourceHandler переопределяет ответ ресурсов.
	resourceHandler func(w http.ResponseWriter, r *http.Request, h hit)
	// onExpired вызывается при каждом ответе AD1009.
	onExpired func()
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{t: t}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == DefaultRefreshPath {
		b.refreshCalls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		b.refreshBody.Store(string(raw))

		if b.refreshGate != nil {
			<-b.refreshGate
		}
		if b.refreshHandler != nil {
			b.refreshHandler(w, r)
			return
		}
		writeJSON(w, http.StatusOK, newPair)
		return
	}

	raw, _ := io.ReadAll(r.Body)
	h := hit{
		Path:        r.URL.RequestURI(),
		Method:      r.Method,
		Auth:        r.Header.Get("Authorization"),
		ContentType: r.Header.Get("Content-Type"),
		Body:        string(raw),
	}
	b.mu.Lock()
	b.hits = append(b.hits, h)
	b.mu.Unlock()

	if b.resourceHandler != nil {
		b.resourceHandler(w, r, h)
		return
	}

	if h.Auth == "Bearer new" {
		writeJSON(w, http.StatusOK, map[string]string{"path": r.URL.Path})
		return
	}

	b.expired(w)
}

func (b *backend) expired(w http.ResponseWriter) {
	if b.onExpired != nil {
		b.onExpired()
	}
	writeJSON(w, http.StatusUnauthorized, models.ErrorPayload{ErrorCode: DefaultExpiredCode, Message: "access token expired"})
}

func (b *backend) snapshot() []hit {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]hit(nil), b.hits...)
}

func (b *backend) hitsFor(path, auth string) int {
	n := 0
	for _, h := range b.snapshot() {
		if h.Path == path && h.Auth == auth {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// recListener запоминает события инвалидированной сессии.
type recListener struct {
	mu     sync.Mutex
	events []models.SessionEvent
}

func (l *recListener) SessionInvalidated(_ context.Context, ev models.SessionEvent) {
	l.mu.Lock()
	l.events = append(l.events, ev)
	l.mu.Unlock()
}

func (l *recListener) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

type fixture struct {
	client   *Client
	backend  *backend
	store    tokenstore.Store
	listener *recListener
	metrics  *Metrics
}

func newFixture(t *testing.T, initial *models.TokenPair) *fixture {
	t.Helper()
	return newFixtureWithLogger(t, initial, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newFixtureWithLogger(t *testing.T, initial *models.TokenPair, logger *slog.Logger) *fixture {
	t.Helper()

	b := newBackend(t)
	st := tokenstore.NewMemory()
	if initial != nil {
		require.NoError(t, st.Set(context.Background(), *initial))
	}

	l := &recListener{}
	m := NewMetrics(prometheus.NewRegistry())

	c, err := New(Options{
		BaseURL:  b.srv.URL,
		Store:    st,
		Listener: l,
		Metrics:  m,
		Logger:   logger,
	})
	require.NoError(t, err)

	return &fixture{client: c, backend: b, store: st, listener: l, metrics: m}
}

// logBuffer — потокобезопасный приёмник JSON-логов.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func jsonLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// logRecords разбирает JSON-логи построчно.
func logRecords(t *testing.T, raw string) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func findRecord(recs []map[string]any, msg string) map[string]any {
	for _, r := range recs {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}
