package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Тесты меняют slog.Default(), поэтому НЕ используют t.Parallel().

func newSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFrom_ReturnsDefault_WhenNoLoggerInContext(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	def := newSilent()
	slog.SetDefault(def)

	require.Equal(t, def, From(context.Background()))
}

func TestIntoAndFrom_RoundTrip(t *testing.T) {
	l := newSilent()
	ctx := Into(context.Background(), l)

	require.Equal(t, l, From(ctx))
}

func TestFrom_ReturnsDefault_WhenStoredValueIsWrongTypeOrNil(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	def := newSilent()
	slog.SetDefault(def)

	ctxWrong := context.WithValue(context.Background(), ctxKey{}, "not-a-logger")
	require.Equal(t, def, From(ctxWrong))

	var nilLogger *slog.Logger
	ctxNil := context.WithValue(context.Background(), ctxKey{}, nilLogger)
	require.Equal(t, def, From(ctxNil))
}

func TestFromOr_PrefersContextThenFallback(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })
	def := newSilent()
	slog.SetDefault(def)

	own := newSilent()
	fallback := newSilent()

	require.Equal(t, own, FromOr(Into(context.Background(), own), fallback))
	require.Equal(t, fallback, FromOr(context.Background(), fallback))
	require.Equal(t, def, FromOr(context.Background(), nil))
}

func TestWith_AddsAttrsWithoutTouchingParent(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	parent := Into(context.Background(), base)
	child := With(parent, "endpoint", "/admin/events")

	From(child).Info("inner_call")
	require.Contains(t, buf.String(), "endpoint=/admin/events")

	buf.Reset()
	From(parent).Info("inner_call")
	require.NotContains(t, buf.String(), "endpoint")
}

func TestWith_NoArgs_ReturnsSameContext(t *testing.T) {
	ctx := Into(context.Background(), newSilent())
	require.Equal(t, ctx, With(ctx))
}

func TestInto_PreservesCancellationAndDeadline(t *testing.T) {
	parent, cancel := context.WithTimeout(context.Background(), 40*time.Millisecond)
	defer cancel()

	child := Into(parent, newSilent())

	cdl, ok := child.Deadline()
	require.True(t, ok)
	pdl, _ := parent.Deadline()
	require.WithinDuration(t, pdl, cdl, time.Millisecond)

	select {
	case <-child.Done():
		require.ErrorIs(t, child.Err(), context.DeadlineExceeded)
	case <-time.After(200 * time.Millisecond):
		t.Fatal("ожидали дедлайн у дочернего контекста")
	}
}
