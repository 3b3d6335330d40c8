// session разносит событие «сессия администратора инвалидирована» подписчикам.
//
// Шлюз не знает ни про роутер, ни про браузер: при неуспешном обновлении токенов
// он публикует SessionEvent, а хост-приложение (BFF, CLI) решает, как
// перенаправить оператора на вход.
package session

import (
	"context"
	"log/slog"

	evbus "github.com/asaskevich/EventBus"

	"github.com/pribylovaa/events-admin-console/internal/models"
	logctx "github.com/pribylovaa/events-admin-console/internal/pkg/log"
)

// TopicInvalidated — топик события в шине.
const TopicInvalidated = "session:invalidated"

// Bus — тонкая обёртка над EventBus с типизированным API.
type Bus struct {
	bus evbus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: evbus.New()}
}

// Subscribe регистрирует обработчик. Обработчики вызываются синхронно,
// в горутине, которая инвалидировала сессию.
func (b *Bus) Subscribe(fn func(models.SessionEvent)) error {
	return b.bus.Subscribe(TopicInvalidated, fn)
}

// SessionInvalidated публикует событие; без подписчиков — no-op.
func (b *Bus) SessionInvalidated(ctx context.Context, ev models.SessionEvent) {
	if !b.bus.HasCallback(TopicInvalidated) {
		logctx.From(ctx).Warn("session_invalidated_no_subscribers", slog.String("reason", ev.Reason))
		return
	}

	b.bus.Publish(TopicInvalidated, ev)
}
