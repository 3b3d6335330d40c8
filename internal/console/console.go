// console собирает общие для бинарей зависимости: хранилище токенов,
// шину событий сессии, шлюз и типизированный клиент.
package console

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pribylovaa/events-admin-console/internal/api"
	"github.com/pribylovaa/events-admin-console/internal/config"
	"github.com/pribylovaa/events-admin-console/internal/gateway"
	"github.com/pribylovaa/events-admin-console/internal/models"
	"github.com/pribylovaa/events-admin-console/internal/session"
	"github.com/pribylovaa/events-admin-console/internal/tokenstore"
)

type Console struct {
	Store   tokenstore.Store
	Bus     *session.Bus
	Gateway *gateway.Client
	API     *api.Client
}

// Options — то, что отличается у BFF и CLI.
type Options struct {
	// Registerer для метрик шлюза; nil — метрики не собираются.
	Registerer prometheus.Registerer
	// StoreDriver переопределяет token_store.driver из конфига (CLI: file).
	StoreDriver string
}

// New собирает консоль по конфигурации. Событие потери сессии логируется;
// прочие подписчики добавляются через Bus.Subscribe.
func New(cfg config.Config, log *slog.Logger, opts Options) (*Console, error) {
	const op = "internal/console/New"

	if log == nil {
		log = slog.Default()
	}

	storeCfg := cfg.TokenStore.StoreConfig()
	if opts.StoreDriver != "" {
		storeCfg.Driver = opts.StoreDriver
	}

	store, err := tokenstore.New(storeCfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bus := session.NewBus()
	if err := bus.Subscribe(func(ev models.SessionEvent) {
		log.Warn("admin_session_lost",
			slog.String("reason", ev.Reason),
			slog.String("login_path", ev.LoginPath),
		)
	}); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%s: subscribe: %w", op, err)
	}

	var metrics *gateway.Metrics
	if opts.Registerer != nil {
		metrics = gateway.NewMetrics(opts.Registerer)
	}

	gw, err := gateway.New(gateway.Options{
		BaseURL:        cfg.Backend.BaseURL,
		RefreshPath:    cfg.Backend.RefreshPath,
		ExpiredCode:    cfg.Backend.ExpiredCode,
		LoginPath:      cfg.Backend.LoginPath,
		RefreshTimeout: cfg.Backend.RefreshTimeout,
		RequestTimeout: cfg.Backend.RequestTimeout,
		UserAgent:      cfg.Backend.UserAgent,
		Store:          store,
		Listener:       bus,
		Metrics:        metrics,
		Logger:         log,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Console{
		Store:   store,
		Bus:     bus,
		Gateway: gw,
		API:     api.New(gw, store),
	}, nil
}

// Close освобождает хранилище (соединение с redis и т.п.).
func (c *Console) Close() error {
	return c.Store.Close()
}
