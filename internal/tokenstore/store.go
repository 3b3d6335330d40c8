// tokenstore хранит пару токенов администратора между запросами
// (и, для file/redis, между перезапусками процесса).
//
// Все реализации безопасны для конкурентного использования: шлюз читает
// и перезаписывает пару из разных горутин.
package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks . Store

// Store — хранилище учётных данных (Credential Store).
type Store interface {
	// Get возвращает текущую пару или ErrNotFound, если сессии нет.
	Get(ctx context.Context) (models.TokenPair, error)
	// Set перезаписывает пару целиком.
	Set(ctx context.Context, pair models.TokenPair) error
	// Clear удаляет пару; отсутствие пары ошибкой не является.
	Clear(ctx context.Context) error
	Close() error
}

// ErrNotFound — пара токенов отсутствует.
var ErrNotFound = errors.New("credentials not found")

// Drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config описывает выбор и параметры драйвера.
type Config struct {
	Driver   string
	FilePath string
	Redis    *RedisConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
}
