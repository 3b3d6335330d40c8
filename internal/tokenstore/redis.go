package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

type redisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedis — хранилище в Redis: одна запись JSON под cfg.Key.
// TTL <= 0 — без истечения (пару всё равно вычистит неуспешный refresh).
func NewRedis(cfg *RedisConfig) (Store, error) {
	if cfg == nil {
		return nil, errors.New("redis configuration missing")
	}
	if cfg.Addr == "" {
		return nil, errors.New("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = "admin-console:session"
	}

	return &redisStore{client: client, key: key, ttl: cfg.TTL}, nil
}

func (s *redisStore) Get(ctx context.Context) (models.TokenPair, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.TokenPair{}, ErrNotFound
		}
		return models.TokenPair{}, fmt.Errorf("redis get: %w", err)
	}

	var pair models.TokenPair
	if err := json.Unmarshal(raw, &pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("parse token pair: %w", err)
	}

	return pair, nil
}

func (s *redisStore) Set(ctx context.Context, pair models.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}

	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}

	if err := s.client.Set(ctx, s.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

func (s *redisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}

	return nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
