package tokenstore

import (
	"context"
	"sync"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

type memoryStore struct {
	mu   sync.RWMutex
	pair *models.TokenPair
}

// NewMemory — хранилище в памяти процесса.
func NewMemory() Store {
	return &memoryStore{}
}

func (s *memoryStore) Get(_ context.Context) (models.TokenPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.pair == nil {
		return models.TokenPair{}, ErrNotFound
	}

	return *s.pair, nil
}

func (s *memoryStore) Set(_ context.Context, pair models.TokenPair) error {
	s.mu.Lock()
	s.pair = &pair
	s.mu.Unlock()

	return nil
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.pair = nil
	s.mu.Unlock()

	return nil
}

func (s *memoryStore) Close() error { return nil }
