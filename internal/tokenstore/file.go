package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

// fileStore держит пару в JSON-файле с правами 0600. Запись идёт через
// временный файл и rename, чтобы параллельный читатель не увидел половину JSON.
type fileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFile — файловое хранилище; каталог создаётся при первой записи.
func NewFile(path string) (Store, error) {
	if path == "" {
		return nil, errors.New("token store file path required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve token store path: %w", err)
	}

	return &fileStore{path: abs}, nil
}

func (s *fileStore) Get(_ context.Context) (models.TokenPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.TokenPair{}, ErrNotFound
		}
		return models.TokenPair{}, fmt.Errorf("read token store: %w", err)
	}

	if len(data) == 0 {
		return models.TokenPair{}, ErrNotFound
	}

	var pair models.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return models.TokenPair{}, fmt.Errorf("parse token store: %w", err)
	}

	return pair, nil
}

func (s *fileStore) Set(_ context.Context, pair models.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token store dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp token file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp token file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace token store: %w", err)
	}

	return nil
}

func (s *fileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token store: %w", err)
	}

	return nil
}

func (s *fileStore) Close() error { return nil }
