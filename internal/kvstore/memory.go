package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// MemoryStore is an in-memory Store implementation. It backs tests and
// execution contexts that want state without durability.
type MemoryStore struct {
	logger *slog.Logger

	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	return &MemoryStore{
		logger: logger,
		data:   make(map[string][]byte),
	}
}

// Get reads the value stored at key into dst.
func (s *MemoryStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.ErrorContext(ctx, "unreadable stored value, treating as absent",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false, nil
	}

	return true, nil
}

// Set overwrites the value stored at key.
func (s *MemoryStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}

	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

// Remove deletes the key.
func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}

// Clear removes every key.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.data = make(map[string][]byte)
	s.mu.Unlock()
	return nil
}
