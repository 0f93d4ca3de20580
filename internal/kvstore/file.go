package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// FileStore persists all keys as a single JSON document on disk. Every write
// rewrites the whole document; concurrent processes sharing the same file get
// last-writer-wins semantics.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
}

// NewFileStore creates a file-backed store persisting to the given path.
// The file is created on first write.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Get reads the value stored at key into dst.
func (s *FileStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	raw, ok := doc[key]
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

// Set overwrites the value stored at key and rewrites the document.
func (s *FileStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	doc[key] = raw
	return s.save(doc)
}

// Remove deletes the key and rewrites the document.
func (s *FileStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}

	if _, ok := doc[key]; !ok {
		return nil
	}

	delete(doc, key)
	return s.save(doc)
}

// Clear removes every key by truncating the document.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(map[string]json.RawMessage{})
}

// load reads the backing document. A missing file yields an empty document;
// a corrupted document is logged and replaced by an empty one on next save.
func (s *FileStore) load(ctx context.Context) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read store file %s: %w", s.path, err)
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.ErrorContext(ctx, "corrupted store file, starting from empty document",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return map[string]json.RawMessage{}, nil
	}

	return doc, nil
}

func (s *FileStore) save(doc map[string]json.RawMessage) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal store document: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write store file %s: %w", s.path, err)
	}

	return nil
}
