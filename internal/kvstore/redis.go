package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed Store implementation, the alternative
// persistent backend for deployments that already run Redis.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisStore creates a Redis-backed store using the given client.
func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

// Get reads the value stored at key into dst.
func (s *RedisStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis get %q: %w", key, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.ErrorContext(ctx, "unreadable stored value, treating as absent",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false, nil
	}

	return true, nil
}

// Set overwrites the value stored at key. Entries do not expire.
func (s *RedisStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}

	return nil
}

// Remove deletes the key.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

// Clear removes every key in the selected database.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("redis flushdb: %w", err)
	}
	return nil
}
