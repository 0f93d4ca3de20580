// Package kvstore provides the key-value storage adapter the application
// persists through: string keys mapping to JSON-serialized values.
package kvstore

import "context"

// Store is the persistence adapter. Values are serialized to and from JSON.
type Store interface {
	// Get reads the value stored at key into dst. It returns false when the
	// key is absent or its stored value cannot be decoded; a decode failure
	// is logged and treated as absent so callers substitute a default.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set overwrites the full value stored at key.
	Set(ctx context.Context, key string, value any) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear removes every key from the store.
	Clear(ctx context.Context) error
}
