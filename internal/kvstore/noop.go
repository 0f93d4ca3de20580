package kvstore

import "context"

// NoopStore is used when the execution context provides no persistent store.
// Every read reports absent and every write succeeds without storing
// anything, so the rest of the system keeps running on defaults.
type NoopStore struct{}

// NewNoopStore creates a store that never persists anything.
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

// Get always reports absent.
func (*NoopStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	return false, nil
}

// Set discards the value.
func (*NoopStore) Set(ctx context.Context, key string, value any) error {
	return nil
}

// Remove does nothing.
func (*NoopStore) Remove(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (*NoopStore) Clear(ctx context.Context) error {
	return nil
}
