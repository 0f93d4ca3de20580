package repository

import (
	"context"
	"fmt"

	"github.com/DakshSitapara/wishlist/internal/kvstore"
)

// KVSessionRepository stores the logged-in username under a single key.
type KVSessionRepository struct {
	store kvstore.Store
}

// NewKVSessionRepository creates a session repository backed by the given store.
func NewKVSessionRepository(store kvstore.Store) *KVSessionRepository {
	return &KVSessionRepository{store: store}
}

// Current returns the logged-in username, or "" when nobody is logged in.
func (r *KVSessionRepository) Current(ctx context.Context) (string, error) {
	var username string
	if _, err := r.store.Get(ctx, keyLoggedInUser, &username); err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return username, nil
}

// SetCurrent marks the user as logged in.
func (r *KVSessionRepository) SetCurrent(ctx context.Context, username string) error {
	if err := r.store.Set(ctx, keyLoggedInUser, username); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear logs the current user out.
func (r *KVSessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, keyLoggedInUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
