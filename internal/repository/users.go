package repository

import (
	"context"
	"fmt"

	"github.com/DakshSitapara/wishlist/internal/domain"
	"github.com/DakshSitapara/wishlist/internal/kvstore"
	apperrors "github.com/DakshSitapara/wishlist/pkg/errors"
)

// KVUserRepository stores all registered accounts as a single JSON object
// keyed by username.
type KVUserRepository struct {
	store kvstore.Store
}

// NewKVUserRepository creates a user repository backed by the given store.
func NewKVUserRepository(store kvstore.Store) *KVUserRepository {
	return &KVUserRepository{store: store}
}

// Get returns the account for the username.
func (r *KVUserRepository) Get(ctx context.Context, username string) (*domain.User, error) {
	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	user, ok := users[username]
	if !ok {
		return nil, apperrors.NotFound("user", username)
	}
	return &user, nil
}

// Create registers a new account.
func (r *KVUserRepository) Create(ctx context.Context, user domain.User) error {
	users, err := r.load(ctx)
	if err != nil {
		return err
	}

	if _, ok := users[user.Username]; ok {
		return apperrors.AlreadyExists("user", "username", user.Username)
	}

	users[user.Username] = user
	if err := r.store.Set(ctx, keyUsers, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func (r *KVUserRepository) load(ctx context.Context) (map[string]domain.User, error) {
	var users map[string]domain.User
	found, err := r.store.Get(ctx, keyUsers, &users)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if !found || users == nil {
		return map[string]domain.User{}, nil
	}
	return users, nil
}
