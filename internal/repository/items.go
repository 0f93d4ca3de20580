package repository

import (
	"context"
	"fmt"

	"github.com/DakshSitapara/wishlist/internal/domain"
	"github.com/DakshSitapara/wishlist/internal/kvstore"
)

// KVItemRepository stores each user's wishlist as a JSON array under its own
// key, rewritten in full on every save.
type KVItemRepository struct {
	store kvstore.Store
}

// NewKVItemRepository creates an item repository backed by the given store.
func NewKVItemRepository(store kvstore.Store) *KVItemRepository {
	return &KVItemRepository{store: store}
}

// Load returns the stored collection for the user, newest first.
func (r *KVItemRepository) Load(ctx context.Context, username string) ([]domain.WishlistItem, error) {
	var items []domain.WishlistItem
	found, err := r.store.Get(ctx, wishlistKey(username), &items)
	if err != nil {
		return nil, fmt.Errorf("load wishlist for %q: %w", username, err)
	}
	if !found || items == nil {
		return []domain.WishlistItem{}, nil
	}
	return items, nil
}

// Save overwrites the stored collection for the user.
func (r *KVItemRepository) Save(ctx context.Context, username string, items []domain.WishlistItem) error {
	if items == nil {
		items = []domain.WishlistItem{}
	}
	if err := r.store.Set(ctx, wishlistKey(username), items); err != nil {
		return fmt.Errorf("save wishlist for %q: %w", username, err)
	}
	return nil
}
