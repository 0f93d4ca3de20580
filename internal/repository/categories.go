package repository

import (
	"context"
	"fmt"

	"github.com/DakshSitapara/wishlist/internal/kvstore"
)

// KVCategoryRepository stores the custom category registry as a JSON array
// of display-form names.
type KVCategoryRepository struct {
	store kvstore.Store
}

// NewKVCategoryRepository creates a category repository backed by the given store.
func NewKVCategoryRepository(store kvstore.Store) *KVCategoryRepository {
	return &KVCategoryRepository{store: store}
}

// LoadCustom returns the stored custom categories.
func (r *KVCategoryRepository) LoadCustom(ctx context.Context) ([]string, error) {
	var categories []string
	found, err := r.store.Get(ctx, keyCustomCategories, &categories)
	if err != nil {
		return nil, fmt.Errorf("load custom categories: %w", err)
	}
	if !found || categories == nil {
		return []string{}, nil
	}
	return categories, nil
}

// SaveCustom overwrites the stored custom categories.
func (r *KVCategoryRepository) SaveCustom(ctx context.Context, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	if err := r.store.Set(ctx, keyCustomCategories, categories); err != nil {
		return fmt.Errorf("save custom categories: %w", err)
	}
	return nil
}
