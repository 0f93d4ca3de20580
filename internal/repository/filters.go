package repository

import (
	"context"
	"fmt"

	"github.com/DakshSitapara/wishlist/internal/domain"
	"github.com/DakshSitapara/wishlist/internal/kvstore"
)

// priceRange is the stored shape of the price facet. Null bounds mean
// unbounded on that side.
type priceRange struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// KVFilterRepository stores each filter facet under its own key so facets
// written by older versions of the app remain readable individually.
type KVFilterRepository struct {
	store kvstore.Store
}

// NewKVFilterRepository creates a filter repository backed by the given store.
func NewKVFilterRepository(store kvstore.Store) *KVFilterRepository {
	return &KVFilterRepository{store: store}
}

// Load assembles the stored criteria. A facet that is absent or unreadable
// keeps its zero value, so a partially stored set still loads.
func (r *KVFilterRepository) Load(ctx context.Context) (domain.Criteria, error) {
	var c domain.Criteria

	if _, err := r.store.Get(ctx, keySearch, &c.SearchText); err != nil {
		return domain.Criteria{}, fmt.Errorf("load search filter: %w", err)
	}
	if _, err := r.store.Get(ctx, keyCategories, &c.Categories); err != nil {
		return domain.Criteria{}, fmt.Errorf("load category filter: %w", err)
	}
	if _, err := r.store.Get(ctx, keyStatuses, &c.Statuses); err != nil {
		return domain.Criteria{}, fmt.Errorf("load status filter: %w", err)
	}
	if _, err := r.store.Get(ctx, keyPriorities, &c.Priorities); err != nil {
		return domain.Criteria{}, fmt.Errorf("load priority filter: %w", err)
	}

	var pr priceRange
	if _, err := r.store.Get(ctx, keyPriceRange, &pr); err != nil {
		return domain.Criteria{}, fmt.Errorf("load price filter: %w", err)
	}
	c.PriceMin = pr.Min
	c.PriceMax = pr.Max

	return c, nil
}

// Save overwrites every stored facet.
func (r *KVFilterRepository) Save(ctx context.Context, c domain.Criteria) error {
	if err := r.store.Set(ctx, keySearch, c.SearchText); err != nil {
		return fmt.Errorf("save search filter: %w", err)
	}
	if err := r.store.Set(ctx, keyCategories, emptyIfNil(c.Categories)); err != nil {
		return fmt.Errorf("save category filter: %w", err)
	}
	if err := r.store.Set(ctx, keyStatuses, emptyIfNil(c.Statuses)); err != nil {
		return fmt.Errorf("save status filter: %w", err)
	}
	if err := r.store.Set(ctx, keyPriorities, emptyIfNil(c.Priorities)); err != nil {
		return fmt.Errorf("save priority filter: %w", err)
	}
	if err := r.store.Set(ctx, keyPriceRange, priceRange{Min: c.PriceMin, Max: c.PriceMax}); err != nil {
		return fmt.Errorf("save price filter: %w", err)
	}
	return nil
}

// Reset removes every stored facet.
func (r *KVFilterRepository) Reset(ctx context.Context) error {
	for _, key := range []string{keySearch, keyCategories, keyStatuses, keyPriorities, keyPriceRange} {
		if err := r.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("reset filter %q: %w", key, err)
		}
	}
	return nil
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
