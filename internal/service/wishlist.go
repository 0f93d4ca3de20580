// Package service implements the application's business operations on top of
// the repositories.
package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/DakshSitapara/wishlist/internal/domain"
	"github.com/DakshSitapara/wishlist/internal/repository"
	apperrors "github.com/DakshSitapara/wishlist/pkg/errors"
	"github.com/DakshSitapara/wishlist/pkg/validator"
)

// WishlistService owns the per-user item collections and the custom category
// registry. The in-memory state is authoritative: every mutation applies in
// memory first and is then written through to the repositories. A failed
// write-through is logged and does not fail or revert the mutation; the next
// successful save overwrites the stale stored state.
type WishlistService struct {
	items      repository.ItemRepository
	categories repository.CategoryRepository
	logger     *slog.Logger

	mu           sync.Mutex
	collections  map[string][]domain.WishlistItem
	custom       []string
	customLoaded bool
}

// NewWishlistService creates a wishlist service backed by the given repositories.
func NewWishlistService(items repository.ItemRepository, categories repository.CategoryRepository, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		items:       items,
		categories:  categories,
		logger:      logger,
		collections: make(map[string][]domain.WishlistItem),
	}
}

// Items returns the user's full collection, newest first.
func (s *WishlistService) Items(ctx context.Context, username string) ([]domain.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.collectionLocked(ctx, username)
	out := make([]domain.WishlistItem, len(items))
	copy(out, items)
	return out, nil
}

// Visible returns the subset of the user's collection matching the criteria,
// in collection order.
func (s *WishlistService) Visible(ctx context.Context, username string, c domain.Criteria) ([]domain.WishlistItem, error) {
	items, err := s.Items(ctx, username)
	if err != nil {
		return nil, err
	}
	return domain.FilterItems(items, c), nil
}

// Add validates the draft and prepends a new item to the user's collection.
// The item gets a fresh id, starts unpurchased, and its category is
// canonicalized and registered as an available selection.
func (s *WishlistService) Add(ctx context.Context, username string, draft domain.ItemDraft) (*domain.WishlistItem, error) {
	if err := validator.Validate(draft); err != nil {
		return nil, err
	}
	if err := checkCategoryStorable(draft.Category); err != nil {
		return nil, err
	}

	item := domain.WishlistItem{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Description: draft.Description,
		Link:        draft.Link,
		Price:       draft.Price,
		ImageURL:    draft.ImageURL,
		IsPurchased: false,
		Category:    domain.DisplayCategory(draft.Category),
		Priority:    draft.Priority,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := append([]domain.WishlistItem{item}, s.collectionLocked(ctx, username)...)
	s.collections[username] = items

	s.registerCategoryLocked(ctx, item.Category)
	s.persistLocked(ctx, username, items)

	s.logger.InfoContext(ctx, "item added",
		slog.String("item_id", item.ID),
		slog.String("user", username),
	)
	return &item, nil
}

// Update validates and replaces the stored item with the same id, keeping its
// position in the collection and its purchase status; TogglePurchased is the
// only way to change the latter. Category registrations follow the change:
// the new category becomes available and the old one is dropped if no item
// uses it anymore.
func (s *WishlistService) Update(ctx context.Context, username string, item domain.WishlistItem) (*domain.WishlistItem, error) {
	if err := validator.Validate(item); err != nil {
		return nil, err
	}
	if err := checkCategoryStorable(item.Category); err != nil {
		return nil, err
	}
	item.Category = domain.DisplayCategory(item.Category)

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.collectionLocked(ctx, username)
	idx := indexOf(items, item.ID)
	if idx < 0 {
		return nil, apperrors.NotFound("item", item.ID)
	}

	previous := items[idx].Category
	item.IsPurchased = items[idx].IsPurchased
	items[idx] = item

	if domain.NormalizeCategory(previous) != domain.NormalizeCategory(item.Category) {
		s.registerCategoryLocked(ctx, item.Category)
		s.evictIfUnusedLocked(ctx, previous, items)
	}
	s.persistLocked(ctx, username, items)

	return &item, nil
}

// Delete removes the item with the given id. Deleting an absent id is a
// no-op reported as success. When the removed item was the last one in a
// custom category, that category stops being offered.
func (s *WishlistService) Delete(ctx context.Context, username, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.collectionLocked(ctx, username)
	idx := indexOf(items, id)
	if idx < 0 {
		return nil
	}

	removed := items[idx]
	remaining := make([]domain.WishlistItem, 0, len(items)-1)
	remaining = append(remaining, items[:idx]...)
	remaining = append(remaining, items[idx+1:]...)
	s.collections[username] = remaining

	s.evictIfUnusedLocked(ctx, removed.Category, remaining)
	s.persistLocked(ctx, username, remaining)

	s.logger.InfoContext(ctx, "item deleted",
		slog.String("item_id", id),
		slog.String("user", username),
	)
	return nil
}

// TogglePurchased flips the purchase status of the item with the given id.
func (s *WishlistService) TogglePurchased(ctx context.Context, username, id string) (*domain.WishlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.collectionLocked(ctx, username)
	idx := indexOf(items, id)
	if idx < 0 {
		return nil, apperrors.NotFound("item", id)
	}

	items[idx].IsPurchased = !items[idx].IsPurchased
	s.persistLocked(ctx, username, items)

	updated := items[idx]
	return &updated, nil
}

// Categories returns every available category in display form: the
// predefined set first, then the registered custom categories.
func (s *WishlistService) Categories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureCustomLocked(ctx)
	return domain.MergeCategories(s.custom), nil
}

// checkCategoryStorable rejects the "Other" placeholder, which is a selection
// option that prompts for a new category name and must never be stored.
func checkCategoryStorable(category string) error {
	if domain.NormalizeCategory(category) == domain.NormalizeCategory(domain.CategoryOther) {
		return apperrors.InvalidInput("category \"Other\" cannot be assigned to an item; provide a concrete category instead")
	}
	return nil
}

func indexOf(items []domain.WishlistItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// collectionLocked returns the cached collection for the user, loading it
// from the repository on first access. A load failure is logged and treated
// as an empty collection. Callers must hold s.mu.
func (s *WishlistService) collectionLocked(ctx context.Context, username string) []domain.WishlistItem {
	if items, ok := s.collections[username]; ok {
		return items
	}

	items, err := s.items.Load(ctx, username)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load wishlist, starting empty",
			slog.String("user", username),
			slog.String("error", err.Error()),
		)
		items = []domain.WishlistItem{}
	}

	s.collections[username] = items
	return items
}

// ensureCustomLocked loads the custom category registry on first access.
func (s *WishlistService) ensureCustomLocked(ctx context.Context) {
	if s.customLoaded {
		return
	}

	custom, err := s.categories.LoadCustom(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load custom categories, starting empty",
			slog.String("error", err.Error()),
		)
		custom = []string{}
	}

	s.custom = custom
	s.customLoaded = true
}

// registerCategoryLocked adds the category to the custom registry unless it
// is predefined or already registered.
func (s *WishlistService) registerCategoryLocked(ctx context.Context, category string) {
	if domain.IsPredefinedCategory(category) {
		return
	}

	s.ensureCustomLocked(ctx)
	key := domain.NormalizeCategory(category)
	for _, c := range s.custom {
		if domain.NormalizeCategory(c) == key {
			return
		}
	}

	s.custom = append(s.custom, domain.DisplayCategory(category))
	s.saveCustomLocked(ctx)
}

// evictIfUnusedLocked drops the category from the custom registry when no
// remaining item uses it. Predefined categories are never evicted.
func (s *WishlistService) evictIfUnusedLocked(ctx context.Context, category string, items []domain.WishlistItem) {
	if domain.IsPredefinedCategory(category) {
		return
	}

	key := domain.NormalizeCategory(category)
	for _, item := range items {
		if domain.NormalizeCategory(item.Category) == key {
			return
		}
	}

	s.ensureCustomLocked(ctx)
	kept := s.custom[:0]
	changed := false
	for _, c := range s.custom {
		if domain.NormalizeCategory(c) == key {
			changed = true
			continue
		}
		kept = append(kept, c)
	}
	if !changed {
		return
	}

	s.custom = kept
	s.saveCustomLocked(ctx)
}

// persistLocked writes the collection through to the repository. Failures are
// logged and swallowed; the in-memory state stays authoritative.
func (s *WishlistService) persistLocked(ctx context.Context, username string, items []domain.WishlistItem) {
	if err := s.items.Save(ctx, username, items); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist wishlist",
			slog.String("user", username),
			slog.String("error", err.Error()),
		)
	}
}

func (s *WishlistService) saveCustomLocked(ctx context.Context) {
	if err := s.categories.SaveCustom(ctx, s.custom); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist custom categories",
			slog.String("error", err.Error()),
		)
	}
}
