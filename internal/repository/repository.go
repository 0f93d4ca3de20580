// Package repository defines the persistence contracts between the services
// and the key-value store, plus the store-backed implementations.
package repository

import (
	"context"

	"github.com/DakshSitapara/wishlist/internal/domain"
)

// ItemRepository persists per-user wishlist collections.
type ItemRepository interface {
	// Load returns the stored collection for the user, newest first. An
	// absent collection yields an empty slice.
	Load(ctx context.Context, username string) ([]domain.WishlistItem, error)

	// Save overwrites the stored collection for the user.
	Save(ctx context.Context, username string, items []domain.WishlistItem) error
}

// CategoryRepository persists the shared custom category registry.
type CategoryRepository interface {
	// LoadCustom returns the stored custom categories in display form.
	LoadCustom(ctx context.Context) ([]string, error)

	// SaveCustom overwrites the stored custom categories.
	SaveCustom(ctx context.Context, categories []string) error
}

// FilterRepository persists the active filter criteria across sessions.
type FilterRepository interface {
	// Load returns the stored criteria. Absent or unreadable facets fall
	// back to their zero values.
	Load(ctx context.Context) (domain.Criteria, error)

	// Save overwrites the stored criteria.
	Save(ctx context.Context, c domain.Criteria) error

	// Reset removes all stored criteria.
	Reset(ctx context.Context) error
}

// UserRepository persists registered accounts.
type UserRepository interface {
	// Get returns the account for the username or apperrors.ErrNotFound.
	Get(ctx context.Context, username string) (*domain.User, error)

	// Create registers a new account, failing with apperrors.ErrAlreadyExists
	// when the username is taken.
	Create(ctx context.Context, user domain.User) error
}

// SessionRepository persists which user is currently logged in.
type SessionRepository interface {
	// Current returns the logged-in username, or "" when nobody is.
	Current(ctx context.Context) (string, error)

	// SetCurrent marks the user as logged in.
	SetCurrent(ctx context.Context, username string) error

	// Clear logs the current user out. Clearing an empty session is a no-op.
	Clear(ctx context.Context) error
}
