package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/DakshSitapara/wishlist/internal/domain"
	"github.com/DakshSitapara/wishlist/internal/kvstore"
	"github.com/DakshSitapara/wishlist/internal/repository"
	apperrors "github.com/DakshSitapara/wishlist/pkg/errors"
	"github.com/DakshSitapara/wishlist/pkg/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newWishlistService(t *testing.T) *WishlistService {
	t.Helper()
	store := kvstore.NewMemoryStore(testLogger())
	return NewWishlistService(
		repository.NewKVItemRepository(store),
		repository.NewKVCategoryRepository(store),
		testLogger(),
	)
}

func lampDraft() domain.ItemDraft {
	return domain.ItemDraft{
		Name:        "Desk Lamp",
		Description: "Warm light for the desk",
		Link:        "https://example.com/lamp",
		Price:       25.50,
		Category:    "Home",
		Priority:    domain.PriorityMedium,
	}
}

func TestWishlistService_Add(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	item, err := svc.Add(ctx, "alice", lampDraft())
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Desk Lamp", item.Name)
	assert.False(t, item.IsPurchased)
	assert.Equal(t, "Home", item.Category)

	second, err := svc.Add(ctx, "alice", domain.ItemDraft{
		Name:        "Keyboard",
		Description: "Mechanical, tenkeyless",
		Link:        "https://example.com/kb",
		Price:       120,
		Category:    "Electronics",
		Priority:    domain.PriorityHigh,
	})
	require.NoError(t, err)
	assert.NotEqual(t, item.ID, second.ID)

	// Newest first.
	items, err := svc.Items(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, item.ID, items[1].ID)
}

func TestWishlistService_Add_CanonicalizesCategory(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	item, err := svc.Add(ctx, "alice", draftWithCategory("  shoes "))
	require.NoError(t, err)
	assert.Equal(t, "Shoes", item.Category)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories, "Shoes")
}

func TestWishlistService_Add_Invalid(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	tests := []struct {
		name  string
		draft domain.ItemDraft
	}{
		{"missing name", func() domain.ItemDraft { d := lampDraft(); d.Name = ""; return d }()},
		{"missing description", func() domain.ItemDraft { d := lampDraft(); d.Description = ""; return d }()},
		{"malformed link", func() domain.ItemDraft { d := lampDraft(); d.Link = "not a url"; return d }()},
		{"zero price", func() domain.ItemDraft { d := lampDraft(); d.Price = 0; return d }()},
		{"negative price", func() domain.ItemDraft { d := lampDraft(); d.Price = -5; return d }()},
		{"unknown priority", func() domain.ItemDraft { d := lampDraft(); d.Priority = "Urgent"; return d }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, "alice", tt.draft)
			var vErr *validator.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}

	// Rejected drafts never reach the collection.
	items, err := svc.Items(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlistService_Add_RejectsOtherSentinel(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	for _, category := range []string{"Other", "other", "  OTHER "} {
		_, err := svc.Add(ctx, "alice", draftWithCategory(category))
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	}
}

func TestWishlistService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	first, err := svc.Add(ctx, "alice", lampDraft())
	require.NoError(t, err)
	second, err := svc.Add(ctx, "alice", draftWithCategory("Garden"))
	require.NoError(t, err)

	updated := *first
	updated.Name = "Floor Lamp"
	updated.Price = 79.99
	got, err := svc.Update(ctx, "alice", updated)
	require.NoError(t, err)
	assert.Equal(t, "Floor Lamp", got.Name)

	// The item keeps its position in the collection.
	items, err := svc.Items(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
	assert.Equal(t, "Floor Lamp", items[1].Name)
}

func TestWishlistService_Update_PreservesPurchaseStatus(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	item, err := svc.Add(ctx, "alice", lampDraft())
	require.NoError(t, err)
	_, err = svc.TogglePurchased(ctx, "alice", item.ID)
	require.NoError(t, err)

	updated := *item
	updated.Name = "Floor Lamp"
	updated.IsPurchased = false
	got, err := svc.Update(ctx, "alice", updated)
	require.NoError(t, err)
	assert.True(t, got.IsPurchased)
}

func TestWishlistService_Update_UnknownIDLeavesCollectionUntouched(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	item, err := svc.Add(ctx, "alice", lampDraft())
	require.NoError(t, err)
	before, err := svc.Items(ctx, "alice")
	require.NoError(t, err)

	ghost := *item
	ghost.ID = "no-such-id"
	ghost.Name = "Ghost"
	_, err = svc.Update(ctx, "alice", ghost)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	after, err := svc.Items(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWishlistService_Update_MovesCategoryRegistration(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	item, err := svc.Add(ctx, "alice", draftWithCategory("Garden"))
	require.NoError(t, err)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories, "Garden")

	updated := *item
	updated.Category = "Workshop"
	_, err = svc.Update(ctx, "alice", updated)
	require.NoError(t, err)

	categories, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.NotContains(t, categories, "Garden")
	assert.Contains(t, categories, "Workshop")
}

func TestWishlistService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	item, err := svc.Add(ctx, "alice", lampDraft())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", item.ID))
	items, err := svc.Items(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, items)

	// Deleting an absent id is a no-op reported as success.
	require.NoError(t, svc.Delete(ctx, "alice", item.ID))
}

func TestWishlistService_Delete_PrunesLastCustomCategory(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	first, err := svc.Add(ctx, "alice", draftWithCategory("Garden"))
	require.NoError(t, err)
	second, err := svc.Add(ctx, "alice", draftWithCategory("Garden"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "alice", first.ID))
	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Contains(t, categories, "Garden")

	require.NoError(t, svc.Delete(ctx, "alice", second.ID))
	categories, err = svc.Categories(ctx)
	require.NoError(t, err)
	assert.NotContains(t, categories, "Garden")
}

func TestWishlistService_Delete_NeverPrunesPredefinedCategories(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	item, err := svc.Add(ctx, "alice", lampDraft())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, "alice", item.ID))

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PredefinedCategories, categories)
}

func TestWishlistService_TogglePurchased(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	item, err := svc.Add(ctx, "alice", lampDraft())
	require.NoError(t, err)

	toggled, err := svc.TogglePurchased(ctx, "alice", item.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPurchased)

	// Toggling twice restores the original status.
	toggled, err = svc.TogglePurchased(ctx, "alice", item.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsPurchased)

	_, err = svc.TogglePurchased(ctx, "alice", "no-such-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWishlistService_Categories_DeduplicatesOnNormalizedKey(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	for _, category := range []string{"shoes", " Shoes ", "SHOES"} {
		_, err := svc.Add(ctx, "alice", draftWithCategory(category))
		require.NoError(t, err)
	}

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, append(append([]string{}, domain.PredefinedCategories...), "Shoes"), categories)
}

func TestWishlistService_CollectionsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	_, err := svc.Add(ctx, "alice", lampDraft())
	require.NoError(t, err)

	items, err := svc.Items(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestWishlistService_Visible(t *testing.T) {
	ctx := context.Background()
	svc := newWishlistService(t)

	lamp, err := svc.Add(ctx, "alice", lampDraft())
	require.NoError(t, err)
	_, err = svc.Add(ctx, "alice", domain.ItemDraft{
		Name:        "Keyboard",
		Description: "Mechanical, tenkeyless",
		Link:        "https://example.com/kb",
		Price:       120,
		Category:    "Electronics",
		Priority:    domain.PriorityHigh,
	})
	require.NoError(t, err)

	visible, err := svc.Visible(ctx, "alice", domain.Criteria{SearchText: "lamp"})
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, lamp.ID, visible[0].ID)
}

type mockItemRepository struct {
	mock.Mock
}

func (m *mockItemRepository) Load(ctx context.Context, username string) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WishlistItem), args.Error(1)
}

func (m *mockItemRepository) Save(ctx context.Context, username string, items []domain.WishlistItem) error {
	args := m.Called(ctx, username, items)
	return args.Error(0)
}

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) LoadCustom(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockCategoryRepository) SaveCustom(ctx context.Context, categories []string) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func TestWishlistService_PersistenceFailureDoesNotRevertMutation(t *testing.T) {
	ctx := context.Background()

	itemRepo := new(mockItemRepository)
	itemRepo.On("Load", mock.Anything, "alice").Return([]domain.WishlistItem{}, nil)
	itemRepo.On("Save", mock.Anything, "alice", mock.Anything).Return(errors.New("disk full"))

	categoryRepo := new(mockCategoryRepository)
	categoryRepo.On("LoadCustom", mock.Anything).Return([]string{}, nil)
	categoryRepo.On("SaveCustom", mock.Anything, mock.Anything).Return(nil)

	svc := NewWishlistService(itemRepo, categoryRepo, testLogger())

	item, err := svc.Add(ctx, "alice", lampDraft())
	require.NoError(t, err)

	// The in-memory collection keeps the item despite the failed save.
	items, err := svc.Items(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	itemRepo.AssertExpectations(t)
}

func TestWishlistService_LoadFailureTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()

	itemRepo := new(mockItemRepository)
	itemRepo.On("Load", mock.Anything, "alice").Return(nil, errors.New("connection refused"))

	svc := NewWishlistService(itemRepo, new(mockCategoryRepository), testLogger())

	items, err := svc.Items(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func draftWithCategory(category string) domain.ItemDraft {
	d := lampDraft()
	d.Category = category
	return d
}
