package kvstore

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type payload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// roundTrip exercises the shared Store contract against an implementation.
func roundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	var got payload
	found, err := store.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := payload{Name: "Desk Lamp", Price: 25.50}
	require.NoError(t, store.Set(ctx, "item", want))

	found, err = store.Get(ctx, "item", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)

	require.NoError(t, store.Remove(ctx, "item"))
	found, err = store.Get(ctx, "item", &got)
	require.NoError(t, err)
	assert.False(t, found)

	// Removing an absent key is not an error.
	require.NoError(t, store.Remove(ctx, "item"))

	require.NoError(t, store.Set(ctx, "a", 1))
	require.NoError(t, store.Set(ctx, "b", 2))
	require.NoError(t, store.Clear(ctx))

	var n int
	found, err = store.Get(ctx, "a", &n)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore(t *testing.T) {
	roundTrip(t, NewMemoryStore(discardLogger()))
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	roundTrip(t, NewFileStore(path, discardLogger()))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first := NewFileStore(path, discardLogger())
	require.NoError(t, first.Set(ctx, "greeting", "hello"))

	second := NewFileStore(path, discardLogger())
	var got string
	found, err := second.Get(ctx, "greeting", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "hello", got)
}

func TestFileStore_CorruptedDocumentTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o644))

	store := NewFileStore(path, discardLogger())

	var got string
	found, err := store.Get(ctx, "anything", &got)
	require.NoError(t, err)
	assert.False(t, found)

	// The store stays usable after the corruption is discarded.
	require.NoError(t, store.Set(ctx, "anything", "value"))
	found, err = store.Get(ctx, "anything", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "value", got)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	roundTrip(t, NewRedisStore(client, discardLogger()))
}

func TestRedisStore_UnparsableValueTreatedAsAbsent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	require.NoError(t, mr.Set("item", "{broken"))

	store := NewRedisStore(client, discardLogger())
	var got payload
	found, err := store.Get(context.Background(), "item", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNoopStore(t *testing.T) {
	ctx := context.Background()
	store := NewNoopStore()

	require.NoError(t, store.Set(ctx, "item", "value"))

	var got string
	found, err := store.Get(ctx, "item", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Remove(ctx, "item"))
	require.NoError(t, store.Clear(ctx))
}
