package bbolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tagsearch/internal/searches/registry"
)

// newTestStore creates a temporary bolt store for testing.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "searches.bolt")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestStore_PutLoadRemove(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "news", "golang"))
	require.NoError(t, store.Put(ctx, "news", "golang 1.25"))
	require.NoError(t, store.Put(ctx, "art", "monet"))

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"news": "golang 1.25", "art": "monet"}, all)

	require.NoError(t, store.Remove(ctx, "news"))
	require.NoError(t, store.Remove(ctx, "missing"))

	all, err = store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"art": "monet"}, all)
}

func TestStore_SurvivesReopen(t *testing.T) {
	store, path := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "weather", "rain"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	all, err := reopened.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rain", all["weather"])
	assert.Equal(t, path, reopened.Path())
}

func TestStore_CancelledContext(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Put(ctx, "a", "b"), context.Canceled)
	require.ErrorIs(t, store.Remove(ctx, "a"), context.Canceled)
}

func TestStore_OpenTimeout_DoesNotHang(t *testing.T) {
	_, path := newTestStore(t)

	start := time.Now()
	second, err := OpenWithTimeout(path, 200*time.Millisecond)
	elapsed := time.Since(start)

	require.Error(t, err, "second open should fail with lock timeout")
	assert.Nil(t, second)
	assert.Contains(t, err.Error(), "bolt open")
	assert.Less(t, elapsed, 3*time.Second)
}

func TestStore_RegistryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "searches.bolt")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	r, err := registry.Open(ctx, store)
	require.NoError(t, err)
	_, err = r.Save(ctx, "news", "golang")
	require.NoError(t, err)
	_, err = r.Save(ctx, "Art", "monet")
	require.NoError(t, err)
	require.NoError(t, r.Close())

	store, err = Open(path)
	require.NoError(t, err)
	r, err = registry.Open(ctx, store)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"Art", "news"}, r.ListTags())
}
