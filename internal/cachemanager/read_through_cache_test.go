package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCacheManager is a testify mock of CacheManager.
type mockCacheManager[K comparable, V any] struct {
	mock.Mock
}

func (m *mockCacheManager[K, V]) Get(ctx context.Context, key K) (V, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(V), args.Bool(1)
}

func (m *mockCacheManager[K, V]) GetMultiple(ctx context.Context, keys []K) (map[K]V, bool) {
	args := m.Called(ctx, keys)
	return args.Get(0).(map[K]V), args.Bool(1)
}

func (m *mockCacheManager[K, V]) GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool) {
	args := m.Called(ctx, key, ttl)
	return args.Get(0).(V), args.Bool(1)
}

func (m *mockCacheManager[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *mockCacheManager[K, V]) Delete(ctx context.Context, keys ...K) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockCacheManager[K, V]) Flush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type renderInput struct {
	Query string
	Width int
}

func render(calls *int) func(context.Context, renderInput) (string, error) {
	return func(_ context.Context, in renderInput) (string, error) {
		*calls++
		if in.Query == "" {
			return "", errors.New("nothing to render")
		}
		return "<" + in.Query + ">", nil
	}
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	managerMock := &mockCacheManager[string, string]{}
	calls := 0
	rtc := NewReadThroughCache[string, string, renderInput](managerMock, render(&calls), true)

	got, err := rtc.Get(context.Background(), "k", renderInput{Query: "go"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "<go>", got)
	require.Equal(t, 1, calls)
	managerMock.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestReadThroughCache_Get_Hit(t *testing.T) {
	ctx := context.Background()
	managerMock := &mockCacheManager[string, string]{}
	managerMock.On("Get", ctx, "k").Return("cached", true).Once()
	calls := 0
	rtc := NewReadThroughCache[string, string, renderInput](managerMock, render(&calls), false)

	got, err := rtc.Get(ctx, "k", renderInput{Query: "go"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "cached", got)
	require.Zero(t, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_MissFillsCache(t *testing.T) {
	ctx := context.Background()
	managerMock := &mockCacheManager[string, string]{}
	managerMock.On("Get", ctx, "k").Return("", false).Once()
	managerMock.On("Set", ctx, "k", "<go>", time.Minute).Once()
	calls := 0
	rtc := NewReadThroughCache[string, string, renderInput](managerMock, render(&calls), false)

	got, err := rtc.Get(ctx, "k", renderInput{Query: "go"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "<go>", got)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("previews", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	rtc := NewReadThroughCache[string, string, renderInput](cache, render(&calls), false)

	_, err := rtc.Get(ctx, "empty", renderInput{}, time.Minute)
	require.Error(t, err)
	_, err = rtc.Get(ctx, "empty", renderInput{}, time.Minute)
	require.Error(t, err)
	require.Equal(t, 2, calls)
	require.Equal(t, 0, cache.ItemCount())
}

func TestReadThroughCache_GetWithRefreshAndInvalidate(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("previews", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	rtc := NewReadThroughCache[string, string, renderInput](cache, render(&calls), false)

	for range 3 {
		got, err := rtc.GetWithRefresh(ctx, "k", renderInput{Query: "go"}, time.Minute)
		require.NoError(t, err)
		require.Equal(t, "<go>", got)
	}
	require.Equal(t, 1, calls)

	require.NoError(t, rtc.Invalidate(ctx))
	_, err := rtc.Get(ctx, "k", renderInput{Query: "go"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}
