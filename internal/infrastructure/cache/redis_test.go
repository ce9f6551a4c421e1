package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalogsearch/backend/internal/domain"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)

	cache, err := NewRedisCache(context.Background(), "redis://"+srv.Addr(), "test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, srv
}

func TestRedisCache_SetGet(t *testing.T) {
	cache, srv := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "search:a", []byte(`{"total":1}`), time.Minute))

	got, err := cache.Get(ctx, "search:a")
	require.NoError(t, err)
	assert.Equal(t, `{"total":1}`, string(got))
	assert.True(t, srv.Exists("test:search:a"), "keys are prefixed")
}

func TestRedisCache_Miss(t *testing.T) {
	cache, _ := newTestRedis(t)

	_, err := cache.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_TTL(t *testing.T) {
	cache, srv := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Second))
	srv.FastForward(2 * time.Second)

	_, err := cache.Get(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_DeleteExists(t *testing.T) {
	cache, _ := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	exists, err := cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Delete(ctx, "k"))
	exists, err = cache.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Unavailable(t *testing.T) {
	t.Run("connect fails", func(t *testing.T) {
		srv := miniredis.RunT(t)
		addr := srv.Addr()
		srv.Close()

		_, err := NewRedisCache(context.Background(), "redis://"+addr, "")
		assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := NewRedisCache(context.Background(), "not-a-url", "")
		assert.Error(t, err)
	})

	t.Run("server goes away", func(t *testing.T) {
		cache, srv := newTestRedis(t)
		srv.Close()

		_, err := cache.Get(context.Background(), "k")
		assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
	})
}
