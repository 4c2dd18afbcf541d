package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/config"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCacheRepository(&config.RedisClient{Client: client}, ttl), mr
}

func TestCacheRepository_Categories(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	cached, err := cache.GetCategories(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)

	categories := []model.Category{{Type: "food", Color: "red"}, {Type: "bills", Color: "blue"}}
	require.NoError(t, cache.SetCategories(ctx, categories))
	assert.True(t, mr.Exists(categoriesKey))

	cached, err = cache.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, categories, cached)

	require.NoError(t, cache.InvalidateCategories(ctx))
	cached, err = cache.GetCategories(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestCacheRepository_Expiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.SetCategories(ctx, []model.Category{{Type: "food", Color: "red"}}))
	mr.FastForward(2 * time.Minute)

	cached, err := cache.GetCategories(ctx)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestCacheRepository_CorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set(categoriesKey, "not json"))
	_, err := cache.GetCategories(context.Background())
	assert.Error(t, err)
}
