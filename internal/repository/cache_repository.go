package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/config"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
	"github.com/redis/go-redis/v9"
)

const categoriesKey = "categories:all"

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetCategories(ctx context.Context, categories []model.Category) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return util.LogError("[Cache] failed to encode categories", err)
	}

	if err := r.client.Client.Set(ctx, categoriesKey, data, r.ttl).Err(); err != nil {
		return util.LogError("[Cache] failed to store categories", err)
	}
	return nil
}

// GetCategories : nil, nil on a cache miss
func (r *CacheRepository) GetCategories(ctx context.Context) ([]model.Category, error) {
	val, err := r.client.Client.Get(ctx, categoriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, util.LogError("[Cache] failed to read categories", err)
	}

	var categories []model.Category
	if err := json.Unmarshal(val, &categories); err != nil {
		return nil, util.LogError("[Cache] failed to decode categories", err)
	}
	return categories, nil
}

func (r *CacheRepository) InvalidateCategories(ctx context.Context) error {
	if err := r.client.Client.Del(ctx, categoriesKey).Err(); err != nil {
		return util.LogError("[Cache] failed to invalidate categories", err)
	}
	return nil
}
