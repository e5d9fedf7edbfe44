package categoryRepo

import (
	"context"
	"time"

	"portal/models"
	"portal/utils"

	"go.uber.org/zap"
)

// CacheKey holds the serialized category list.
const CacheKey = "categories:all"

// CachedCategoryRepo serves the category list from the cache when possible.
type CachedCategoryRepo struct {
	inner CategoryRepository
	cache utils.Cache
	ttl   time.Duration
}

func NewCachedCategoryRepo(inner CategoryRepository, cache utils.Cache, ttl time.Duration) *CachedCategoryRepo {
	return &CachedCategoryRepo{inner: inner, cache: cache, ttl: ttl}
}

func (r *CachedCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	hit, err := r.cache.GetJSON(ctx, CacheKey, &cached)
	if err != nil {
		zap.L().Warn("CategoryRepo: cache read failed", zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	categories, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.cache.SetJSON(ctx, CacheKey, categories, r.ttl); err != nil {
		zap.L().Warn("CategoryRepo: cache write failed", zap.Error(err))
	}
	return categories, nil
}
