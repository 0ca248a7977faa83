package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"task-tracker/internal/cache"
	"task-tracker/internal/logger"
	"task-tracker/internal/models"
	"task-tracker/internal/validation"
)

const taskCacheTTL = 30 * time.Minute

// CachedTaskRepository is a read-through decorator over a TaskStore:
// single-task reads are served from redis when possible, writes invalidate.
// Cache failures degrade to the store and are logged, never surfaced.
type CachedTaskRepository struct {
	store TaskStore
	cache *cache.RedisCache
}

func NewCachedTaskRepository(store TaskStore, c *cache.RedisCache) *CachedTaskRepository {
	return &CachedTaskRepository{store: store, cache: c}
}

func taskCacheKey(id uint) string {
	return fmt.Sprintf("task:%d", id)
}

func (r *CachedTaskRepository) GetByID(ctx context.Context, id uint) (*models.Task, error) {
	key := taskCacheKey(id)

	var cached models.Task
	err := r.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn("task cache read failed", zap.String("key", key), zap.Error(err))
	}

	task, err := r.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, key, task, taskCacheTTL); err != nil {
		logger.Warn("task cache write failed", zap.String("key", key), zap.Error(err))
	}
	return task, nil
}

// List is never cached: the filter space is unbounded and the full result
// set is returned, so stale listings would be both likely and large.
func (r *CachedTaskRepository) List(ctx context.Context, filter ListFilter) ([]models.Task, error) {
	return r.store.List(ctx, filter)
}

func (r *CachedTaskRepository) Create(ctx context.Context, in *validation.CreateTask) (*models.Task, error) {
	return r.store.Create(ctx, in)
}

func (r *CachedTaskRepository) Update(ctx context.Context, id uint, in *validation.UpdateTask) (*models.Task, error) {
	task, err := r.store.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return task, nil
}

func (r *CachedTaskRepository) Delete(ctx context.Context, id uint) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedTaskRepository) invalidate(ctx context.Context, id uint) {
	key := taskCacheKey(id)
	if err := r.cache.Delete(ctx, key); err != nil {
		logger.Warn("task cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
