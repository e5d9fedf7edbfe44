package stats

import (
	"context"
	"errors"
	"time"

	"portal/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeStatsRefresh is the asynq task recomputing platform statistics.
const TypeStatsRefresh = "stats:refresh"

// refreshDedupWindow collapses bursts of mutations into one recomputation.
const refreshDedupWindow = 30 * time.Second

// Enqueuer is the part of *asynq.Client used to schedule refreshes.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewRefreshTask builds the refresh task.
func NewRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeStatsRefresh, nil)
}

// AsyncRefresher schedules background recomputation after writes.
type AsyncRefresher struct {
	client Enqueuer
	cache  utils.Cache
}

// NewAsyncRefresher returns a refresher. cache may be nil.
func NewAsyncRefresher(client Enqueuer, cache utils.Cache) *AsyncRefresher {
	return &AsyncRefresher{client: client, cache: cache}
}

// RequestRefresh drops the cached snapshot so the next read recomputes it,
// then enqueues a refresh unless one is already pending.
func (r *AsyncRefresher) RequestRefresh(ctx context.Context) error {
	if r.cache != nil {
		if err := r.cache.Delete(ctx, CacheKey); err != nil {
			zap.L().Warn("StatsRefresh: failed to invalidate cached statistics", zap.Error(err))
		}
	}
	_, err := r.client.EnqueueContext(ctx, NewRefreshTask(),
		asynq.Unique(refreshDedupWindow),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// NewRefreshHandler processes TypeStatsRefresh tasks.
func NewRefreshHandler(svc StatsService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		stats, err := svc.Refresh(ctx)
		if err != nil {
			zap.L().Error("StatsRefresh: recomputation failed", zap.Error(err))
			return err
		}
		zap.L().Debug("StatsRefresh: statistics updated",
			zap.Int64("users", stats.Users),
			zap.Int64("reviews", stats.Reviews),
			zap.Int64("services", stats.ServicesCount),
		)
		return nil
	}
}
