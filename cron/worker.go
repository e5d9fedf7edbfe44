package cron

import (
	"fmt"
	"time"

	"portal/config"
	"portal/services/stats"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// statsRefreshSpec recomputes statistics even when no write happened, so
// changes made outside the API show up eventually.
const statsRefreshSpec = "@every 10m"

// RedisOpt returns the asynq connection settings for the queue database.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// NewMux routes background tasks to their handlers.
func NewMux(statsSvc stats.StatsService) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(stats.TypeStatsRefresh, stats.NewRefreshHandler(statsSvc))
	return mux
}

// Worker runs the task server and the periodic scheduler.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	logger    *zap.Logger
}

// StartWorker starts processing background tasks, retrying the start-up a
// few times while Redis comes up.
func StartWorker(redisOpt asynq.RedisClientOpt, statsSvc stats.StatsService, logger *zap.Logger) (*Worker, error) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := NewMux(statsSvc)

	const maxAttempts = 5
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = srv.Start(mux); err == nil {
			break
		}
		logger.Warn("StatsWorker: failed to start", zap.Int("attempt", attempts), zap.Error(err))
		if attempts < maxAttempts {
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("start task server: %w", err)
	}

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{Logger: logger.Sugar()})
	if _, err := scheduler.Register(statsRefreshSpec, stats.NewRefreshTask(), asynq.Unique(time.Minute)); err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("register stats refresh: %w", err)
	}
	if err := scheduler.Start(); err != nil {
		srv.Shutdown()
		return nil, fmt.Errorf("start scheduler: %w", err)
	}

	logger.Info("StatsWorker: started")
	return &Worker{server: srv, scheduler: scheduler, logger: logger}, nil
}

// Shutdown stops the scheduler and waits for running tasks.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	w.logger.Info("StatsWorker: stopped")
}
