package stats

import (
	"context"
	"fmt"
	"time"

	"portal/models"
	"portal/utils"

	"go.uber.org/zap"
)

// CacheKey is where the latest statistics snapshot is kept.
const CacheKey = "stats:platform"

// ServiceCounter counts services and their distinct owners.
type ServiceCounter interface {
	Count(ctx context.Context) (int64, error)
	CountOwners(ctx context.Context) (int64, error)
}

// ReviewCounter counts reviews.
type ReviewCounter interface {
	Count(ctx context.Context) (int64, error)
}

// RefreshRecorder observes recomputations.
type RefreshRecorder interface {
	RecordStatsRefresh(err error)
}

// StatsService serves platform statistics.
type StatsService interface {
	// Get returns cached statistics, computing them on a miss.
	Get(ctx context.Context) (models.PlatformStats, error)
	// Refresh recomputes the statistics and replaces the cached copy.
	Refresh(ctx context.Context) (models.PlatformStats, error)
}

// DefaultStatsService computes statistics from the repositories. Cache and
// Metrics are optional.
type DefaultStatsService struct {
	Services ServiceCounter
	Reviews  ReviewCounter
	Cache    utils.Cache
	TTL      time.Duration
	Metrics  RefreshRecorder
}

func (s *DefaultStatsService) Get(ctx context.Context) (models.PlatformStats, error) {
	if s.Cache != nil {
		var cached models.PlatformStats
		hit, err := s.Cache.GetJSON(ctx, CacheKey, &cached)
		if err != nil {
			zap.L().Warn("StatsService: cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}
	return s.Refresh(ctx)
}

func (s *DefaultStatsService) Refresh(ctx context.Context) (models.PlatformStats, error) {
	stats, err := s.compute(ctx)
	if s.Metrics != nil {
		s.Metrics.RecordStatsRefresh(err)
	}
	if err != nil {
		return models.PlatformStats{}, err
	}

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, CacheKey, stats, s.TTL); err != nil {
			zap.L().Warn("StatsService: cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *DefaultStatsService) compute(ctx context.Context) (models.PlatformStats, error) {
	users, err := s.Services.CountOwners(ctx)
	if err != nil {
		return models.PlatformStats{}, fmt.Errorf("count users: %w", err)
	}
	reviews, err := s.Reviews.Count(ctx)
	if err != nil {
		return models.PlatformStats{}, fmt.Errorf("count reviews: %w", err)
	}
	services, err := s.Services.Count(ctx)
	if err != nil {
		return models.PlatformStats{}, fmt.Errorf("count services: %w", err)
	}
	return models.PlatformStats{Users: users, Reviews: reviews, ServicesCount: services}, nil
}
