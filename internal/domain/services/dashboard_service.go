package services

import (
	"context"
	"encoding/json"

	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/pkg/logger"
)

// DashboardService serves aggregate statistics, cached for a short period.
// Cache trouble degrades to a direct database read, never to an error.
type DashboardService struct {
	dashboardRepo repositories.DashboardRepository
	cache         CacheService
	logger        *logger.Logger
}

func NewDashboardService(dashboardRepo repositories.DashboardRepository, cache CacheService, logger *logger.Logger) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		cache:         cache,
		logger:        logger,
	}
}

// Stats returns the dashboard counters, from cache when fresh.
func (s *DashboardService) Stats(ctx context.Context) (*repositories.DashboardStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, DashboardCacheKey); err == nil && cached != "" {
			var stats repositories.DashboardStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
			s.logger.Warn("discarding unreadable dashboard cache entry")
		}
	}

	stats, err := s.dashboardRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, DashboardCacheKey, string(payload), CacheShortTerm); err != nil {
				s.logger.Warn("failed to cache dashboard stats", "error", err)
			}
		}
	}
	return stats, nil
}

// Activity returns the recent-records feed, from cache when fresh. The feed
// tolerates a longer cache window because mutations invalidate it.
func (s *DashboardService) Activity(ctx context.Context) (*repositories.DashboardActivity, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, DashboardActivityCacheKey); err == nil && cached != "" {
			var activity repositories.DashboardActivity
			if err := json.Unmarshal([]byte(cached), &activity); err == nil {
				return &activity, nil
			}
			s.logger.Warn("discarding unreadable dashboard cache entry")
		}
	}

	activity, err := s.dashboardRepo.RecentActivity(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(activity); err == nil {
			if err := s.cache.Set(ctx, DashboardActivityCacheKey, string(payload), CacheMediumTerm); err != nil {
				s.logger.Warn("failed to cache dashboard activity", "error", err)
			}
		}
	}
	return activity, nil
}

// Invalidate drops the cached dashboard entries after a mutation.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, key := range []string{DashboardCacheKey, DashboardActivityCacheKey} {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to invalidate dashboard cache", "key", key, "error", err)
		}
	}
}
