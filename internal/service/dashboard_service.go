package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/peoplehub/hr-service/internal/domain"
	"github.com/peoplehub/hr-service/internal/persistence"
	"github.com/peoplehub/hr-service/internal/repository"
)

const (
	dashboardCacheKey = "dashboard:metrics"
	dashboardCacheTTL = 60 * time.Second
)

// DashboardService computes headcount metrics, caching results in Redis.
// Cache failures are non-fatal: the service falls back to Postgres.
type DashboardService struct {
	employees repository.EmployeeRepository
	cache     *persistence.Redis
	logger    *zap.Logger
}

// NewDashboardService builds the service.
func NewDashboardService(employees repository.EmployeeRepository, cache *persistence.Redis, logger *zap.Logger) *DashboardService {
	return &DashboardService{employees: employees, cache: cache, logger: logger}
}

// Metrics returns the dashboard figures.
func (s *DashboardService) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	total, err := s.employees.Count(ctx, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)
	newHires, err := s.employees.CountHiredBetween(ctx, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}

	metrics := &domain.DashboardMetrics{
		TotalEmployees:    total,
		NewHiresThisMonth: newHires,
		// vacation tracking is not modeled yet; the dashboard shows zero
		UpcomingVacations: 0,
	}
	s.toCache(ctx, metrics)
	return metrics, nil
}

func (s *DashboardService) fromCache(ctx context.Context) *domain.DashboardMetrics {
	if s.cache == nil || s.cache.Client == nil {
		return nil
	}
	raw, err := s.cache.Client.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var metrics domain.DashboardMetrics
	if err := json.Unmarshal(raw, &metrics); err != nil {
		s.logger.Warn("discarding malformed dashboard cache entry", zap.Error(err))
		return nil
	}
	return &metrics
}

func (s *DashboardService) toCache(ctx context.Context, metrics *domain.DashboardMetrics) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(metrics)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
		s.logger.Warn("unable to cache dashboard metrics", zap.Error(err))
	}
}
