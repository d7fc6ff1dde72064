package service

import (
	"context"
	"fmt"
	"math"
	"sweeps_admin/internal/domain/analytics/model"
	"sweeps_admin/internal/domain/analytics/repository"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/cache"
	"sweeps_admin/pkg/metrics"
	"time"

	"golang.org/x/sync/errgroup"
)

const crossSiteTTL = 60 * time.Second

// SiteLister 站点列表
type SiteLister interface {
	List() []*tenant.Site
}

// AnalyticsService 统计服务
type AnalyticsService interface {
	Overview(ctx context.Context, site string) (*model.Overview, error)
	CrossSite(ctx context.Context) (*model.CrossSite, error)
	Invalidate(ctx context.Context) error
}

type analyticsService struct {
	repo    repository.AnalyticsRepository
	sites   SiteLister
	cache   cache.CacheService
	metrics *metrics.MetricsCollector
	now     func() time.Time
}

func NewAnalyticsService(repo repository.AnalyticsRepository, sites SiteLister, c cache.CacheService, collector *metrics.MetricsCollector) AnalyticsService {
	return &analyticsService{
		repo:    repo,
		sites:   sites,
		cache:   c,
		metrics: collector,
		now:     time.Now,
	}
}

// Overview 单站点概览，今日从本地零点算起
func (s *analyticsService) Overview(ctx context.Context, site string) (*model.Overview, error) {
	counts, err := s.repo.Counts(ctx, site, startOfDay(s.now()))
	if err != nil {
		return nil, fmt.Errorf("load site counts: %w", err)
	}
	return &model.Overview{
		TotalEntries:    counts.TotalEntries,
		TodayEntries:    counts.TodayEntries,
		ActiveGiveaways: counts.ActiveGiveaways,
		TotalWinners:    counts.TotalWinners,
	}, nil
}

// CrossSite 所有站点并发查询，结果缓存 60 秒
func (s *analyticsService) CrossSite(ctx context.Context) (*model.CrossSite, error) {
	result, hit, err := cache.Remember(ctx, s.cache, model.CrossSiteCacheKey, crossSiteTTL, s.collect)
	s.recordCache(hit)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *analyticsService) collect(ctx context.Context) (*model.CrossSite, error) {
	sites := s.sites.List()
	stats := make([]model.SiteStats, len(sites))
	since := startOfDay(s.now())

	g, gctx := errgroup.WithContext(ctx)
	for i, site := range sites {
		g.Go(func() error {
			counts, err := s.repo.Counts(gctx, site.ID, since)
			if err != nil {
				return fmt.Errorf("load counts for site %s: %w", site.ID, err)
			}
			stats[i] = siteStats(site, counts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &model.CrossSite{Sites: stats}
	for _, st := range stats {
		result.Totals.Entries += st.TotalEntries
		result.Totals.ActiveGiveaways += st.ActiveGiveaways
		result.Totals.Winners += st.WinnersDrawn
	}
	return result, nil
}

// Invalidate 清除统计缓存
func (s *analyticsService) Invalidate(ctx context.Context) error {
	return s.cache.InvalidatePattern(ctx, "analytics:*")
}

func (s *analyticsService) recordCache(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation("analytics", hit)
	}
}

func siteStats(site *tenant.Site, c *model.SiteCounts) model.SiteStats {
	giveaways := c.ActiveGiveaways + c.EndedGiveaways
	return model.SiteStats{
		SiteID:                site.ID,
		SiteName:              site.Name,
		Color:                 site.Color,
		TotalEntries:          c.TotalEntries,
		ActiveGiveaways:       c.ActiveGiveaways,
		CompletedGiveaways:    c.EndedGiveaways,
		WinnersDrawn:          c.TotalWinners,
		AvgEntriesPerGiveaway: int64(math.Round(float64(c.TotalEntries) / float64(max(giveaways, 1)))),
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
