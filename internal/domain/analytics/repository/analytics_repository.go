package repository

import (
	"context"
	"sweeps_admin/internal/domain/analytics/model"
	"sweeps_admin/internal/pkg/tenant"
	"time"
)

// countsQuery 一次往返取回站点的全部计数
const countsQuery = `SELECT
	(SELECT COUNT(*) FROM entries) AS total_entries,
	(SELECT COUNT(*) FROM entries WHERE created_at >= ?) AS today_entries,
	(SELECT COUNT(*) FROM giveaways WHERE is_active = true) AS active_giveaways,
	(SELECT COUNT(*) FROM giveaways WHERE is_active = false) AS ended_giveaways,
	(SELECT COUNT(*) FROM winners) AS total_winners`

// AnalyticsRepository 统计查询
type AnalyticsRepository interface {
	Counts(ctx context.Context, site string, since time.Time) (*model.SiteCounts, error)
}

type analyticsRepository struct {
	sites tenant.DBResolver
}

func NewAnalyticsRepository(sites tenant.DBResolver) AnalyticsRepository {
	return &analyticsRepository{sites: sites}
}

// Counts since 之后的参与记录计入 TodayEntries
func (r *analyticsRepository) Counts(ctx context.Context, site string, since time.Time) (*model.SiteCounts, error) {
	db, err := r.sites.DB(site)
	if err != nil {
		return nil, err
	}

	var counts model.SiteCounts
	if err := db.WithContext(ctx).Raw(countsQuery, since).Scan(&counts).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
