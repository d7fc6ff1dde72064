package analytics

import (
	"sweeps_admin/internal/domain/analytics/handler"
	"sweeps_admin/internal/domain/analytics/repository"
	"sweeps_admin/internal/domain/analytics/service"
	"sweeps_admin/internal/pkg/middleware"
	"sweeps_admin/internal/pkg/registry"
)

// AnalyticsModule 仪表盘与跨站点统计
type AnalyticsModule struct{}

func init() {
	registry.Register(&AnalyticsModule{})
}

func (m *AnalyticsModule) Name() string {
	return "analytics"
}

func (m *AnalyticsModule) Priority() int {
	return 50
}

func (m *AnalyticsModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewAnalyticsRepository(ctx.Sites)
	svc := service.NewAnalyticsService(repo, ctx.Sites, ctx.Cache, ctx.Metrics)
	h := handler.NewAnalyticsHandler(svc)

	ctx.Dashboard.GET("/sites/:site/stats", middleware.RequireSite(ctx.Sites), h.Overview)
	ctx.Dashboard.GET("/analytics", h.CrossSite)
	return nil
}
