package common

import (
	"context"
	"sweeps_admin/internal/domain/common/handler"
	"sweeps_admin/internal/pkg/registry"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/database"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/metrics"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// CommonModule 通用功能模块
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100 // 最后初始化
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	checks := map[string]handler.Check{}
	if ctx.Redis != nil {
		checks["redis"] = func(c context.Context) error { return ctx.Redis.Ping(c).Err() }
	}
	for _, site := range ctx.Sites.List() {
		checks["db:"+site.ID] = func(c context.Context) error { return database.Ping(c, site.DB) }
	}
	h := handler.NewSystemHandler(ctx.Sites, checks)

	// 注册通用路由
	setupRoutes(ctx.Router, ctx.Dashboard, ctx.Metrics, h)

	// 定时上报各站点连接池指标
	_, err := ctx.Scheduler.NewJob(
		gocron.DurationJob(15*time.Second),
		gocron.NewTask(recordPoolStats, ctx.Sites, ctx.Metrics),
		gocron.WithName("db-pool-stats"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func setupRoutes(r *gin.Engine, api *gin.RouterGroup, collector *metrics.MetricsCollector, h *handler.SystemHandler) {
	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(collector.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api.GET("/sites", h.Sites)
}

func recordPoolStats(sites *tenant.Registry, collector *metrics.MetricsCollector) {
	for _, site := range sites.List() {
		if _, err := database.RecordPoolStats(collector, site.ID, site.DB); err != nil {
			logger.Log.Warn("collect pool stats failed", zap.String("site", site.ID), zap.Error(err))
		}
	}
}
