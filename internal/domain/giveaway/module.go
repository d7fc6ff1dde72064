package giveaway

import (
	"context"
	"sweeps_admin/internal/domain/giveaway/handler"
	"sweeps_admin/internal/domain/giveaway/repository"
	"sweeps_admin/internal/domain/giveaway/service"
	"sweeps_admin/internal/pkg/middleware"
	"sweeps_admin/internal/pkg/registry"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/metrics"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// GiveawayModule 抽奖活动模块
type GiveawayModule struct{}

func init() {
	registry.Register(&GiveawayModule{})
}

func (m *GiveawayModule) Name() string {
	return "giveaway"
}

func (m *GiveawayModule) Priority() int {
	return 10
}

func (m *GiveawayModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	repo := repository.NewGiveawayRepository(ctx.Sites)
	svc := service.NewGiveawayService(repo)
	h := handler.NewGiveawayHandler(svc)

	// 2. 路由注册
	setupRoutes(ctx.Dashboard, ctx.Sites, h)

	// 3. 定时任务：自动关闭已结束的活动
	return scheduleCloseExpired(ctx, svc)
}

func setupRoutes(api *gin.RouterGroup, sites *tenant.Registry, h *handler.GiveawayHandler) {
	g := api.Group("/sites/:site/giveaways", middleware.RequireSite(sites))
	{
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/active", h.ListActive)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
	}
}

func scheduleCloseExpired(ctx *registry.ModuleContext, svc service.GiveawayService) error {
	interval := ctx.Config.Scheduler.CloseExpiredInterval
	if interval <= 0 {
		interval = time.Minute
	}

	_, err := ctx.Scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(closeExpired, ctx.Sites, svc, ctx.Metrics),
		gocron.WithName("close-expired-giveaways"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	return err
}

func closeExpired(sites *tenant.Registry, svc service.GiveawayService, collector *metrics.MetricsCollector) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, site := range sites.List() {
		n, err := svc.CloseExpired(ctx, site.ID)
		if err != nil {
			logger.Log.Error("close expired giveaways failed", zap.String("site", site.ID), zap.Error(err))
			continue
		}
		if n > 0 {
			collector.RecordGiveawaysClosed(site.ID, n)
			logger.Log.Info("expired giveaways closed", zap.String("site", site.ID), zap.Int64("count", n))
		}
	}
}
