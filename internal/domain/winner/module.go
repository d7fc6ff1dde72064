package winner

import (
	analyticsModel "sweeps_admin/internal/domain/analytics/model"
	entryRepo "sweeps_admin/internal/domain/entry/repository"
	giveawayRepo "sweeps_admin/internal/domain/giveaway/repository"
	"sweeps_admin/internal/domain/winner/draw"
	"sweeps_admin/internal/domain/winner/handler"
	"sweeps_admin/internal/domain/winner/repository"
	"sweeps_admin/internal/domain/winner/service"
	"sweeps_admin/internal/pkg/middleware"
	"sweeps_admin/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// WinnerModule 抽奖与中奖管理模块
type WinnerModule struct{}

func init() {
	registry.Register(&WinnerModule{})
}

func (m *WinnerModule) Name() string {
	return "winner"
}

func (m *WinnerModule) Priority() int {
	// 依赖活动与参与记录的数据
	return 30
}

func (m *WinnerModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	repo := repository.NewWinnerRepository(ctx.Sites)
	svc := service.NewWinnerService(
		repo,
		entryRepo.NewEntryRepository(ctx.Sites),
		giveawayRepo.NewGiveawayRepository(ctx.Sites),
		ctx.Locker,
		draw.NewSelector(),
		ctx.Metrics,
	)
	// 抽奖成功后跨站点统计立即失效
	svc = service.NewStatsInvalidatingService(svc, ctx.Cache, analyticsModel.CrossSiteCacheKey)
	h := handler.NewWinnerHandler(svc)

	// 2. 路由注册
	setupRoutes(ctx.Dashboard, middleware.RequireSite(ctx.Sites), h)
	return nil
}

func setupRoutes(api *gin.RouterGroup, requireSite gin.HandlerFunc, h *handler.WinnerHandler) {
	api.POST("/sites/:site/giveaways/:id/draw", requireSite, h.Draw)

	g := api.Group("/sites/:site/winners", requireSite)
	{
		g.GET("", h.List)
		g.POST("/:id/notified", h.MarkNotified)
		g.POST("/:id/claimed", h.MarkClaimed)
	}
}
