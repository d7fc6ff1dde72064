package entry

import (
	"sweeps_admin/internal/domain/entry/handler"
	"sweeps_admin/internal/domain/entry/repository"
	"sweeps_admin/internal/domain/entry/service"
	"sweeps_admin/internal/pkg/middleware"
	"sweeps_admin/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// EntryModule 参与记录模块（只读）
type EntryModule struct{}

func init() {
	registry.Register(&EntryModule{})
}

func (m *EntryModule) Name() string {
	return "entry"
}

func (m *EntryModule) Priority() int {
	return 20
}

func (m *EntryModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewEntryRepository(ctx.Sites)
	svc := service.NewEntryService(repo)
	h := handler.NewEntryHandler(svc)

	setupRoutes(ctx.Dashboard, middleware.RequireSite(ctx.Sites), h)
	return nil
}

func setupRoutes(api *gin.RouterGroup, requireSite gin.HandlerFunc, h *handler.EntryHandler) {
	g := api.Group("/sites/:site/entries", requireSite)
	{
		g.GET("", h.List)
		g.GET("/export", h.Export)
	}
}
