package content

import (
	"sweeps_admin/internal/domain/content/handler"
	"sweeps_admin/internal/domain/content/service"
	"sweeps_admin/internal/pkg/imagegen"
	"sweeps_admin/internal/pkg/middleware"
	"sweeps_admin/internal/pkg/registry"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ContentModule 活动文案、主图生成与图片上传
type ContentModule struct{}

func init() {
	registry.Register(&ContentModule{})
}

func (m *ContentModule) Name() string {
	return "content"
}

func (m *ContentModule) Priority() int {
	return 40
}

func (m *ContentModule) Init(ctx *registry.ModuleContext) error {
	var generator imagegen.Generator
	if ctx.Config.OpenAI.Enabled() {
		generator = imagegen.NewOpenAIGenerator(ctx.Config.OpenAI)
	}
	svc := service.NewContentService(ctx.Sites, generator, ctx.Metrics)
	h := handler.NewContentHandler(svc)

	// 生成接口调用外部服务，按 IP 限流：每秒 1 次，突发 5 次
	limiter := middleware.NewIPRateLimiter(rate.Limit(1), 5)
	setupRoutes(ctx.Dashboard, middleware.RateLimitMiddleware(limiter), h)
	return nil
}

func setupRoutes(api *gin.RouterGroup, limit gin.HandlerFunc, h *handler.ContentHandler) {
	g := api.Group("", limit)
	{
		g.POST("/generate-description", h.GenerateDescription)
		g.POST("/generate-image", h.GenerateImage)
		g.POST("/upload-image", h.UploadImage)
	}
}
