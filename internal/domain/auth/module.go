package auth

import (
	"sweeps_admin/internal/domain/auth/handler"
	"sweeps_admin/internal/domain/auth/repository"
	"sweeps_admin/internal/domain/auth/service"
	"sweeps_admin/internal/pkg/middleware"
	"sweeps_admin/internal/pkg/registry"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// AuthModule 管理员登录模块
type AuthModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&AuthModule{})
}

func (m *AuthModule) Name() string {
	return "auth"
}

func (m *AuthModule) Priority() int {
	// 认证模块优先级最高
	return 1
}

func (m *AuthModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	repo := repository.NewAdminUserRepository(ctx.Sites)
	svc := service.NewAuthService(repo, ctx.Sessions, ctx.Config.AdminSite())
	h := handler.NewAuthHandler(svc, ctx.Cookie, ctx.Sessions.TTL())

	// 2. 路由注册，登录接口按 IP 限流防暴力破解
	limiter := middleware.NewIPRateLimiter(rate.Every(6*time.Second), 5)
	setupRoutes(ctx.Router, middleware.RateLimitMiddleware(limiter), ctx.Gate, h)

	return nil
}

func setupRoutes(r *gin.Engine, limit, gate gin.HandlerFunc, h *handler.AuthHandler) {
	// 公开路由
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", limit, h.Login)
		authGroup.POST("/logout", h.Logout)
	}

	// 受保护的路由
	authGroup.GET("/me", gate, h.Me)
}
