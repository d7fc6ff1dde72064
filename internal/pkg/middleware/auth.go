package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sweeps_admin/internal/pkg/session"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextAdminKey 网关通过后写入 gin.Context 的管理员身份
const ContextAdminKey = "admin"

// CookieConfig 会话 cookie 设置
type CookieConfig struct {
	Name      string
	Domain    string
	Secure    bool
	LoginPath string
}

// Decision 网关策略结果
type Decision int

const (
	Allow Decision = iota
	// Deny 没有会话或会话已失效
	Deny
	// DenyAndRevoke 身份不在白名单中，需要强制下线
	DenyAndRevoke
)

// Authorize 网关策略：解析会话并检查白名单
func Authorize(ctx context.Context, sessions *session.Manager, token string) (*session.Identity, Decision) {
	identity, err := sessions.Resolve(ctx, token)
	if err != nil {
		if !errors.Is(err, session.ErrInvalidSession) {
			logger.Log.Error("resolve session failed", zap.Error(err))
		}
		return nil, Deny
	}
	if !sessions.Allowed(identity.Email) {
		return identity, DenyAndRevoke
	}
	return identity, Allow
}

// AdminGate 管理后台网关中间件，在所有后台处理器之前执行
func AdminGate(sessions *session.Manager, cfg CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cfg.Name)

		identity, decision := Authorize(c.Request.Context(), sessions, token)
		switch decision {
		case Allow:
			c.Set(ContextAdminKey, identity)
			c.Next()
			return
		case DenyAndRevoke:
			if err := sessions.Revoke(c.Request.Context(), identity.SessionID); err != nil {
				logger.Log.Error("revoke session failed", zap.Error(err))
			}
			logger.Log.Warn("session outside admin allow-list terminated", zap.String("email", identity.Email))
			ClearSessionCookie(c, cfg)
		}

		if isBrowserNavigation(c.Request) {
			c.Redirect(http.StatusFound, cfg.LoginPath)
			c.Abort()
			return
		}
		response.AbortWithError(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Authentication required")
	}
}

// CurrentAdmin 获取网关写入的管理员身份
func CurrentAdmin(c *gin.Context) (*session.Identity, bool) {
	v, ok := c.Get(ContextAdminKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*session.Identity)
	return identity, ok
}

// SetSessionCookie 写入会话 cookie
func SetSessionCookie(c *gin.Context, cfg CookieConfig, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, token, maxAge, "/", cfg.Domain, cfg.Secure, true)
}

// ClearSessionCookie 清除会话 cookie
func ClearSessionCookie(c *gin.Context, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, "", -1, "/", cfg.Domain, cfg.Secure, true)
}

func isBrowserNavigation(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// SiteLookup 站点是否存在
type SiteLookup interface {
	Get(id string) (*tenant.Site, error)
}

// RequireSite 校验路径中的 :site 参数
func RequireSite(sites SiteLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := sites.Get(c.Param("site")); err != nil {
			response.AbortWithError(c, http.StatusNotFound, response.ErrSiteNotFound, "Unknown site")
			return
		}
		c.Next()
	}
}
