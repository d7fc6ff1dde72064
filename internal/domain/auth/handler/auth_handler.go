package handler

import (
	"errors"
	"net/http"
	"sweeps_admin/internal/domain/auth/model"
	"sweeps_admin/internal/domain/auth/service"
	"sweeps_admin/internal/pkg/middleware"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/response"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 登录处理器
type AuthHandler struct {
	service service.AuthService
	cookie  middleware.CookieConfig
	ttl     time.Duration
}

// NewAuthHandler 创建处理器
func NewAuthHandler(service service.AuthService, cookie middleware.CookieConfig, ttl time.Duration) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie, ttl: ttl}
}

// Login 管理员登录
// @Summary 管理员登录，成功后写入 HttpOnly 会话 cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body model.LoginInput true "Credentials"
// @Success 200 {object} response.Response{data=session.Identity}
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input model.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	token, identity, err := h.service.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, "Invalid email or password")
		case errors.Is(err, service.ErrNotAllowed):
			middleware.ClearSessionCookie(c, h.cookie)
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Access denied. Your account is not authorized to access the admin dashboard.")
		default:
			logger.Log.Error("admin login failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
		}
		return
	}

	middleware.SetSessionCookie(c, h.cookie, token, int(h.ttl.Seconds()))
	response.Success(c, identity)
}

// Logout 退出登录
// @Summary 退出登录
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response{data=bool}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		logger.Log.Error("admin logout failed", zap.Error(err))
	}
	middleware.ClearSessionCookie(c, h.cookie)
	response.Success(c, true)
}

// Me 当前登录的管理员
// @Summary 当前登录的管理员
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response{data=session.Identity}
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentAdmin(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Authentication required")
		return
	}
	response.Success(c, identity)
}
