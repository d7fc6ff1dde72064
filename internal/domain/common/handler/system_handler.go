package handler

import (
	"context"
	"net/http"
	"sort"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/response"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Check 依赖健康检查
type Check func(ctx context.Context) error

// SiteLister 站点列表
type SiteLister interface {
	List() []*tenant.Site
}

// SystemHandler 健康检查与站点信息
type SystemHandler struct {
	sites  SiteLister
	checks map[string]Check
}

func NewSystemHandler(sites SiteLister, checks map[string]Check) *SystemHandler {
	return &SystemHandler{sites: sites, checks: checks}
}

// HealthStatus 健康检查结果
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Health 健康检查
// @Summary 健康检查（Redis 与各站点数据库）
// @Tags System
// @Produce json
// @Success 200 {object} HealthStatus
// @Failure 503 {object} HealthStatus
// @Router /healthz [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]string, len(names))
	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			if err := h.checks[name](ctx); err != nil {
				logger.Log.Warn("health check failed", zap.String("check", name), zap.Error(err))
				results[i] = err.Error()
				return err
			}
			results[i] = "ok"
			return nil
		})
	}
	healthy := g.Wait() == nil

	status := HealthStatus{Status: "ok", Checks: make(map[string]string, len(names))}
	for i, name := range names {
		status.Checks[name] = results[i]
	}
	if !healthy {
		status.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Sites 站点列表
// @Summary 已配置的站点
// @Tags System
// @Produce json
// @Success 200 {object} response.Response{data=[]tenant.Site}
// @Router /api/sites [get]
func (h *SystemHandler) Sites(c *gin.Context) {
	response.Success(c, h.sites.List())
}
