package handler

import (
	"errors"
	"net/http"
	"sweeps_admin/internal/domain/analytics/service"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Overview 站点概览
// @Summary 站点仪表盘概览
// @Tags Analytics
// @Produce json
// @Param site path string true "Site ID"
// @Success 200 {object} response.Response{data=model.Overview}
// @Router /api/sites/{site}/stats [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context(), c.Param("site"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, overview)
}

// CrossSite 跨站点对比
// @Summary 跨站点对比（缓存 60 秒）
// @Tags Analytics
// @Produce json
// @Param refresh query bool false "Bypass the cache"
// @Success 200 {object} response.Response{data=model.CrossSite}
// @Router /api/analytics [get]
func (h *AnalyticsHandler) CrossSite(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Query("refresh") == "true" {
		if err := h.service.Invalidate(ctx); err != nil {
			logger.Log.Warn("analytics cache invalidation failed", zap.Error(err))
		}
	}

	result, err := h.service.CrossSite(ctx)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *AnalyticsHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, tenant.ErrUnknownSite) {
		response.Error(c, http.StatusNotFound, response.ErrSiteNotFound, "Unknown site")
		return
	}
	logger.Log.Error("analytics request failed", zap.Error(err))
	response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to load analytics")
}
