package handler

import (
	"errors"
	"net/http"
	"sweeps_admin/internal/domain/entry/model"
	"sweeps_admin/internal/domain/entry/service"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/response"
	"sweeps_admin/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EntryHandler 参与记录处理器
type EntryHandler struct {
	service service.EntryService
}

// NewEntryHandler 创建处理器
func NewEntryHandler(service service.EntryService) *EntryHandler {
	return &EntryHandler{service: service}
}

// List 参与记录列表
// @Summary 参与记录列表（分页）
// @Tags Entries
// @Produce json
// @Param site path string true "Site ID"
// @Param giveaway_id query string false "Giveaway ID"
// @Param email query string false "Email contains (case-insensitive)"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 50, max 100)"
// @Success 200 {object} response.Response{data=service.ListResult}
// @Router /api/sites/{site}/entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	var filter model.Filter
	var page utils.Pagination
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), c.Param("site"), filter, page)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, result)
}

// Export 导出 CSV
// @Summary 导出参与记录 CSV
// @Tags Entries
// @Produce text/csv
// @Param site path string true "Site ID"
// @Param giveaway_id query string false "Giveaway ID"
// @Param email query string false "Email contains (case-insensitive)"
// @Success 200 {file} file
// @Router /api/sites/{site}/entries/export [get]
func (h *EntryHandler) Export(c *gin.Context) {
	var filter model.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	site := c.Param("site")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+h.service.ExportFilename(site)+`"`)
	c.Status(http.StatusOK)

	// 已开始写响应体，出错时只能记录日志并中断
	if err := h.service.Export(c.Request.Context(), site, filter, c.Writer); err != nil {
		logger.Log.Error("export entries failed", zap.String("site", site), zap.Error(err))
		_ = c.Error(err)
	}
}

func (h *EntryHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, tenant.ErrUnknownSite) {
		response.Error(c, http.StatusNotFound, response.ErrSiteNotFound, "Unknown site")
		return
	}
	logger.Log.Error("entry request failed", zap.String("site", c.Param("site")), zap.Error(err))
	response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
}
