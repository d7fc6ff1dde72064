package handler

import (
	"errors"
	"net/http"
	"sweeps_admin/internal/domain/giveaway/model"
	"sweeps_admin/internal/domain/giveaway/service"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GiveawayHandler 活动处理器
type GiveawayHandler struct {
	service service.GiveawayService
}

// NewGiveawayHandler 创建处理器
func NewGiveawayHandler(service service.GiveawayService) *GiveawayHandler {
	return &GiveawayHandler{service: service}
}

// List 活动列表
// @Summary 活动列表
// @Tags Giveaways
// @Produce json
// @Param site path string true "Site ID"
// @Param status query string false "all | active | ended"
// @Success 200 {object} response.Response{data=[]model.GiveawayWithCount}
// @Router /api/sites/{site}/giveaways [get]
func (h *GiveawayHandler) List(c *gin.Context) {
	giveaways, err := h.service.List(c.Request.Context(), c.Param("site"), model.Status(c.Query("status")))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, giveaways)
}

// ListActive 进行中的活动
// @Summary 进行中的活动（按结束时间升序）
// @Tags Giveaways
// @Produce json
// @Param site path string true "Site ID"
// @Success 200 {object} response.Response{data=[]model.Giveaway}
// @Router /api/sites/{site}/giveaways/active [get]
func (h *GiveawayHandler) ListActive(c *gin.Context) {
	giveaways, err := h.service.ListActive(c.Request.Context(), c.Param("site"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, giveaways)
}

// Get 活动详情
// @Summary 活动详情
// @Tags Giveaways
// @Produce json
// @Param site path string true "Site ID"
// @Param id path string true "Giveaway ID"
// @Success 200 {object} response.Response{data=model.GiveawayWithCount}
// @Router /api/sites/{site}/giveaways/{id} [get]
func (h *GiveawayHandler) Get(c *gin.Context) {
	giveaway, err := h.service.Get(c.Request.Context(), c.Param("site"), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, giveaway)
}

// Create 创建活动
// @Summary 创建活动
// @Tags Giveaways
// @Accept json
// @Produce json
// @Param site path string true "Site ID"
// @Param body body model.GiveawayInput true "Giveaway"
// @Success 200 {object} response.Response{data=model.Giveaway}
// @Router /api/sites/{site}/giveaways [post]
func (h *GiveawayHandler) Create(c *gin.Context) {
	var input model.GiveawayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	giveaway, err := h.service.Create(c.Request.Context(), c.Param("site"), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, giveaway)
}

// Update 更新活动
// @Summary 更新活动（部分字段）
// @Tags Giveaways
// @Accept json
// @Produce json
// @Param site path string true "Site ID"
// @Param id path string true "Giveaway ID"
// @Param body body model.GiveawayInput true "Changed fields"
// @Success 200 {object} response.Response{data=model.Giveaway}
// @Router /api/sites/{site}/giveaways/{id} [put]
func (h *GiveawayHandler) Update(c *gin.Context) {
	var input model.GiveawayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	giveaway, err := h.service.Update(c.Request.Context(), c.Param("site"), c.Param("id"), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, giveaway)
}

// Delete 删除活动
// @Summary 删除活动（级联删除参与和中奖记录）
// @Tags Giveaways
// @Produce json
// @Param site path string true "Site ID"
// @Param id path string true "Giveaway ID"
// @Success 200 {object} response.Response{data=bool}
// @Router /api/sites/{site}/giveaways/{id} [delete]
func (h *GiveawayHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("site"), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, true)
}

func (h *GiveawayHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidGiveaway):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	case errors.Is(err, service.ErrGiveawayNotFound):
		response.Error(c, http.StatusNotFound, response.ErrGiveawayNotFound, "Giveaway not found")
	case errors.Is(err, service.ErrSlugTaken):
		response.Error(c, http.StatusConflict, response.ErrSlugTaken, "Slug is already used by another giveaway")
	case errors.Is(err, tenant.ErrUnknownSite):
		response.Error(c, http.StatusNotFound, response.ErrSiteNotFound, "Unknown site")
	default:
		logger.Log.Error("giveaway request failed", zap.String("site", c.Param("site")), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
	}
}
