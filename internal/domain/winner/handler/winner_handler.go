package handler

import (
	"errors"
	"net/http"
	"sweeps_admin/internal/domain/winner/service"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WinnerHandler 中奖处理器
type WinnerHandler struct {
	service service.WinnerService
}

// NewWinnerHandler 创建处理器
func NewWinnerHandler(service service.WinnerService) *WinnerHandler {
	return &WinnerHandler{service: service}
}

// List 中奖记录
// @Summary 中奖记录（按抽奖时间倒序）
// @Tags Winners
// @Produce json
// @Param site path string true "Site ID"
// @Param giveaway_id query string false "Giveaway ID"
// @Success 200 {object} response.Response{data=[]model.Winner}
// @Router /api/sites/{site}/winners [get]
func (h *WinnerHandler) List(c *gin.Context) {
	winners, err := h.service.List(c.Request.Context(), c.Param("site"), c.Query("giveaway_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, winners)
}

// Draw 抽奖
// @Summary 为活动抽取一名中奖者
// @Description 没有参与记录、全部已中奖、重复中奖、抽奖进行中都以 HTTP 200 + 非 0 业务码返回
// @Tags Winners
// @Produce json
// @Param site path string true "Site ID"
// @Param id path string true "Giveaway ID"
// @Success 200 {object} response.Response{data=model.Winner}
// @Router /api/sites/{site}/giveaways/{id}/draw [post]
func (h *WinnerHandler) Draw(c *gin.Context) {
	winner, err := h.service.Draw(c.Request.Context(), c.Param("site"), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, winner)
}

// MarkNotified 标记已通知
// @Summary 标记中奖者已通知
// @Tags Winners
// @Produce json
// @Param site path string true "Site ID"
// @Param id path string true "Winner ID"
// @Success 200 {object} response.Response{data=model.Winner}
// @Router /api/sites/{site}/winners/{id}/notified [post]
func (h *WinnerHandler) MarkNotified(c *gin.Context) {
	winner, err := h.service.MarkNotified(c.Request.Context(), c.Param("site"), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, winner)
}

// MarkClaimed 标记已领奖
// @Summary 标记中奖者已领奖
// @Tags Winners
// @Produce json
// @Param site path string true "Site ID"
// @Param id path string true "Winner ID"
// @Success 200 {object} response.Response{data=model.Winner}
// @Router /api/sites/{site}/winners/{id}/claimed [post]
func (h *WinnerHandler) MarkClaimed(c *gin.Context) {
	winner, err := h.service.MarkClaimed(c.Request.Context(), c.Param("site"), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, winner)
}

func (h *WinnerHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoEntries):
		response.Fail(c, response.ErrNoEntries, "No entries found for this giveaway")
	case errors.Is(err, service.ErrNoEligibleEntries):
		response.Fail(c, response.ErrNoEligibleEntries, "No eligible entries. All participants have already won.")
	case errors.Is(err, service.ErrAlreadyWon):
		response.Fail(c, response.ErrAlreadyWon, "This entry has already won this giveaway")
	case errors.Is(err, service.ErrDrawInProgress):
		response.Fail(c, response.ErrDrawInProgress, "A draw for this giveaway is already in progress")
	case errors.Is(err, service.ErrGiveawayNotFound):
		response.Error(c, http.StatusNotFound, response.ErrGiveawayNotFound, "Giveaway not found")
	case errors.Is(err, service.ErrWinnerNotFound):
		response.Error(c, http.StatusNotFound, response.ErrWinnerNotFound, "Winner not found")
	case errors.Is(err, tenant.ErrUnknownSite):
		response.Error(c, http.StatusNotFound, response.ErrSiteNotFound, "Unknown site")
	default:
		logger.Log.Error("winner request failed", zap.String("site", c.Param("site")), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Failed to select winner")
	}
}
