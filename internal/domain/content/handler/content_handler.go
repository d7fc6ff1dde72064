package handler

import (
	"errors"
	"net/http"
	"strings"
	"sweeps_admin/internal/domain/content/model"
	"sweeps_admin/internal/domain/content/service"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContentHandler 文案与图片处理器
type ContentHandler struct {
	service service.ContentService
}

// NewContentHandler 创建处理器
func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// GenerateDescription 生成活动文案
// @Summary 生成活动文案
// @Tags Content
// @Accept json
// @Produce json
// @Param body body model.DescriptionRequest true "description_1 | description_2"
// @Success 200 {object} response.Response{data=model.DescriptionResult}
// @Router /api/generate-description [post]
func (h *ContentHandler) GenerateDescription(c *gin.Context) {
	var req model.DescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Missing required parameters")
		return
	}

	text, err := h.service.GenerateDescription(req.Type, req.GiveawayData)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, model.DescriptionResult{Description: text})
}

// GenerateImage 生成活动主图
// @Summary 生成活动主图（失败时返回占位图）
// @Tags Content
// @Accept json
// @Produce json
// @Param body body model.ImageRequest true "Giveaway draft"
// @Success 200 {object} response.Response{data=model.ImageResult}
// @Router /api/generate-image [post]
func (h *ContentHandler) GenerateImage(c *gin.Context) {
	var req model.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Missing giveaway data")
		return
	}

	result, err := h.service.GenerateImage(c.Request.Context(), req.Site, req.GiveawayData)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, result)
}

// UploadImage 上传活动图片
// @Summary 上传活动图片
// @Tags Content
// @Accept multipart/form-data
// @Produce json
// @Param siteId formData string true "Site ID"
// @Param file formData file true "JPEG, PNG, WebP or GIF, max 5MB"
// @Success 200 {object} response.Response{data=model.UploadResult}
// @Router /api/upload-image [post]
func (h *ContentHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, service.MaxUploadSize+1<<20)

	file, err := c.FormFile("file")
	if err != nil {
		// 请求体超过 MaxBytesReader 上限时表单解析失败，按文件过大处理
		if errors.As(err, new(*http.MaxBytesError)) {
			h.handleError(c, service.ErrFileTooLarge)
			return
		}
		response.Error(c, http.StatusBadRequest, response.ErrInvalidUpload, "No file provided")
		return
	}
	site := c.PostForm("siteId")
	if site == "" {
		response.Error(c, http.StatusBadRequest, response.ErrSiteNotFound, "Invalid site ID")
		return
	}

	result, err := h.service.UploadImage(c.Request.Context(), site, file)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *ContentHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidKind):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Invalid description type")
	case errors.Is(err, service.ErrInvalidUpload):
		msg := strings.TrimPrefix(err.Error(), service.ErrInvalidUpload.Error()+": ")
		response.Error(c, http.StatusBadRequest, response.ErrInvalidUpload, msg)
	case errors.Is(err, tenant.ErrUnknownSite):
		response.Error(c, http.StatusBadRequest, response.ErrSiteNotFound, "Invalid site ID")
	case errors.Is(err, service.ErrUploadFailed):
		response.Error(c, http.StatusInternalServerError, response.ErrUploadFailed, "Failed to upload image")
	default:
		logger.Log.Error("content request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Internal server error")
	}
}
