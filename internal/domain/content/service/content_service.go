package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"mime/multipart"
	"path"
	"strconv"
	"strings"
	"sweeps_admin/internal/domain/content/model"
	"sweeps_admin/internal/pkg/imagegen"
	"sweeps_admin/internal/pkg/uploader"
	"sweeps_admin/pkg/logger"
	"sweeps_admin/pkg/metrics"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// MaxUploadSize 上传图片大小上限
	MaxUploadSize = 5 << 20

	placeholderURL = "https://picsum.photos/seed/%016x/1200/630"
)

var (
	ErrInvalidKind   = errors.New("invalid description type")
	ErrInvalidUpload = errors.New("invalid upload")
	ErrUploadFailed  = errors.New("upload failed")

	// ErrFileTooLarge 超过 MaxUploadSize
	ErrFileTooLarge = fmt.Errorf("%w: file too large, maximum size is 5MB", ErrInvalidUpload)
)

var allowedImageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// StorageResolver 按站点获取对象存储
type StorageResolver interface {
	Storage(site string) (uploader.Uploader, error)
}

// ContentService 活动文案与图片服务
type ContentService interface {
	GenerateDescription(kind model.DescriptionKind, data model.GiveawayData) (string, error)
	GenerateImage(ctx context.Context, site string, data model.GiveawayData) (*model.ImageResult, error)
	UploadImage(ctx context.Context, site string, file *multipart.FileHeader) (*model.UploadResult, error)
}

type contentService struct {
	storage   StorageResolver
	generator imagegen.Generator
	metrics   *metrics.MetricsCollector
	now       func() time.Time
	intn      func(n int) int
}

// NewContentService 创建内容服务
func NewContentService(storage StorageResolver, generator imagegen.Generator, collector *metrics.MetricsCollector) ContentService {
	return &contentService{
		storage:   storage,
		generator: generator,
		metrics:   collector,
		now:       time.Now,
		intn:      rand.IntN,
	}
}

// GenerateDescription 按模板生成活动文案
func (s *contentService) GenerateDescription(kind model.DescriptionKind, data model.GiveawayData) (string, error) {
	var text string
	switch kind {
	case model.DescriptionShort:
		text = s.choose(shortTemplates)
	case model.DescriptionLong:
		text = strings.Join([]string{
			s.choose(longIntros),
			s.choose(longUses),
			s.choose(longMiddles),
			s.choose(longEntryDetails),
			wouldYouDo,
			s.choose(longClosings),
		}, "\n\n")
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return s.fill(text, data), nil
}

func (s *contentService) fill(text string, data model.GiveawayData) string {
	title := data.Title
	if title == "" {
		title = "sweepstakes"
	}
	var prize float64
	if data.PrizeValue != nil {
		prize = *data.PrizeValue
	}
	maxEntries := 1
	if data.MaxEntriesPerDay != nil && *data.MaxEntriesPerDay > 0 {
		maxEntries = *data.MaxEntriesPerDay
	}

	return strings.NewReplacer(
		"{title}", title,
		"{prize}", FormatPrize(prize),
		"{max_entries}", strconv.Itoa(maxEntries),
		"{end_date}", s.endDate(data.EndDate),
	).Replace(text)
}

// endDate 格式化为 "January 2"，无法解析时用当天
func (s *contentService) endDate(raw string) string {
	if raw != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.Format("January 2")
			}
		}
	}
	return s.now().Format("January 2")
}

// GenerateImage 生成活动主图，任何失败都降级为占位图
func (s *contentService) GenerateImage(ctx context.Context, site string, data model.GiveawayData) (*model.ImageResult, error) {
	store, err := s.storage.Storage(site)
	if err != nil {
		return nil, err
	}

	prompt := s.imagePrompt(data)
	result := &model.ImageResult{Prompt: prompt}

	url, err := s.generateAndUpload(ctx, store, prompt)
	if err != nil {
		if errors.Is(err, imagegen.ErrDisabled) {
			logger.Log.Debug("image generation disabled, using placeholder", zap.String("site", site))
		} else {
			logger.Log.Warn("image generation failed, using placeholder", zap.String("site", site), zap.Error(err))
		}
		result.ImageURL = PlaceholderURL(data)
		result.Fallback = true
	} else {
		result.ImageURL = url
	}

	if s.metrics != nil {
		s.metrics.RecordImageGeneration(site, result.Fallback)
	}
	return result, nil
}

func (s *contentService) generateAndUpload(ctx context.Context, store uploader.Uploader, prompt string) (string, error) {
	if s.generator == nil {
		return "", imagegen.ErrDisabled
	}
	img, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if len(img) == 0 {
		return "", imagegen.ErrEmptyImage
	}

	key := fmt.Sprintf("ai-generated/giveaway-%d-%s.png", s.now().UnixMilli(), randomSuffix())
	url, err := store.Upload(ctx, key, bytes.NewReader(img), int64(len(img)), "image/png")
	if err != nil {
		return "", fmt.Errorf("upload generated image: %w", err)
	}
	return url, nil
}

func (s *contentService) imagePrompt(data model.GiveawayData) string {
	name := data.PrizeName
	if name == "" {
		name = data.Title
	}
	if name == "" {
		name = "cash prize"
	}
	subject := name
	if data.PrizeValue != nil && *data.PrizeValue > 0 {
		subject = "$" + groupThousands(*data.PrizeValue) + " " + name
	}
	return fmt.Sprintf(s.choose(imagePromptTemplates), subject)
}

// PlaceholderURL 同一活动草稿总是得到同一张占位图
func PlaceholderURL(data model.GiveawayData) string {
	value := ""
	if data.PrizeValue != nil {
		value = strconv.FormatFloat(*data.PrizeValue, 'f', -1, 64)
	}
	return fmt.Sprintf(placeholderURL, xxhash.Sum64String(data.Title+"|"+value))
}

// UploadImage 校验并上传活动图片
func (s *contentService) UploadImage(ctx context.Context, site string, file *multipart.FileHeader) (*model.UploadResult, error) {
	store, err := s.storage.Storage(site)
	if err != nil {
		return nil, err
	}

	ext, err := validateImage(file)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("giveaway-%d-%s.%s", s.now().UnixMilli(), randomSuffix(), ext)
	url, err := uploader.UploadFileHeader(ctx, store, file, filename)
	if err != nil {
		logger.Log.Error("image upload failed", zap.String("site", site), zap.String("filename", filename), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	logger.Log.Info("image uploaded", zap.String("site", site), zap.String("filename", filename), zap.Int64("size", file.Size))
	return &model.UploadResult{ImageURL: url, Filename: filename}, nil
}

func validateImage(file *multipart.FileHeader) (string, error) {
	if file == nil {
		return "", fmt.Errorf("%w: no file provided", ErrInvalidUpload)
	}
	contentType := strings.ToLower(file.Header.Get("Content-Type"))
	typeExt, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: invalid file type, please upload a JPEG, PNG, WebP, or GIF image", ErrInvalidUpload)
	}
	if file.Size > MaxUploadSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(file.Filename), "."))
	switch ext {
	case "jpg", "jpeg", "png", "webp", "gif":
		return ext, nil
	default:
		return typeExt, nil
	}
}

func (s *contentService) choose(options []string) string {
	return options[s.intn(len(options))]
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
