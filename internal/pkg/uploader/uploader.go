package uploader

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"sweeps_admin/internal/pkg/config"
)

// Uploader 对象存储：按 key 上传并返回公开访问 URL
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// New 根据站点存储配置创建 Uploader
func New(cfg config.StorageConfig) (Uploader, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Uploader(cfg)
	case "oss":
		return NewAliyunOSSUploader(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// UploadFileHeader 上传表单文件
func UploadFileHeader(ctx context.Context, u Uploader, fh *multipart.FileHeader, key string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	return u.Upload(ctx, key, src, fh.Size, fh.Header.Get("Content-Type"))
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
