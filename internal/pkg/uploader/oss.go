package uploader

import (
	"context"
	"fmt"
	"io"
	"sweeps_admin/internal/pkg/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type AliyunOSSUploader struct {
	bucket *oss.Bucket
	config config.StorageConfig
}

func NewAliyunOSSUploader(cfg config.StorageConfig) (*AliyunOSSUploader, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, err
	}

	return &AliyunOSSUploader{
		bucket: bucket,
		config: cfg,
	}, nil
}

func (u *AliyunOSSUploader) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	opts := []oss.Option{oss.WithContext(ctx), oss.CacheControl("max-age=3600")}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}

	if err := u.bucket.PutObject(key, body, opts...); err != nil {
		return "", fmt.Errorf("failed to upload to oss: %w", err)
	}

	// Note: bucket is expected to be public-read or fronted by a CDN (public_base_url).
	if u.config.PublicBaseURL != "" {
		return joinURL(u.config.PublicBaseURL, key), nil
	}
	return fmt.Sprintf("https://%s.%s/%s", u.config.Bucket, u.config.Endpoint, key), nil
}
