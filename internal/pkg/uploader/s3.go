package uploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sweeps_admin/internal/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader S3 兼容存储 (AWS S3 / Cloudflare R2 / MinIO)
type S3Uploader struct {
	client *s3.Client
	config config.StorageConfig
}

func NewS3Uploader(cfg config.StorageConfig) (*S3Uploader, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.AccessKeySecret, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{client: client, config: cfg}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	buf := new(bytes.Buffer)
	if size > 0 {
		buf.Grow(int(size))
	}
	if _, err := io.Copy(buf, body); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		CacheControl:  aws.String("max-age=3600"),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}

	return u.publicURL(key), nil
}

func (u *S3Uploader) publicURL(key string) string {
	switch {
	case u.config.PublicBaseURL != "":
		return joinURL(u.config.PublicBaseURL, key)
	case u.config.Endpoint != "":
		return joinURL(joinURL(u.config.Endpoint, u.config.Bucket), key)
	default:
		region := u.config.Region
		if region == "" || region == "auto" {
			region = "us-east-1"
		}
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.config.Bucket, region, key)
	}
}
