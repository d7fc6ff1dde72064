package uploader

import (
	"sweeps_admin/internal/pkg/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestS3PublicURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.StorageConfig
		want string
	}{
		{
			name: "cdn base url",
			cfg:  config.StorageConfig{Bucket: "giveaway-images", PublicBaseURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/ai-generated/a.png",
		},
		{
			name: "custom endpoint",
			cfg:  config.StorageConfig{Bucket: "giveaway-images", Endpoint: "https://acc.r2.cloudflarestorage.com"},
			want: "https://acc.r2.cloudflarestorage.com/giveaway-images/ai-generated/a.png",
		},
		{
			name: "aws default",
			cfg:  config.StorageConfig{Bucket: "giveaway-images", Region: "eu-west-1"},
			want: "https://giveaway-images.s3.eu-west-1.amazonaws.com/ai-generated/a.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &S3Uploader{config: tt.cfg}
			assert.Equal(t, tt.want, u.publicURL("ai-generated/a.png"))
		})
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(config.StorageConfig{Driver: "ftp"})
	assert.Error(t, err)
}
