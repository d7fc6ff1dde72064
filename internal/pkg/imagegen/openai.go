package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sweeps_admin/internal/pkg/config"
	"time"

	"github.com/sashabaranov/go-openai"
)

var (
	// ErrDisabled 未配置 API Key
	ErrDisabled = errors.New("image generation is not configured")
	// ErrEmptyImage 接口返回成功但没有图片数据
	ErrEmptyImage = errors.New("image generation returned no data")
)

const maxImageBytes = 20 << 20

// Generator 根据提示词生成 PNG 图片
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// OpenAIGenerator OpenAI 图片接口
type OpenAIGenerator struct {
	client     *openai.Client
	httpClient *http.Client
	model      string
	size       string
}

func NewOpenAIGenerator(cfg config.OpenAIConfig) *OpenAIGenerator {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = httpClient

	g := &OpenAIGenerator{
		httpClient: httpClient,
		model:      cfg.Model,
		size:       cfg.Size,
	}
	if cfg.Enabled() {
		g.client = openai.NewClientWithConfig(clientCfg)
	}
	return g
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if g.client == nil {
		return nil, ErrDisabled
	}

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.model,
		Size:           g.size,
		N:              1,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, ErrEmptyImage
	}

	img := resp.Data[0]
	switch {
	case img.B64JSON != "":
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decode image payload: %w", err)
		}
		return data, nil
	case img.URL != "":
		return g.download(ctx, img.URL)
	default:
		return nil, ErrEmptyImage
	}
}

// download 部分兼容网关忽略 response_format，只返回临时 URL
func (g *OpenAIGenerator) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	return data, nil
}
