package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sweeps_admin/internal/pkg/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *OpenAIGenerator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewOpenAIGenerator(config.OpenAIConfig{
		APIKey:         "test-key",
		BaseURL:        srv.URL + "/v1",
		Model:          "dall-e-3",
		Size:           "1792x1024",
		TimeoutSeconds: 5,
	})
}

func TestGenerateDisabled(t *testing.T) {
	g := NewOpenAIGenerator(config.OpenAIConfig{})
	_, err := g.Generate(context.Background(), "a prize")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestGenerateBase64(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	g := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "b64_json", body["response_format"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"created": 1,
			"data":    []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(png)}},
		})
	})

	data, err := g.Generate(context.Background(), "a prize")
	require.NoError(t, err)
	assert.Equal(t, png, data)
}

func TestGenerateEmptyPayload(t *testing.T) {
	g := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"created":1,"data":[]}`))
	})

	_, err := g.Generate(context.Background(), "a prize")
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestGenerateAPIError(t *testing.T) {
	g := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"content policy","type":"invalid_request_error"}}`))
	})

	_, err := g.Generate(context.Background(), "a prize")
	assert.Error(t, err)
}
