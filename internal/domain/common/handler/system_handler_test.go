package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sweeps_admin/internal/pkg/tenant"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type staticSites []*tenant.Site

func (s staticSites) List() []*tenant.Site { return s }

func serve(h *SystemHandler, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", h.Health)
	r.GET("/api/sites", h.Sites)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }

	t.Run("all dependencies up", func(t *testing.T) {
		h := NewSystemHandler(nil, map[string]Check{"redis": ok, "db:sweepsfan": ok})

		w := serve(h, "/healthz")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","checks":{"redis":"ok","db:sweepsfan":"ok"}}`, w.Body.String())
	})

	t.Run("one database down", func(t *testing.T) {
		h := NewSystemHandler(nil, map[string]Check{
			"redis":        ok,
			"db:sweepsfan": func(context.Context) error { return errors.New("connection refused") },
		})

		w := serve(h, "/healthz")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"db:sweepsfan":"connection refused"`)
		assert.Contains(t, w.Body.String(), `"status":"degraded"`)
	})
}

func TestSitesHidesConnections(t *testing.T) {
	h := NewSystemHandler(staticSites{{ID: "sweepsfan", Name: "SweepsFan", URL: "https://sweepsfan.example.com", Color: "purple"}}, nil)

	w := serve(h, "/api/sites")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"sweepsfan"`)
	assert.Contains(t, w.Body.String(), `"color":"purple"`)
	assert.NotContains(t, w.Body.String(), "DB")
}
