package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sweeps_admin/internal/pkg/session"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCookie = CookieConfig{Name: "sweeps_session", LoginPath: "/login"}

func setupGate(t *testing.T, allow ...string) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewManager(session.NewMemoryStore(), []byte("0123456789abcdef0123456789abcdef"), time.Hour, allow)

	r := gin.New()
	api := r.Group("/api", AdminGate(sessions, testCookie))
	api.GET("/sites", func(c *gin.Context) {
		admin, ok := CurrentAdmin(c)
		require.True(t, ok)
		c.String(http.StatusOK, admin.Email)
	})
	return r, sessions
}

func TestAdminGate(t *testing.T) {
	r, sessions := setupGate(t, "admin@example.com")
	ctx := context.Background()

	t.Run("no cookie returns 401 for api calls", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/sites", nil)
		req.Header.Set("Accept", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":10004`)
	})

	t.Run("no cookie redirects browser navigation", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/sites", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("valid admin session passes", func(t *testing.T) {
		token, _, err := sessions.Issue(ctx, "admin@example.com")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/sites", nil)
		req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin@example.com", w.Body.String())
	})

	t.Run("revoked session is rejected", func(t *testing.T) {
		token, identity, err := sessions.Issue(ctx, "admin@example.com")
		require.NoError(t, err)
		require.NoError(t, sessions.Revoke(ctx, identity.SessionID))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/sites", nil)
		req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("identity outside allow-list is terminated", func(t *testing.T) {
		token, _, err := sessions.Issue(ctx, "former-admin@example.com")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/sites", nil)
		req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: token})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), testCookie.Name+"=;")

		// 会话已被吊销，即使之后加入白名单也不能复用
		_, err = sessions.Resolve(ctx, token)
		assert.ErrorIs(t, err, session.ErrInvalidSession)
	})
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewManager(session.NewMemoryStore(), []byte("0123456789abcdef0123456789abcdef"), time.Hour, []string{"admin@example.com"})

	_, decision := Authorize(ctx, sessions, "")
	assert.Equal(t, Deny, decision)

	token, _, err := sessions.Issue(ctx, "admin@example.com")
	require.NoError(t, err)
	identity, decision := Authorize(ctx, sessions, token)
	assert.Equal(t, Allow, decision)
	assert.Equal(t, "admin@example.com", identity.Email)

	token, _, err = sessions.Issue(ctx, "someone@example.com")
	require.NoError(t, err)
	_, decision = Authorize(ctx, sessions, token)
	assert.Equal(t, DenyAndRevoke, decision)
}
