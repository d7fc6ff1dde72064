package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sweeps_admin/internal/domain/winner/model"
	"sweeps_admin/internal/domain/winner/service"
	"sweeps_admin/pkg/logger"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockWinnerService struct {
	mock.Mock
}

func (m *MockWinnerService) Draw(ctx context.Context, site, giveawayID string) (*model.Winner, error) {
	args := m.Called(site, giveawayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Winner), args.Error(1)
}

func (m *MockWinnerService) List(ctx context.Context, site, giveawayID string) ([]model.Winner, error) {
	args := m.Called(site, giveawayID)
	return args.Get(0).([]model.Winner), args.Error(1)
}

func (m *MockWinnerService) MarkNotified(ctx context.Context, site, id string) (*model.Winner, error) {
	args := m.Called(site, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Winner), args.Error(1)
}

func (m *MockWinnerService) MarkClaimed(ctx context.Context, site, id string) (*model.Winner, error) {
	args := m.Called(site, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Winner), args.Error(1)
}

func setupRouter(svc service.WinnerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

	h := NewWinnerHandler(svc)
	r := gin.New()
	r.POST("/sites/:site/giveaways/:id/draw", h.Draw)
	r.GET("/sites/:site/winners", h.List)
	r.POST("/sites/:site/winners/:id/notified", h.MarkNotified)
	return r
}

func TestDraw(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHTTP int
		wantCode string
	}{
		{"no entries", service.ErrNoEntries, http.StatusOK, `"code":30001`},
		{"no eligible", service.ErrNoEligibleEntries, http.StatusOK, `"code":30002`},
		{"already won", service.ErrAlreadyWon, http.StatusOK, `"code":30003`},
		{"in progress", service.ErrDrawInProgress, http.StatusOK, `"code":30004`},
		{"giveaway missing", service.ErrGiveawayNotFound, http.StatusNotFound, `"code":20002`},
		{"store failure", errors.New("boom"), http.StatusInternalServerError, `"code":50001`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockWinnerService)
			svc.On("Draw", "sweepsfan", "g1").Return(nil, tt.err)

			w := httptest.NewRecorder()
			setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sites/sweepsfan/giveaways/g1/draw", nil))

			assert.Equal(t, tt.wantHTTP, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantCode)
		})
	}

	t.Run("winner", func(t *testing.T) {
		svc := new(MockWinnerService)
		svc.On("Draw", "sweepsfan", "g1").Return(&model.Winner{ID: "w1", GiveawayID: "g1", Email: "a@x", Status: model.StatusPending}, nil)

		w := httptest.NewRecorder()
		setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sites/sweepsfan/giveaways/g1/draw", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"code":0`)
		assert.Contains(t, w.Body.String(), `"email":"a@x"`)
		assert.Contains(t, w.Body.String(), `"status":"pending"`)
	})
}

func TestList(t *testing.T) {
	svc := new(MockWinnerService)
	svc.On("List", "sweepsfan", "g1").Return([]model.Winner{{ID: "w1"}}, nil)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sites/sweepsfan/winners?giveaway_id=g1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestMarkNotifiedUnknownWinner(t *testing.T) {
	svc := new(MockWinnerService)
	svc.On("MarkNotified", "sweepsfan", "nope").Return(nil, service.ErrWinnerNotFound)

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sites/sweepsfan/winners/nope/notified", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":30005`)
}
