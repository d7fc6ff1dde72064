package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sweeps_admin/internal/domain/entry/model"
	"sweeps_admin/internal/domain/entry/service"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/utils"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEntryService struct {
	mock.Mock
}

func (m *MockEntryService) List(ctx context.Context, site string, filter model.Filter, page utils.Pagination) (*service.ListResult, error) {
	args := m.Called(site, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult), args.Error(1)
}

func (m *MockEntryService) Export(ctx context.Context, site string, filter model.Filter, w io.Writer) error {
	args := m.Called(site, filter)
	if body := args.String(0); body != "" {
		_, _ = io.WriteString(w, body)
	}
	return args.Error(1)
}

func (m *MockEntryService) ExportFilename(site string) string {
	return m.Called(site).String(0)
}

func setupRouter(svc service.EntryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEntryHandler(svc)
	r := gin.New()
	r.GET("/sites/:site/entries", h.List)
	r.GET("/sites/:site/entries/export", h.Export)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestList(t *testing.T) {
	t.Run("binds filter and page", func(t *testing.T) {
		svc := new(MockEntryService)
		filter := model.Filter{GiveawayID: "g1", Email: "gmail"}
		svc.On("List", "sweepsfan", filter, utils.Pagination{Page: 2, Limit: 20}).Return(&service.ListResult{
			PageResult:   utils.PageResult{List: []model.Entry{}, Total: 41, Page: 2, Limit: 20},
			UniqueEmails: 30,
		}, nil)

		w := get(setupRouter(svc), "/sites/sweepsfan/entries?giveaway_id=g1&email=gmail&page=2&limit=20")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":41`)
		assert.Contains(t, w.Body.String(), `"unique_emails":30`)
		svc.AssertExpectations(t)
	})

	t.Run("non-numeric page", func(t *testing.T) {
		svc := new(MockEntryService)

		w := get(setupRouter(svc), "/sites/sweepsfan/entries?page=two")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown site", func(t *testing.T) {
		svc := new(MockEntryService)
		svc.On("List", "nope", model.Filter{}, utils.Pagination{}).Return(nil, tenant.ErrUnknownSite)

		w := get(setupRouter(svc), "/sites/nope/entries")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"code":20001`)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(MockEntryService)
		svc.On("List", "sweepsfan", model.Filter{}, utils.Pagination{}).Return(nil, errors.New("connection refused"))

		w := get(setupRouter(svc), "/sites/sweepsfan/entries")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"code":50001`)
	})
}

func TestExport(t *testing.T) {
	svc := new(MockEntryService)
	csv := "Email,Giveaway,Confirmation Number,Entry Date,IP Address\nalice@example.com,Summer Cash,SW-1,2024-06-10 09:00:00,N/A\n"
	svc.On("ExportFilename", "sweepsfan").Return("entries-sweepsfan-2024-06-10.csv")
	svc.On("Export", "sweepsfan", model.Filter{GiveawayID: "g1"}).Return(csv, nil)

	w := get(setupRouter(svc), "/sites/sweepsfan/entries/export?giveaway_id=g1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="entries-sweepsfan-2024-06-10.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, csv, w.Body.String())
}
