package service

import (
	"context"
	"errors"
	"sweeps_admin/internal/domain/winner/model"
	"sweeps_admin/pkg/cache"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWinnerService struct {
	mock.Mock
	WinnerService
}

func (m *MockWinnerService) Draw(ctx context.Context, site, giveawayID string) (*model.Winner, error) {
	args := m.Called(site, giveawayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Winner), args.Error(1)
}

func TestStatsInvalidatingServiceDraw(t *testing.T) {
	ctx := context.Background()
	const key = "analytics:cross-site"

	t.Run("successful draw drops the cached stats", func(t *testing.T) {
		c := cache.NewMemoryCache()
		require.NoError(t, c.Set(ctx, key, map[string]int{"winners": 1}, time.Minute))

		inner := new(MockWinnerService)
		inner.On("Draw", "sweepsfan", "g1").Return(&model.Winner{ID: "w1"}, nil)

		w, err := NewStatsInvalidatingService(inner, c, key).Draw(ctx, "sweepsfan", "g1")
		require.NoError(t, err)
		assert.Equal(t, "w1", w.ID)

		var cached map[string]int
		assert.ErrorIs(t, c.Get(ctx, key, &cached), cache.ErrCacheMiss)
	})

	t.Run("failed draw keeps the cached stats", func(t *testing.T) {
		c := cache.NewMemoryCache()
		require.NoError(t, c.Set(ctx, key, map[string]int{"winners": 1}, time.Minute))

		inner := new(MockWinnerService)
		inner.On("Draw", "sweepsfan", "g1").Return(nil, ErrNoEligibleEntries)

		_, err := NewStatsInvalidatingService(inner, c, key).Draw(ctx, "sweepsfan", "g1")
		assert.True(t, errors.Is(err, ErrNoEligibleEntries))

		var cached map[string]int
		assert.NoError(t, c.Get(ctx, key, &cached))
	})
}
