package repository

import (
	"context"
	"errors"
	"regexp"
	"sweeps_admin/internal/pkg/tenant"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepo(t *testing.T) (AnalyticsRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sites, err := tenant.NewRegistry(&tenant.Site{ID: "sweepsfan", DB: db})
	require.NoError(t, err)

	return NewAnalyticsRepository(sites), mock
}

func TestCounts(t *testing.T) {
	repo, mock := setupRepo(t)
	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"total_entries", "today_entries", "active_giveaways", "ended_giveaways", "total_winners"}).
		AddRow(120, 7, 3, 5, 4)
	mock.ExpectQuery(regexp.QuoteMeta(`(SELECT COUNT(*) FROM entries WHERE created_at >= $1) AS today_entries`)).
		WithArgs(since).
		WillReturnRows(rows)

	counts, err := repo.Counts(context.Background(), "sweepsfan", since)
	require.NoError(t, err)

	assert.Equal(t, int64(120), counts.TotalEntries)
	assert.Equal(t, int64(7), counts.TodayEntries)
	assert.Equal(t, int64(3), counts.ActiveGiveaways)
	assert.Equal(t, int64(5), counts.EndedGiveaways)
	assert.Equal(t, int64(4), counts.TotalWinners)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountsPropagatesErrors(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	_, err := repo.Counts(context.Background(), "sweepsfan", time.Now())
	assert.Error(t, err)
}

func TestCountsUnknownSite(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.Counts(context.Background(), "nope", time.Now())
	assert.ErrorIs(t, err, tenant.ErrUnknownSite)
}
