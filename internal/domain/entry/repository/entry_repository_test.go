package repository

import (
	"context"
	"errors"
	"regexp"
	"sweeps_admin/internal/domain/entry/model"
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

func setupRepo(t *testing.T) (EntryRepository, sqlmock.Sqlmock) {
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

	return NewEntryRepository(sites), mock
}

func TestListWithGiveaway(t *testing.T) {
	repo, mock := setupRepo(t)
	created := time.Date(2024, 6, 3, 14, 5, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "entries" WHERE giveaway_id = $1 AND email ILIKE $2`)).
		WithArgs("g1", "%gmail%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "entries" WHERE giveaway_id = $1 AND email ILIKE $2 ORDER BY created_at DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "giveaway_id", "email", "created_at", "confirmation_number"}).
			AddRow("e1", "g1", "a@gmail.com", created, "SF-1"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "giveaways" WHERE "giveaways"."id" = $1`)).
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow("g1", "Summer Cash"))

	entries, total, err := repo.List(context.Background(), "sweepsfan", model.Filter{GiveawayID: "g1", Email: " gmail "}, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].Giveaway)
	assert.Equal(t, "Summer Cash", entries[0].Giveaway.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountDistinctEmails(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(DISTINCT("email")) FROM "entries"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	n, err := repo.CountDistinctEmails(context.Background(), "sweepsfan", model.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByGiveaway(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "entries" WHERE giveaway_id = $1 ORDER BY created_at ASC`)).
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "giveaway_id", "email"}).
			AddRow("e1", "g1", "a@x.com").
			AddRow("e2", "g1", "b@x.com"))

	entries, err := repo.ListByGiveaway(context.Background(), "sweepsfan", "g1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b@x.com", entries[1].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEachStopsOnShortBatch(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "entries" ORDER BY created_at DESC,id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "giveaway_id", "email"}).
			AddRow("e1", "", "a@x.com").
			AddRow("e2", "", "b@x.com"))
	mock.ExpectQuery(`SELECT \* FROM "entries" ORDER BY created_at DESC,id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "giveaway_id", "email"}).
			AddRow("e3", "", "c@x.com"))

	var seen []string
	err := repo.Each(context.Background(), "sweepsfan", model.Filter{}, 2, func(batch []model.Entry) error {
		for _, e := range batch {
			seen = append(seen, e.Email)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, seen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEachPropagatesCallbackError(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "giveaway_id", "email"}).AddRow("e1", "", "a@x.com"))

	boom := errors.New("client went away")
	err := repo.Each(context.Background(), "sweepsfan", model.Filter{}, 10, func([]model.Entry) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_off\\`, escapeLike(`100%_off\`))
}
