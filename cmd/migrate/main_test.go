package main

import (
	"sweeps_admin/internal/pkg/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	db := func(name string) config.DatabaseConfig {
		return config.DatabaseConfig{Host: "localhost", Port: "5432", User: "postgres", DBName: name, SSLMode: "disable"}
	}
	return &config.Config{
		Auth: config.AuthConfig{Site: "prizepicks"},
		Sites: []config.SiteConfig{
			{ID: "sweepsfan", Database: db("sweepsfan")},
			{ID: "prizepicks", Database: db("prizepicks")},
		},
	}
}

func TestPlanCreatesAdminTableOnlyOnAdminSite(t *testing.T) {
	jobs := plan(testConfig(), "migrations", "")

	require.Len(t, jobs, 3)
	assert.Equal(t, job{site: "sweepsfan", source: "file://migrations/site", dbURL: "postgres://postgres:@localhost:5432/sweepsfan?sslmode=disable"}, jobs[0])
	assert.Equal(t, "prizepicks", jobs[1].site)
	assert.Equal(t, "file://migrations/site", jobs[1].source)
	assert.Equal(t, job{
		site:   "prizepicks",
		source: "file://migrations/admin",
		dbURL:  "postgres://postgres:@localhost:5432/prizepicks?sslmode=disable&x-migrations-table=admin_schema_migrations",
	}, jobs[2])
}

func TestPlanSingleSite(t *testing.T) {
	jobs := plan(testConfig(), "migrations", "sweepsfan")

	require.Len(t, jobs, 1)
	assert.Equal(t, "file://migrations/site", jobs[0].source)
}
