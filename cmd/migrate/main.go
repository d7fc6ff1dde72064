package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"path"
	"sweeps_admin/internal/domain/auth/repository"
	"sweeps_admin/internal/domain/auth/service"
	"sweeps_admin/internal/pkg/config"
	"sweeps_admin/internal/pkg/tenant"
	"sweeps_admin/pkg/database"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	siteID := flag.String("site", "", "only migrate this site (default: all sites)")
	dir := flag.String("dir", "migrations", "migrations directory")
	adminEmail := flag.String("admin-email", "", "create or reset an admin account after migrating")
	adminPassword := flag.String("admin-password", "", "password for -admin-email")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	for _, j := range plan(cfg, *dir, *siteID) {
		if err := run(j); err != nil {
			log.Fatalf("site %s (%s): %v", j.site, j.source, err)
		}
		log.Printf("Site %s migrated (%s)", j.site, j.source)
	}

	if *adminEmail != "" {
		if err := seedAdmin(cfg, *adminEmail, *adminPassword); err != nil {
			log.Fatal("Failed to seed admin:", err)
		}
		log.Printf("Admin %s is ready on site %s", *adminEmail, cfg.AdminSite())
	}

	log.Println("Migration successful")
}

// adminMigrationsTable admin_users 迁移使用独立的版本表，与站点表结构版本互不影响
const adminMigrationsTable = "admin_schema_migrations"

type job struct {
	site   string
	source string
	dbURL  string
}

// plan 每个站点执行 site 迁移，admin_users 只在 auth.site 所在站点创建
func plan(cfg *config.Config, dir, only string) []job {
	var jobs []job
	for _, site := range cfg.Sites {
		if only != "" && site.ID != only {
			continue
		}
		jobs = append(jobs, job{
			site:   site.ID,
			source: "file://" + path.Join(dir, "site"),
			dbURL:  site.Database.URL(),
		})
		if site.ID == cfg.AdminSite() {
			jobs = append(jobs, job{
				site:   site.ID,
				source: "file://" + path.Join(dir, "admin"),
				dbURL:  site.Database.URL() + "&x-migrations-table=" + adminMigrationsTable,
			})
		}
	}
	return jobs
}

func run(j job) error {
	m, err := migrate.New(j.source, j.dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}

	// 如果数据库处于 dirty 状态，回退到上一个干净的版本后重试
	var dirty migrate.ErrDirty
	if !errors.As(err, &dirty) {
		return err
	}
	log.Printf("Site %s is dirty at version %d, forcing version %d...", j.site, dirty.Version, dirty.Version-1)
	if err := m.Force(dirty.Version - 1); err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func seedAdmin(cfg *config.Config, email, password string) error {
	sc, _ := cfg.Site(cfg.AdminSite())
	db, err := database.OpenPostgres(sc.Database, false)
	if err != nil {
		return err
	}
	sites, err := tenant.NewRegistry(&tenant.Site{ID: sc.ID, Name: sc.Name, DB: db})
	if err != nil {
		return err
	}
	defer sites.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	svc := service.NewAuthService(repository.NewAdminUserRepository(sites), nil, sc.ID)
	_, err = svc.UpsertAdmin(ctx, email, password)
	return err
}
