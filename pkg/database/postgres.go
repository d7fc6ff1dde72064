package database

import (
	"database/sql"
	"fmt"
	"sweeps_admin/internal/pkg/config"
	"sweeps_admin/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenPostgres 打开单个站点的数据库连接
func OpenPostgres(cfg config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if debug {
		logLevel = gormlogger.Info
	}

	// 配置 GORM
	gormConfig := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		PrepareStmt:    true, // 预编译 SQL 缓存
		TranslateError: true, // 唯一约束冲突 -> gorm.ErrDuplicatedKey
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database %s@%s: %w", cfg.DBName, cfg.Host, err)
	}

	// 获取底层 SQL DB 对象以配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}

	configureConnectionPool(sqlDB, cfg)

	return db, nil
}

// configureConnectionPool 配置数据库连接池
// 后台为低并发管理端，多个站点各持一个池，默认值取得较小
func configureConnectionPool(sqlDB *sql.DB, cfg config.DatabaseConfig) {
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 20
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 2
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(time.Minute * 30)

	logger.Log.Debug("database connection pool configured",
		zap.String("database", cfg.DBName),
		zap.Int("max_open", maxOpen),
		zap.Int("max_idle", maxIdle),
	)
}
