package database

import (
	"context"
	"fmt"
	"sweeps_admin/pkg/metrics"
	"time"

	"gorm.io/gorm"
)

// PoolStats 连接池快照
type PoolStats struct {
	OpenConnections int           `json:"open_connections"`
	InUse           int           `json:"in_use"`
	Idle            int           `json:"idle"`
	WaitCount       int64         `json:"wait_count"`
	WaitDuration    time.Duration `json:"wait_duration"`
}

// Stats 读取 gorm 底层连接池状态
func Stats(db *gorm.DB) (PoolStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return PoolStats{}, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	s := sqlDB.Stats()
	return PoolStats{
		OpenConnections: s.OpenConnections,
		InUse:           s.InUse,
		Idle:            s.Idle,
		WaitCount:       s.WaitCount,
		WaitDuration:    s.WaitDuration,
	}, nil
}

// RecordPoolStats 上报站点连接池指标
func RecordPoolStats(collector *metrics.MetricsCollector, site string, db *gorm.DB) (PoolStats, error) {
	stats, err := Stats(db)
	if err != nil {
		return stats, err
	}
	collector.UpdateDBConnections(site, stats.OpenConnections, stats.InUse, stats.Idle)
	return stats, nil
}

// Ping 健康检查
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
