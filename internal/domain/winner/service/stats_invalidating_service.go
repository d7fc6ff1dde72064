package service

import (
	"context"
	"sweeps_admin/internal/domain/winner/model"
	"sweeps_admin/pkg/cache"
	"sweeps_admin/pkg/logger"

	"go.uber.org/zap"
)

// statsInvalidatingService 中奖记录写入后清除统计缓存
type statsInvalidatingService struct {
	WinnerService
	cache cache.CacheService
	keys  []string
}

// NewStatsInvalidatingService 装饰 WinnerService，抽奖成功后删除 keys
func NewStatsInvalidatingService(inner WinnerService, c cache.CacheService, keys ...string) WinnerService {
	return &statsInvalidatingService{WinnerService: inner, cache: c, keys: keys}
}

func (s *statsInvalidatingService) Draw(ctx context.Context, site, giveawayID string) (*model.Winner, error) {
	winner, err := s.WinnerService.Draw(ctx, site, giveawayID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, site)
	return winner, nil
}

func (s *statsInvalidatingService) invalidate(ctx context.Context, site string) {
	for _, key := range s.keys {
		// 缓存删除失败只会让统计延迟到 TTL 过期
		if err := s.cache.Delete(context.WithoutCancel(ctx), key); err != nil {
			logger.Log.Warn("invalidate stats cache failed", zap.String("site", site), zap.String("key", key), zap.Error(err))
		}
	}
}
