package repository

import (
	"context"
	"sweeps_admin/internal/domain/winner/model"
	"sweeps_admin/internal/pkg/tenant"
	"time"

	"gorm.io/gorm"
)

// WinnerRepository 接口定义
type WinnerRepository interface {
	List(ctx context.Context, site, giveawayID string) ([]model.Winner, error)
	GetByID(ctx context.Context, site, id string) (*model.Winner, error)
	EmailsByGiveaway(ctx context.Context, site, giveawayID string) ([]string, error)
	Create(ctx context.Context, site string, winner *model.Winner) error
	MarkNotified(ctx context.Context, site, id string, at time.Time) error
	MarkClaimed(ctx context.Context, site, id string, at time.Time) error
}

type winnerRepository struct {
	sites tenant.DBResolver
}

// NewWinnerRepository 创建新的仓库实例
func NewWinnerRepository(sites tenant.DBResolver) WinnerRepository {
	return &winnerRepository{sites: sites}
}

func (r *winnerRepository) db(ctx context.Context, site string) (*gorm.DB, error) {
	db, err := r.sites.DB(site)
	if err != nil {
		return nil, err
	}
	return db.WithContext(ctx), nil
}

// List 中奖记录，按开奖时间倒序，giveawayID 为空时返回全部
func (r *winnerRepository) List(ctx context.Context, site, giveawayID string) ([]model.Winner, error) {
	db, err := r.db(ctx, site)
	if err != nil {
		return nil, err
	}

	q := db.Preload("Giveaway")
	if giveawayID != "" {
		q = q.Where("giveaway_id = ?", giveawayID)
	}

	var winners []model.Winner
	if err := q.Order("drawn_at DESC").Find(&winners).Error; err != nil {
		return nil, err
	}
	return winners, nil
}

// GetByID 根据ID获取中奖记录
func (r *winnerRepository) GetByID(ctx context.Context, site, id string) (*model.Winner, error) {
	db, err := r.db(ctx, site)
	if err != nil {
		return nil, err
	}

	var winner model.Winner
	if err := db.Preload("Giveaway").Where("id = ?", id).First(&winner).Error; err != nil {
		return nil, err
	}
	return &winner, nil
}

// EmailsByGiveaway 活动已中奖的邮箱
func (r *winnerRepository) EmailsByGiveaway(ctx context.Context, site, giveawayID string) ([]string, error) {
	db, err := r.db(ctx, site)
	if err != nil {
		return nil, err
	}

	var emails []string
	err = db.Model(&model.Winner{}).
		Where("giveaway_id = ?", giveawayID).
		Pluck("email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

// Create 写入中奖记录，唯一约束冲突时返回 gorm.ErrDuplicatedKey
func (r *winnerRepository) Create(ctx context.Context, site string, winner *model.Winner) error {
	db, err := r.db(ctx, site)
	if err != nil {
		return err
	}
	return db.Omit("Giveaway").Create(winner).Error
}

// MarkNotified 记录通知时间，已通知的不覆盖
func (r *winnerRepository) MarkNotified(ctx context.Context, site, id string, at time.Time) error {
	return r.setOnce(ctx, site, id, "notified_at", at)
}

// MarkClaimed 记录领奖时间，已领奖的不覆盖
func (r *winnerRepository) MarkClaimed(ctx context.Context, site, id string, at time.Time) error {
	return r.setOnce(ctx, site, id, "claimed_at", at)
}

func (r *winnerRepository) setOnce(ctx context.Context, site, id, column string, at time.Time) error {
	db, err := r.db(ctx, site)
	if err != nil {
		return err
	}

	return db.Model(&model.Winner{}).
		Where("id = ? AND "+column+" IS NULL", id).
		Update(column, at).Error
}
