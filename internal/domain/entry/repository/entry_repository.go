package repository

import (
	"context"
	"strings"
	"sweeps_admin/internal/domain/entry/model"
	"sweeps_admin/internal/pkg/tenant"

	"gorm.io/gorm"
)

// EntryRepository 接口定义
type EntryRepository interface {
	List(ctx context.Context, site string, filter model.Filter, offset, limit int) ([]model.Entry, int64, error)
	CountDistinctEmails(ctx context.Context, site string, filter model.Filter) (int64, error)
	ListByGiveaway(ctx context.Context, site, giveawayID string) ([]model.Entry, error)
	Each(ctx context.Context, site string, filter model.Filter, batchSize int, fn func([]model.Entry) error) error
}

type entryRepository struct {
	sites tenant.DBResolver
}

// NewEntryRepository 创建新的仓库实例
func NewEntryRepository(sites tenant.DBResolver) EntryRepository {
	return &entryRepository{sites: sites}
}

func (r *entryRepository) query(ctx context.Context, site string, filter model.Filter) (*gorm.DB, error) {
	db, err := r.sites.DB(site)
	if err != nil {
		return nil, err
	}

	q := db.WithContext(ctx).Model(&model.Entry{})
	if filter.GiveawayID != "" {
		q = q.Where("giveaway_id = ?", filter.GiveawayID)
	}
	if email := strings.TrimSpace(filter.Email); email != "" {
		q = q.Where("email ILIKE ?", "%"+escapeLike(email)+"%")
	}
	return q, nil
}

// List 分页列出参与记录，按创建时间倒序，附带所属活动
func (r *entryRepository) List(ctx context.Context, site string, filter model.Filter, offset, limit int) ([]model.Entry, int64, error) {
	q, err := r.query(ctx, site, filter)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.Entry
	err = q.Session(&gorm.Session{}).
		Preload("Giveaway").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// CountDistinctEmails 去重后的参与邮箱数
func (r *entryRepository) CountDistinctEmails(ctx context.Context, site string, filter model.Filter) (int64, error) {
	q, err := r.query(ctx, site, filter)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := q.Distinct("email").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByGiveaway 活动的全部参与记录（抽奖使用），按创建时间升序
func (r *entryRepository) ListByGiveaway(ctx context.Context, site, giveawayID string) ([]model.Entry, error) {
	db, err := r.sites.DB(site)
	if err != nil {
		return nil, err
	}

	var entries []model.Entry
	err = db.WithContext(ctx).
		Where("giveaway_id = ?", giveawayID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Each 分批遍历符合条件的参与记录（导出使用）
func (r *entryRepository) Each(ctx context.Context, site string, filter model.Filter, batchSize int, fn func([]model.Entry) error) error {
	q, err := r.query(ctx, site, filter)
	if err != nil {
		return err
	}

	for offset := 0; ; offset += batchSize {
		var batch []model.Entry
		err := q.Session(&gorm.Session{}).
			Preload("Giveaway").
			Order("created_at DESC").
			Order("id").
			Offset(offset).
			Limit(batchSize).
			Find(&batch).Error
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}
		if err := fn(batch); err != nil {
			return err
		}
		if len(batch) < batchSize {
			return nil
		}
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
