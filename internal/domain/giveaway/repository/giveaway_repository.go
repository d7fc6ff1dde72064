package repository

import (
	"context"
	"sweeps_admin/internal/domain/giveaway/model"
	"sweeps_admin/internal/pkg/tenant"
	"time"

	"gorm.io/gorm"
)

// GiveawayRepository 接口定义，所有方法显式传入站点 ID
type GiveawayRepository interface {
	List(ctx context.Context, site string, status model.Status) ([]model.Giveaway, error)
	ListActive(ctx context.Context, site string) ([]model.Giveaway, error)
	GetByID(ctx context.Context, site, id string) (*model.Giveaway, error)
	CountEntries(ctx context.Context, site string, ids []string) (map[string]int64, error)
	SlugExists(ctx context.Context, site, slug, excludeID string) (bool, error)
	Create(ctx context.Context, site string, giveaway *model.Giveaway) error
	Update(ctx context.Context, site, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, site, id string) error
	CloseExpired(ctx context.Context, site string, now time.Time) (int64, error)
}

type giveawayRepository struct {
	sites tenant.DBResolver
}

// NewGiveawayRepository 创建新的仓库实例
func NewGiveawayRepository(sites tenant.DBResolver) GiveawayRepository {
	return &giveawayRepository{sites: sites}
}

func (r *giveawayRepository) db(ctx context.Context, site string) (*gorm.DB, error) {
	db, err := r.sites.DB(site)
	if err != nil {
		return nil, err
	}
	return db.WithContext(ctx), nil
}

// List 按创建时间倒序列出活动
func (r *giveawayRepository) List(ctx context.Context, site string, status model.Status) ([]model.Giveaway, error) {
	db, err := r.db(ctx, site)
	if err != nil {
		return nil, err
	}

	q := db.Model(&model.Giveaway{})
	switch status {
	case model.StatusActive:
		q = q.Where("is_active = ?", true)
	case model.StatusEnded:
		q = q.Where("is_active = ?", false)
	}

	var giveaways []model.Giveaway
	if err := q.Order("created_at DESC").Find(&giveaways).Error; err != nil {
		return nil, err
	}
	return giveaways, nil
}

// ListActive 进行中的活动，按结束时间升序（抽奖下拉框使用）
func (r *giveawayRepository) ListActive(ctx context.Context, site string) ([]model.Giveaway, error) {
	db, err := r.db(ctx, site)
	if err != nil {
		return nil, err
	}

	var giveaways []model.Giveaway
	if err := db.Where("is_active = ?", true).Order("end_date ASC").Find(&giveaways).Error; err != nil {
		return nil, err
	}
	return giveaways, nil
}

// GetByID 根据ID获取活动
func (r *giveawayRepository) GetByID(ctx context.Context, site, id string) (*model.Giveaway, error) {
	db, err := r.db(ctx, site)
	if err != nil {
		return nil, err
	}

	var giveaway model.Giveaway
	if err := db.Where("id = ?", id).First(&giveaway).Error; err != nil {
		return nil, err
	}
	return &giveaway, nil
}

type entryCount struct {
	GiveawayID string
	Count      int64
}

// CountEntries 一次分组查询统计多个活动的参与人数
func (r *giveawayRepository) CountEntries(ctx context.Context, site string, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	db, err := r.db(ctx, site)
	if err != nil {
		return nil, err
	}

	var rows []entryCount
	err = db.Table("entries").
		Select("giveaway_id, COUNT(*) AS count").
		Where("giveaway_id IN ?", ids).
		Group("giveaway_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.GiveawayID] = row.Count
	}
	return counts, nil
}

// SlugExists slug 是否已被其他活动占用
func (r *giveawayRepository) SlugExists(ctx context.Context, site, slug, excludeID string) (bool, error) {
	db, err := r.db(ctx, site)
	if err != nil {
		return false, err
	}

	q := db.Model(&model.Giveaway{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建活动
func (r *giveawayRepository) Create(ctx context.Context, site string, giveaway *model.Giveaway) error {
	db, err := r.db(ctx, site)
	if err != nil {
		return err
	}
	return db.Create(giveaway).Error
}

// Update 部分更新
func (r *giveawayRepository) Update(ctx context.Context, site, id string, fields map[string]interface{}) error {
	db, err := r.db(ctx, site)
	if err != nil {
		return err
	}

	result := db.Model(&model.Giveaway{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除活动，参与记录和中奖记录由外键级联删除
func (r *giveawayRepository) Delete(ctx context.Context, site, id string) error {
	db, err := r.db(ctx, site)
	if err != nil {
		return err
	}

	result := db.Where("id = ?", id).Delete(&model.Giveaway{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CloseExpired 关闭已过结束时间的活动
func (r *giveawayRepository) CloseExpired(ctx context.Context, site string, now time.Time) (int64, error) {
	db, err := r.db(ctx, site)
	if err != nil {
		return 0, err
	}

	result := db.Model(&model.Giveaway{}).
		Where("is_active = ? AND end_date < ?", true, now).
		Updates(map[string]interface{}{"is_active": false, "updated_at": now})
	return result.RowsAffected, result.Error
}
