package repository

import (
	"context"
	"sweeps_admin/internal/domain/auth/model"
	"sweeps_admin/internal/pkg/tenant"
	"time"
)

// AdminUserRepository 接口定义
type AdminUserRepository interface {
	GetByEmail(ctx context.Context, site, email string) (*model.AdminUser, error)
	Create(ctx context.Context, site string, user *model.AdminUser) error
	UpdatePassword(ctx context.Context, site, id, hash string) error
	TouchLastLogin(ctx context.Context, site, id string, at time.Time) error
}

type adminUserRepository struct {
	sites tenant.DBResolver
}

// NewAdminUserRepository 创建新的仓库实例
func NewAdminUserRepository(sites tenant.DBResolver) AdminUserRepository {
	return &adminUserRepository{sites: sites}
}

// GetByEmail 根据邮箱获取管理员
func (r *adminUserRepository) GetByEmail(ctx context.Context, site, email string) (*model.AdminUser, error) {
	db, err := r.sites.DB(site)
	if err != nil {
		return nil, err
	}
	var user model.AdminUser
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create 创建管理员
func (r *adminUserRepository) Create(ctx context.Context, site string, user *model.AdminUser) error {
	db, err := r.sites.DB(site)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Create(user).Error
}

// UpdatePassword 重置密码
func (r *adminUserRepository) UpdatePassword(ctx context.Context, site, id, hash string) error {
	db, err := r.sites.DB(site)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password_hash": hash, "updated_at": time.Now()}).Error
}

// TouchLastLogin 记录最近登录时间
func (r *adminUserRepository) TouchLastLogin(ctx context.Context, site, id string, at time.Time) error {
	db, err := r.sites.DB(site)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Model(&model.AdminUser{}).Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}
