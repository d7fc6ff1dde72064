package model

import (
	"sweeps_admin/pkg/model"
	"time"
)

// AdminUser 后台管理员账号，只存在于管理站点的数据库中
type AdminUser struct {
	model.BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"` // 密码哈希不返回给前端
	LastLoginAt  *time.Time `json:"last_login_at"`
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
