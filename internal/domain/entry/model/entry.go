package model

import (
	giveawayModel "sweeps_admin/internal/domain/giveaway/model"
	"time"
)

// Entry 参与记录，由站点前台表单写入，后台只读
type Entry struct {
	ID                 string                  `gorm:"primaryKey;type:uuid" json:"id"`
	GiveawayID         string                  `gorm:"type:uuid;not null;index" json:"giveaway_id"`
	Email              string                  `gorm:"not null;index" json:"email"`
	CreatedAt          time.Time               `json:"created_at"`
	ConfirmationNumber string                  `gorm:"not null" json:"confirmation_number"`
	IPAddress          *string                 `json:"ip_address"`
	UserAgent          *string                 `json:"user_agent"`
	Giveaway           *giveawayModel.Giveaway `gorm:"foreignKey:GiveawayID" json:"giveaway,omitempty"`
}

// Filter 参与记录筛选条件
type Filter struct {
	GiveawayID string `form:"giveaway_id"`
	Email      string `form:"email"` // 不区分大小写的包含匹配
}
