package model

import (
	giveawayModel "sweeps_admin/internal/domain/giveaway/model"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 中奖状态，由时间戳推导：claimed > notified > pending
const (
	StatusPending  = "pending"
	StatusNotified = "notified"
	StatusClaimed  = "claimed"
)

// Winner 中奖记录，(giveaway_id, email) 唯一
type Winner struct {
	ID         string                  `gorm:"primaryKey;type:uuid" json:"id"`
	GiveawayID string                  `gorm:"type:uuid;not null;uniqueIndex:idx_winners_giveaway_email" json:"giveaway_id"`
	EntryID    string                  `gorm:"type:uuid;not null" json:"entry_id"`
	Email      string                  `gorm:"not null;uniqueIndex:idx_winners_giveaway_email" json:"email"`
	DrawnAt    time.Time               `gorm:"not null" json:"drawn_at"`
	NotifiedAt *time.Time              `json:"notified_at"`
	ClaimedAt  *time.Time              `json:"claimed_at"`
	Status     string                  `gorm:"-" json:"status"`
	Giveaway   *giveawayModel.Giveaway `gorm:"foreignKey:GiveawayID" json:"giveaway,omitempty"`
}

// BeforeCreate 钩子：生成 UUID
func (w *Winner) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

// AfterFind 钩子：填充派生状态
func (w *Winner) AfterFind(tx *gorm.DB) error {
	w.Status = w.DeriveStatus()
	return nil
}

// DeriveStatus 根据时间戳计算状态
func (w *Winner) DeriveStatus() string {
	switch {
	case w.ClaimedAt != nil:
		return StatusClaimed
	case w.NotifiedAt != nil:
		return StatusNotified
	default:
		return StatusPending
	}
}
