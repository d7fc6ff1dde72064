package model

import (
	"sweeps_admin/pkg/model"
	"time"
)

// Status 活动列表筛选
type Status string

const (
	StatusAll    Status = "all"
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Giveaway 抽奖活动
type Giveaway struct {
	model.BaseModel
	Title            string    `gorm:"not null" json:"title"`
	PrizeName        string    `gorm:"not null" json:"prize_name"`
	PrizeValue       *float64  `json:"prize_value"`
	StartDate        time.Time `gorm:"not null" json:"start_date"`
	EndDate          time.Time `gorm:"not null;index" json:"end_date"`
	MaxEntriesPerDay int       `gorm:"not null" json:"max_entries_per_day"`
	IsActive         bool      `gorm:"not null;index" json:"is_active"`
	Slug             *string   `gorm:"uniqueIndex" json:"slug"`
	HeroImage        *string   `json:"hero_image"`
	Description1     *string   `gorm:"column:description_1" json:"description_1"`
	Description2     *string   `gorm:"column:description_2" json:"description_2"`
	SponsorName      *string   `json:"sponsor_name"`
}

// GiveawayWithCount 带参与人数的活动
type GiveawayWithCount struct {
	Giveaway
	EntryCount int64 `json:"entry_count"`
}

// GiveawayInput 创建/更新活动的输入，nil 字段在更新时保持不变
type GiveawayInput struct {
	Title            *string    `json:"title"`
	PrizeName        *string    `json:"prize_name"`
	PrizeValue       *float64   `json:"prize_value"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	MaxEntriesPerDay *int       `json:"max_entries_per_day"`
	IsActive         *bool      `json:"is_active"`
	Slug             *string    `json:"slug"`
	HeroImage        *string    `json:"hero_image"`
	Description1     *string    `json:"description_1"`
	Description2     *string    `json:"description_2"`
	SponsorName      *string    `json:"sponsor_name"`
	// ClearPrizeValue 将 prize_value 置为 NULL，优先于 PrizeValue
	ClearPrizeValue bool `json:"clear_prize_value"`
}
