package model

// GiveawayData 生成文案 / 图片所需的活动草稿字段
type GiveawayData struct {
	Title            string   `json:"title"`
	PrizeName        string   `json:"prize_name"`
	PrizeValue       *float64 `json:"prize_value"`
	EndDate          string   `json:"end_date"`
	MaxEntriesPerDay *int     `json:"max_entries_per_day"`
}

// DescriptionKind 文案类型
type DescriptionKind string

const (
	DescriptionShort DescriptionKind = "description_1"
	DescriptionLong  DescriptionKind = "description_2"
)

type DescriptionRequest struct {
	Type         DescriptionKind `json:"type" binding:"required"`
	GiveawayData GiveawayData    `json:"giveawayData"`
}

type DescriptionResult struct {
	Description string `json:"description"`
}

type ImageRequest struct {
	Site         string       `json:"siteId" binding:"required"`
	GiveawayData GiveawayData `json:"giveawayData"`
}

// ImageResult Fallback 为 true 时 ImageURL 是占位图
type ImageResult struct {
	ImageURL string `json:"imageUrl"`
	Prompt   string `json:"prompt"`
	Fallback bool   `json:"fallback"`
}

type UploadResult struct {
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
}
