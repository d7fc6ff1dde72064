package model

// CrossSiteCacheKey 跨站点统计的缓存键，抽出新中奖者后需要清除
const CrossSiteCacheKey = "analytics:cross-site"

// SiteCounts 单个站点的原始计数
type SiteCounts struct {
	TotalEntries    int64
	TodayEntries    int64
	ActiveGiveaways int64
	EndedGiveaways  int64
	TotalWinners    int64
}

// Overview 站点仪表盘概览
type Overview struct {
	TotalEntries    int64 `json:"totalEntries"`
	TodayEntries    int64 `json:"todayEntries"`
	ActiveGiveaways int64 `json:"activeGiveaways"`
	TotalWinners    int64 `json:"totalWinners"`
}

// SiteStats 跨站点对比中的一行
type SiteStats struct {
	SiteID                string `json:"siteId"`
	SiteName              string `json:"siteName"`
	Color                 string `json:"color"`
	TotalEntries          int64  `json:"totalEntries"`
	ActiveGiveaways       int64  `json:"activeGiveaways"`
	CompletedGiveaways    int64  `json:"completedGiveaways"`
	WinnersDrawn          int64  `json:"winnersDrawn"`
	AvgEntriesPerGiveaway int64  `json:"avgEntriesPerGiveaway"`
}

// Totals 所有站点合计
type Totals struct {
	Entries         int64 `json:"entries"`
	ActiveGiveaways int64 `json:"activeGiveaways"`
	Winners         int64 `json:"winners"`
}

type CrossSite struct {
	Sites  []SiteStats `json:"sites"`
	Totals Totals      `json:"totals"`
}
