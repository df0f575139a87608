package dto

// QuotaDTO 平台月度配额
type QuotaDTO struct {
	Platform     string `json:"platform"`
	Used         int64  `json:"used"`
	Limit        int    `json:"limit"`
	Remaining    int64  `json:"remaining"`
	DailyAverage int64  `json:"daily_average"`
}

// AnalyticsDTO 运行概览
type AnalyticsDTO struct {
	TotalPosted int64     `json:"total_posted"`
	Pending     int64     `json:"pending"`
	Drafts      int64     `json:"drafts"`
	PostedToday int64     `json:"posted_today"`
	Quota       *QuotaDTO `json:"quota"`
}

// HourStatDTO 某小时段的互动统计
type HourStatDTO struct {
	Hour          int     `json:"hour"`
	AvgEngagement float64 `json:"avg_engagement"`
	PostCount     int     `json:"post_count"`
}

// PatternDTO 高互动帖子呈现的内容模式
type PatternDTO struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
	Example string `json:"example,omitempty"`
}

// GrowthRecommendationsDTO 增长建议
type GrowthRecommendationsDTO struct {
	BestHours       []*HourStatDTO `json:"best_hours"`
	WinningPatterns []*PatternDTO  `json:"winning_patterns"`
	Suggestions     []string       `json:"suggestions"`
}

// ScheduleSlotDTO 推荐的发布时段
type ScheduleSlotDTO struct {
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

// OptimalScheduleDTO 推荐发布时间表
type OptimalScheduleDTO struct {
	Slots []*ScheduleSlotDTO `json:"slots"`
}

// DayMetricDTO 按天的发布与互动
type DayMetricDTO struct {
	Date            string `json:"date"`
	Posts           int    `json:"posts"`
	TotalEngagement int    `json:"total_engagement"`
}

// GrowthMetricsDTO 近期增长指标
type GrowthMetricsDTO struct {
	Days          []*DayMetricDTO `json:"days"`
	TotalPosts    int             `json:"total_posts"`
	AvgEngagement float64         `json:"avg_engagement"`
	// 最近 7 天互动量相对前 7 天的百分比变化，前 7 天没有数据时为 0
	WeekOverWeek float64 `json:"week_over_week"`
}

// PredictViralReqDTO 传播力预测请求
type PredictViralReqDTO struct {
	Content string `json:"content" binding:"required" validate:"min=1,max=10000"`
}

// ViralPredictionDTO 传播力预测结果
type ViralPredictionDTO struct {
	Score   int      `json:"score"`
	Verdict string   `json:"verdict"`
	Signals []string `json:"signals"`
}
