package model

import (
	"time"
)

// PublishOutcome 单次发布成功的结果，(post_id, platform) 唯一，用于月度配额统计
type PublishOutcome struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	PostID         uint64    `gorm:"not null;uniqueIndex:uk_outcome_post_platform" json:"post_id"`
	Platform       string    `gorm:"type:varchar(16);not null;uniqueIndex:uk_outcome_post_platform" json:"platform"`
	PlatformPostID string    `gorm:"type:varchar(128)" json:"platform_post_id"`
	URL            string    `gorm:"type:varchar(512)" json:"url"`
	HasImage       bool      `gorm:"not null;default:0" json:"has_image"`
	OccurredAt     time.Time `gorm:"not null;index:idx_outcome_occurred" json:"occurred_at"`
}

func (PublishOutcome) TableName() string {
	return "publish_outcomes"
}
