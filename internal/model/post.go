package model

import (
	"time"
)

// PostStatus 帖子生命周期状态，只允许 draft/pending -> posted 单向转移
type PostStatus string

const (
	StatusDraft   PostStatus = "draft"
	StatusPending PostStatus = "pending"
	StatusPosted  PostStatus = "posted"
)

// Valid 校验状态取值
func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusPosted:
		return true
	}
	return false
}

// Post 一条待发布/已发布的帖子，嵌套结构序列化为 JSON 文本列
type Post struct {
	ID              uint64     `gorm:"primaryKey" json:"id"`
	ContentSource   string     `gorm:"type:text;not null" json:"content_source"`
	TwitterPost     string     `gorm:"type:varchar(512)" json:"twitter_post"`
	TwitterThread   string     `gorm:"type:text" json:"twitter_thread"`
	LinkedinPost    string     `gorm:"type:text" json:"linkedin_post"`
	Tone            string     `gorm:"type:varchar(32)" json:"tone"`
	ImageURL        string     `gorm:"type:varchar(1024)" json:"image_url"`
	ImageData       string     `gorm:"type:text" json:"image_data"`
	Status          PostStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_posts_status" json:"status"`
	ScheduledAt     *time.Time `gorm:"index:idx_posts_scheduled" json:"scheduled_at"`
	EngagementScore int        `gorm:"not null;default:0" json:"engagement_score"`
	CreatedAt       time.Time  `json:"created_at"`
	PostedAt        *time.Time `json:"posted_at"`
}

func (Post) TableName() string {
	return "posts"
}
