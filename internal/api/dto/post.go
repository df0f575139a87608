package dto

// PostDTO 帖子草稿，线程已从存储编码解出
type PostDTO struct {
	ID              uint64   `json:"id"`
	ContentSource   string   `json:"content_source"`
	Tweet           string   `json:"tweet"`
	Thread          []string `json:"thread,omitempty"`
	LinkedInPost    string   `json:"linkedin_post"`
	Tone            string   `json:"tone"`
	ImageURL        string   `json:"image_url,omitempty"`
	HasImage        bool     `json:"has_image"`
	Status          string   `json:"status"`
	ScheduledAt     string   `json:"scheduled_at,omitempty"`
	EngagementScore int      `json:"engagement_score"`
	CreatedAt       string   `json:"created_at"`
	PostedAt        string   `json:"posted_at,omitempty"`
}

// FetchContentDTO 抓取到的原始素材
type FetchContentDTO struct {
	Source      string `json:"source"`
	Topic       string `json:"topic"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt string `json:"published_at,omitempty"`
}

// FetchContentReqDTO 抓取请求，不传 topics 用配置默认值
type FetchContentReqDTO struct {
	Topics []string `json:"topics" validate:"max=10"`
}

// GeneratePostsReqDTO 文案生成请求
type GeneratePostsReqDTO struct {
	Content   string `json:"content" binding:"required" validate:"min=1,max=10000"`
	Title     string `json:"title" validate:"max=512"`
	Tone      string `json:"tone" validate:"max=32"`
	Provider  string `json:"provider" validate:"max=32"`
	WithImage *bool  `json:"with_image"`
}

// PublishReqDTO 发布请求，不传 platforms 则发配置启用的全部平台；
// 文案覆盖仅对本次发布生效，不回写草稿
type PublishReqDTO struct {
	Platforms    []string `json:"platforms" validate:"max=2,dive,oneof=twitter linkedin"`
	TwitterText  string   `json:"twitter_text" validate:"max=280"`
	LinkedinText string   `json:"linkedin_text" validate:"max=5000"`
}

// SchedulePostReqDTO 定时发布请求，scheduled_at 传空串表示取消定时
type SchedulePostReqDTO struct {
	PostID      uint64 `json:"post_id" binding:"required"`
	ScheduledAt string `json:"scheduled_at"`
}

// PlatformResultDTO 单平台发布结果
type PlatformResultDTO struct {
	Platform       string `json:"platform"`
	Success        bool   `json:"success"`
	PlatformPostID string `json:"platform_post_id,omitempty"`
	URL            string `json:"url,omitempty"`
	HasImage       bool   `json:"has_image"`
	Error          string `json:"error,omitempty"`
}

// PublishResultDTO 整次发布结果
type PublishResultDTO struct {
	PostID  uint64               `json:"post_id"`
	Status  string               `json:"status"`
	Results []*PlatformResultDTO `json:"results"`
}
