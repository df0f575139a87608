package source

import (
	"time"
)

// 内容来源
const (
	SourceNews  = "news"
	SourceVideo = "video"
	SourceForum = "forum"
)

// ContentItem 归一化后的一条素材，仅在单次抓取-生成流程内存活，不落库
type ContentItem struct {
	Source      string    `json:"source"`
	Topic       string    `json:"topic"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Body        string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
}
