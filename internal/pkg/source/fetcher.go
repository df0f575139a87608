package source

import (
	"context"
	log "log/slog"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

// RelevanceFunc 相关性分类回调，返回 false 表示过滤掉该条素材
type RelevanceFunc func(ctx context.Context, item *ContentItem) (bool, error)

// Fetcher 聚合多个外部内容源
type Fetcher struct {
	cfg      config.SourcesConfig
	client   *resty.Client
	classify RelevanceFunc
}

// NewFetcher classify 为 nil 时只使用静态词表过滤
func NewFetcher(cfg config.SourcesConfig, classify RelevanceFunc) *Fetcher {
	client := resty.New().
		SetTimeout(20 * time.Second)

	return &Fetcher{
		cfg:      cfg,
		client:   client,
		classify: classify,
	}
}

// Fetch 按话题依次抓取，单个话题下三个源并发请求。
// 任一源失败只记日志并贡献零条结果，不中断整体抓取。
func (s *Fetcher) Fetch(ctx context.Context, topics []string) []*ContentItem {
	log.InfoContext(ctx, "开始抓取内容", "topics", topics)

	var all []*ContentItem
	for _, topic := range topics {
		var newsItems, videoItems, forumItems []*ContentItem

		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			newsItems = s.fetchNews(gCtx, topic)
			return nil
		})
		g.Go(func() error {
			videoItems = s.fetchYouTube(gCtx, topic)
			return nil
		})
		g.Go(func() error {
			forumItems = s.fetchReddit(gCtx, topic)
			return nil
		})
		_ = g.Wait()

		all = append(all, newsItems...)
		all = append(all, videoItems...)
		all = append(all, forumItems...)
	}

	result := make([]*ContentItem, 0, len(all))
	for _, item := range all {
		if item.Title == "" || item.Body == "" {
			continue
		}
		if !s.relevant(ctx, item) {
			continue
		}
		result = append(result, item)
	}

	log.InfoContext(ctx, "内容抓取完成", "count", len(result))
	return result
}

// relevant 分类失败时默认保留，避免下游断粮
func (s *Fetcher) relevant(ctx context.Context, item *ContentItem) bool {
	if !s.cfg.LLMFilter || s.classify == nil {
		return true
	}
	keep, err := s.classify(ctx, item)
	if err != nil {
		log.WarnContext(ctx, "相关性分类失败，默认保留", "title", item.Title, "err", err)
		return true
	}
	return keep
}
