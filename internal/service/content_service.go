package service

import (
	"context"
	log "log/slog"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/dto"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/source"
)

type ContentService interface {
	FetchContent(ctx context.Context, topics []string) ([]*dto.FetchContentDTO, error)
	FetchItems(ctx context.Context, topics []string) ([]*source.ContentItem, error)
}

type contentServiceImpl struct {
	fetcher *source.Fetcher
}

func NewContentService(fetcher *source.Fetcher) ContentService {
	return &contentServiceImpl{
		fetcher: fetcher,
	}
}

// FetchItems 抓取各内容源，topics 为空时回落到配置的默认主题
func (s *contentServiceImpl) FetchItems(ctx context.Context, topics []string) ([]*source.ContentItem, error) {
	if len(topics) == 0 {
		topics = config.Cfg.Scheduler.Topics
	}
	if len(topics) == 0 {
		return nil, ErrParamInvalid
	}

	items := s.fetcher.Fetch(ctx, topics)
	if len(items) == 0 {
		return nil, ErrNoContentFetched
	}
	log.InfoContext(ctx, "content fetched", "topics", topics, "count", len(items))
	return items, nil
}

func (s *contentServiceImpl) FetchContent(ctx context.Context, topics []string) ([]*dto.FetchContentDTO, error) {
	items, err := s.FetchItems(ctx, topics)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.FetchContentDTO, 0, len(items))
	for _, item := range items {
		d := &dto.FetchContentDTO{
			Source:  item.Source,
			Topic:   item.Topic,
			URL:     item.URL,
			Title:   item.Title,
			Content: item.Body,
		}
		if !item.PublishedAt.IsZero() {
			d.PublishedAt = item.PublishedAt.Format(time.RFC3339)
		}
		result = append(result, d)
	}
	return result, nil
}
