package source

import (
	"context"
	log "log/slog"
	"net/http"
	"time"
)

const defaultYouTubeURL = "https://www.googleapis.com/youtube/v3"

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			PublishedAt string `json:"publishedAt"`
		} `json:"snippet"`
	} `json:"items"`
}

// fetchYouTube 搜索最近 30 天按时间排序的视频，正文取视频简介
func (s *Fetcher) fetchYouTube(ctx context.Context, topic string) []*ContentItem {
	cfg := s.cfg.YouTube
	if cfg.ApiKey == "" {
		log.WarnContext(ctx, "YouTube API 未配置，跳过视频抓取")
		return nil
	}

	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = defaultYouTubeURL
	}

	publishedAfter := time.Now().AddDate(0, 0, -30).UTC().Format(time.RFC3339)

	var body youtubeSearchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part":           "snippet",
			"q":              topic,
			"type":           "video",
			"order":          "date",
			"publishedAfter": publishedAfter,
			"maxResults":     "3",
			"key":            cfg.ApiKey,
		}).
		SetResult(&body).
		Get(baseURL + "/search")
	if err != nil {
		log.ErrorContext(ctx, "YouTube API 请求失败", "topic", topic, "err", err)
		return nil
	}
	if resp.StatusCode() != http.StatusOK {
		log.ErrorContext(ctx, "YouTube API 返回异常状态", "topic", topic, "status", resp.StatusCode())
		return nil
	}

	var items []*ContentItem
	for _, item := range body.Items {
		if Excluded(item.Snippet.Title, item.Snippet.Description) {
			continue
		}

		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		items = append(items, &ContentItem{
			Source:      SourceVideo,
			Topic:       topic,
			URL:         "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Title:       item.Snippet.Title,
			Body:        item.Snippet.Description,
			PublishedAt: publishedAt,
		})
	}
	return items
}
