package source

import (
	"context"
	log "log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultRedditURL = "https://www.reddit.com"

// 话题到 subreddit 的映射，未命中的话题直接小写作为 subreddit
var subredditMap = map[string]string{
	"AI":             "MachineLearning+artificial+OpenAI",
	"Startups":       "startups+Entrepreneur",
	"Product Design": "ProductManagement+UXDesign",
	"Marketing":      "marketing+growth_hacking",
	"Technology":     "technology+tech",
}

type redditSearchResponse struct {
	Data struct {
		Children []struct {
			Data struct {
				Title      string  `json:"title"`
				Selftext   string  `json:"selftext"`
				Permalink  string  `json:"permalink"`
				CreatedUTC float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// fetchReddit 通过公开 JSON 接口搜索本周热帖
func (s *Fetcher) fetchReddit(ctx context.Context, topic string) []*ContentItem {
	cfg := s.cfg.Reddit
	if cfg.UserAgent == "" {
		log.WarnContext(ctx, "Reddit UserAgent 未配置，跳过论坛抓取")
		return nil
	}

	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = defaultRedditURL
	}

	subreddit, ok := subredditMap[topic]
	if !ok {
		subreddit = strings.ToLower(topic)
	}

	var body redditSearchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", cfg.UserAgent).
		SetQueryParams(map[string]string{
			"q":           topic,
			"restrict_sr": "on",
			"sort":        "hot",
			"t":           "week",
			"limit":       "5",
		}).
		SetResult(&body).
		Get(baseURL + "/r/" + subreddit + "/search.json")
	if err != nil {
		log.ErrorContext(ctx, "Reddit API 请求失败", "topic", topic, "err", err)
		return nil
	}
	if resp.StatusCode() != http.StatusOK {
		log.ErrorContext(ctx, "Reddit API 返回异常状态", "topic", topic, "status", resp.StatusCode())
		return nil
	}

	var items []*ContentItem
	for _, child := range body.Data.Children {
		post := child.Data
		text := post.Selftext
		if text == "" {
			text = post.Title
		}
		if Excluded(post.Title, text) {
			continue
		}

		items = append(items, &ContentItem{
			Source:      SourceForum,
			Topic:       topic,
			URL:         "https://reddit.com" + post.Permalink,
			Title:       post.Title,
			Body:        text,
			PublishedAt: time.Unix(int64(post.CreatedUTC), 0).UTC(),
		})
	}
	return items
}
