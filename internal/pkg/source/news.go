package source

import (
	"context"
	log "log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const defaultNewsURL = "https://newsapi.org/v2"

// 正文短于该长度时尝试抓取原文页补全
const newsBodyMinLength = 200

// 抽取出的正文最多保留的字符数
const articleTextBudget = 2000

type newsResponse struct {
	Articles []struct {
		URL         string `json:"url"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// fetchNews 从 News API 搜索最近 7 天的文章
func (s *Fetcher) fetchNews(ctx context.Context, topic string) []*ContentItem {
	cfg := s.cfg.News
	if cfg.ApiKey == "" {
		log.WarnContext(ctx, "News API 未配置，跳过新闻抓取")
		return nil
	}

	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = defaultNewsURL
	}

	fromDate := time.Now().AddDate(0, 0, -7).Format("2006-01-02")

	var body newsResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        topic,
			"from":     fromDate,
			"sortBy":   "publishedAt",
			"language": "en",
			"pageSize": "5",
			"apiKey":   cfg.ApiKey,
		}).
		SetResult(&body).
		Get(baseURL + "/everything")
	if err != nil {
		log.ErrorContext(ctx, "News API 请求失败", "topic", topic, "err", err)
		return nil
	}
	if resp.StatusCode() != http.StatusOK {
		log.ErrorContext(ctx, "News API 返回异常状态", "topic", topic, "status", resp.StatusCode())
		return nil
	}

	var items []*ContentItem
	for _, article := range body.Articles {
		if Excluded(article.Title, article.Description+" "+article.Content) {
			log.InfoContext(ctx, "命中排除词表，已过滤", "title", article.Title)
			continue
		}

		text := article.Description
		if text == "" {
			text = article.Content
		}
		if len(text) < newsBodyMinLength && article.URL != "" {
			if extracted := s.extractArticle(ctx, article.URL); extracted != "" {
				text = extracted
			}
		}

		publishedAt, _ := time.Parse(time.RFC3339, article.PublishedAt)
		items = append(items, &ContentItem{
			Source:      SourceNews,
			Topic:       topic,
			URL:         article.URL,
			Title:       article.Title,
			Body:        text,
			PublishedAt: publishedAt,
		})
	}
	return items
}

// extractArticle 抓取原文页并用 readability 抽取正文，失败时退回 og:description
func (s *Fetcher) extractArticle(ctx context.Context, pageURL string) string {
	resp, err := s.client.R().SetContext(ctx).Get(pageURL)
	if err != nil || resp.StatusCode() != http.StatusOK {
		return ""
	}
	html := resp.String()

	article, err := readability.FromReader(strings.NewReader(html), resp.RawResponse.Request.URL)
	if err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return truncateArticleText(text)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	desc, _ := doc.Find(`meta[property="og:description"]`).Attr("content")
	return strings.TrimSpace(desc)
}

// truncateArticleText 按 rune 截断，避免把多字节字符劈成无效 UTF-8
func truncateArticleText(text string) string {
	runes := []rune(text)
	if len(runes) <= articleTextBudget {
		return text
	}
	return string(runes[:articleTextBudget])
}
