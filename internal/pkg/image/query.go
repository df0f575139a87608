package image

import (
	"regexp"
	"sort"
	"strings"
)

const fallbackQuery = "modern technology workspace developer"

type brandedTool struct {
	pattern *regexp.Regexp
	query   string
}

// 提到具体工具/产品时使用品牌化搜索词，偏向可辨识的品牌图
var brandedTools = []brandedTool{
	{regexp.MustCompile(`(?i)claude\s*(3\.5|3|ai)?`), "Claude AI Anthropic"},
	{regexp.MustCompile(`(?i)gpt-4|gpt4|chatgpt`), "OpenAI ChatGPT GPT-4"},
	{regexp.MustCompile(`(?i)gemini\s*(pro)?`), "Google Gemini AI"},
	{regexp.MustCompile(`(?i)copilot`), "GitHub Copilot coding"},
	{regexp.MustCompile(`(?i)cursor\s*(ai|editor)?`), "Cursor AI code editor"},
	{regexp.MustCompile(`(?i)replit`), "Replit coding AI"},
	{regexp.MustCompile(`(?i)llama\s*\d*`), "Meta Llama AI model"},
	{regexp.MustCompile(`(?i)mistral`), "Mistral AI model"},
	{regexp.MustCompile(`(?i)anthropic`), "Anthropic Claude AI"},
	{regexp.MustCompile(`(?i)openai`), "OpenAI artificial intelligence"},
}

type themeBucket struct {
	keywords []string
	query    string
}

var themeBuckets = []themeBucket{
	{
		keywords: []string{"ai code", "ai coding", "code assistant", "code generation", "ai developer"},
		query:    "artificial intelligence coding software development",
	},
	{
		keywords: []string{"ai", "artificial intelligence", "machine learning", "neural network", "llm", "model"},
		query:    "artificial intelligence technology neural",
	},
	{
		keywords: []string{"code", "coding", "programming", "developer", "software", "debug", "function", "api"},
		query:    "programming code screen developer",
	},
	{
		keywords: []string{"productivity", "workflow", "automation", "efficient", "optimize"},
		query:    "minimal workspace productivity setup",
	},
	{
		keywords: []string{"architecture", "system", "design pattern", "structure", "scalable"},
		query:    "software architecture technology",
	},
	{
		keywords: []string{"data", "analytics", "visualization", "dashboard"},
		query:    "data visualization dashboard",
	},
}

// DeriveQuery 从帖子正文推导搜索词。
// 命中具体工具时返回品牌化查询（branded=true），否则按主题桶打分，
// 多词关键词权重更高；全部零分时退回通用查询。
func DeriveQuery(postText string) (query string, branded bool) {
	if postText == "" {
		return "technology workspace", false
	}

	text := strings.ToLower(postText)

	for _, tool := range brandedTools {
		if tool.pattern.MatchString(text) {
			return tool.query, true
		}
	}

	type scored struct {
		query string
		score int
	}
	scores := make([]scored, 0, len(themeBuckets))
	for _, bucket := range themeBuckets {
		s := scored{query: bucket.query}
		for _, keyword := range bucket.keywords {
			if strings.Contains(text, keyword) {
				s.score += len(strings.Fields(keyword))
			}
		}
		scores = append(scores, s)
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if scores[0].score > 0 {
		return scores[0].query, false
	}
	return fallbackQuery, false
}
