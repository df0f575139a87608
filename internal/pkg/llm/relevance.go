package llm

import (
	"context"
	log "log/slog"
	"strings"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/source"

	"github.com/goccy/go-json"
)

const decisionFilter = "filter"

type relevanceResponse struct {
	Decision string `json:"decision"`
}

// ClassifyContent 判断素材是否值得生成帖子，只有明确的 "filter" 才会拒绝。
// 出错由调用方兜底（保留素材），这里只负责把错误报出去。
func ClassifyContent(ctx context.Context, item *source.ContentItem) (bool, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return true, err
	}

	raw, err := fetchModel(ctx, config.Cfg.LLM.DefaultProvider, contentRelevancePrompt, string(payload), 0.1)
	if err != nil {
		log.ErrorContext(ctx, "相关性分类-AI大模型请求失败", "err", err)
		return true, err
	}

	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var resp relevanceResponse
	if err = json.Unmarshal([]byte(cleaned), &resp); err != nil {
		log.ErrorContext(ctx, "相关性分类-AI大模型返回数据解析失败", "err", err)
		return true, err
	}

	return strings.ToLower(resp.Decision) != decisionFilter, nil
}
