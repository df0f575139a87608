package llm

import (
	"context"
	"fmt"
	log "log/slog"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/source"
)

// 控制成本，正文超出该长度时截断后再拼进 prompt
const contentBodyBudget = 1500

// Generate 基于一条素材生成三种形态的帖子文案。
// 指定 provider 失败（请求或解析）且默认 provider 与之不同时，
// 用默认 provider 整体重试一次，仍失败才向调用方报错。
func Generate(ctx context.Context, content *source.ContentItem, provider string, tone string) (*GeneratedPosts, error) {
	cfg := config.Cfg.LLM
	if provider == "" {
		provider = cfg.DefaultProvider
	}
	if tone == "" {
		tone = cfg.DefaultTone
	}

	posts, err := generateOnce(ctx, content, provider, tone)
	if err == nil {
		return posts, nil
	}

	if provider != cfg.DefaultProvider {
		log.WarnContext(ctx, "生成失败，回退到默认 provider", "provider", provider, "fallback", cfg.DefaultProvider, "err", err)
		posts, fallbackErr := generateOnce(ctx, content, cfg.DefaultProvider, tone)
		if fallbackErr == nil {
			return posts, nil
		}
		return nil, fmt.Errorf("generate with %s failed after fallback: %w", cfg.DefaultProvider, fallbackErr)
	}

	return nil, fmt.Errorf("generate with %s failed: %w", provider, err)
}

func generateOnce(ctx context.Context, content *source.ContentItem, provider string, tone string) (*GeneratedPosts, error) {
	body := truncateRunes(content.Body, contentBodyBudget)

	userPrompt := fmt.Sprintf("Title: %s\nContent: %s\n\nTone: %s", content.Title, body, tone)

	raw, err := fetchModel(ctx, provider, postGeneratePrompt, userPrompt, 0.8)
	if err != nil {
		log.ErrorContext(ctx, "帖子生成-AI大模型请求失败", "provider", provider, "err", err)
		return nil, err
	}

	posts, err := ParseGeneratedPosts(raw)
	if err != nil {
		log.ErrorContext(ctx, "帖子生成-AI大模型返回数据解析失败", "provider", provider, "err", err)
		return nil, err
	}
	return posts, nil
}
