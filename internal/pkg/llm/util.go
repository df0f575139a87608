package llm

import (
	"context"
	"fmt"
	log "log/slog"
	"os"

	"github.com/tmc/langchaingo/llms"
)

func readPrompt(file string) string {
	data, err := os.ReadFile(file)
	if err != nil {
		log.Error("读取prompt文件失败", "file", file, "err", err)
		return ""
	}
	return string(data)
}

func client(provider string) (llms.Model, error) {
	c, ok := clients[provider]
	if !ok {
		return nil, fmt.Errorf("provider %q is not configured", provider)
	}
	return c, nil
}

func fetchModel(ctx context.Context, provider string, systemPrompt string, userPrompt string, temp float64) (string, error) {
	c, err := client(provider)
	if err != nil {
		return "", err
	}

	if err = TextSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer TextSem.Release(1)

	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}

	log.InfoContext(ctx, "正在请求AI大模型", "provider", provider)
	resp, err := c.GenerateContent(ctx, messages, llms.WithTemperature(temp))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("provider %q returned no choices", provider)
	}
	return resp.Choices[0].Content, nil
}
