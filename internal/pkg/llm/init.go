package llm

import (
	"fmt"
	log "log/slog"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// clients 按 provider 名索引的模型客户端，全部走 OpenAI 兼容协议
var clients map[string]llms.Model

var postGeneratePrompt string
var contentRelevancePrompt string

func InitLLM() error {
	cfg := config.Cfg.LLM

	clients = make(map[string]llms.Model, len(cfg.Providers))
	for name, provider := range cfg.Providers {
		client, err := openai.New(
			openai.WithModel(provider.Model),
			openai.WithToken(provider.ApiKey),
			openai.WithBaseURL(provider.URL),
		)
		if err != nil {
			log.Error("AI大模型初始化失败", "provider", name, "err", err)
			return err
		}
		clients[name] = client
	}

	if _, ok := clients[cfg.DefaultProvider]; !ok {
		return fmt.Errorf("default provider %q is not configured", cfg.DefaultProvider)
	}

	// 从prompt txt文件中读取prompt
	postGeneratePrompt = readPrompt(cfg.PromptsPath.PostGenerate)
	contentRelevancePrompt = readPrompt(cfg.PromptsPath.ContentRelevance)

	return nil
}
