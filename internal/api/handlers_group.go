package api

import "github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	ContentHandler *handler.ContentHandler
	PostHandler    *handler.PostHandler
	GrowthHandler  *handler.GrowthHandler
}
