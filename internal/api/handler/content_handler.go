package handler

import (
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/dto"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/response"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/service"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contentSvc service.ContentService
}

func NewContentHandler(contentSvc service.ContentService) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

// FetchContent 手动触发内容抓取
func (s *ContentHandler) FetchContent(c *gin.Context) {
	var req dto.FetchContentReqDTO
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, err)
		return
	}

	items, err := s.contentSvc.FetchContent(c.Request.Context(), req.Topics)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}
