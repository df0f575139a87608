package handler

import (
	"strconv"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/dto"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/response"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc    service.PostService
	publishSvc service.PublishService
}

func NewPostHandler(postSvc service.PostService, publishSvc service.PublishService) *PostHandler {
	return &PostHandler{
		postSvc:    postSvc,
		publishSvc: publishSvc,
	}
}

// GeneratePosts 由素材生成双平台文案
func (s *PostHandler) GeneratePosts(c *gin.Context) {
	var req dto.GeneratePostsReqDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.GeneratePosts(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) GetPendingPosts(c *gin.Context) {
	posts, err := s.postSvc.GetPendingPosts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetAllPosts(c *gin.Context) {
	posts, err := s.postSvc.GetAllPosts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// PublishPost 立即发布，body 可选指定平台
func (s *PostHandler) PublishPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.PublishReqDTO
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		response.Error(c, err)
		return
	}

	result, err := s.publishSvc.PublishPost(c.Request.Context(), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) RegenerateImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	post, err := s.postSvc.RegenerateImage(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) SchedulePost(c *gin.Context) {
	var req dto.SchedulePostReqDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.postSvc.SchedulePost(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) GetAnalytics(c *gin.Context) {
	analytics, err := s.postSvc.GetAnalytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, analytics)
}
