package handler

import (
	"strconv"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/dto"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/response"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/service"

	"github.com/gin-gonic/gin"
)

type GrowthHandler struct {
	growthSvc service.GrowthService
}

func NewGrowthHandler(growthSvc service.GrowthService) *GrowthHandler {
	return &GrowthHandler{
		growthSvc: growthSvc,
	}
}

func (s *GrowthHandler) GetRecommendations(c *gin.Context) {
	rec, err := s.growthSvc.Recommendations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rec)
}

func (s *GrowthHandler) GetOptimalSchedule(c *gin.Context) {
	schedule, err := s.growthSvc.OptimalSchedule(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, schedule)
}

func (s *GrowthHandler) GetMetrics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	metrics, err := s.growthSvc.Metrics(c.Request.Context(), days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}

func (s *GrowthHandler) PredictViral(c *gin.Context) {
	var req dto.PredictViralReqDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, s.growthSvc.PredictViral(c.Request.Context(), req.Content))
}
