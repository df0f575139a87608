package job

import (
	log "log/slog"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/service"
)

// GrowthJob 每日午间跑一轮增长分析
type GrowthJob struct {
	growthSvc service.GrowthService
}

func NewGrowthJob(growthSvc service.GrowthService) *GrowthJob {
	return &GrowthJob{
		growthSvc: growthSvc,
	}
}

func (s *GrowthJob) Run() {
	ctx := jobContext("growth")
	log.InfoContext(ctx, "start growth analysis job")

	if err := s.growthSvc.AnalyzeGrowth(ctx); err != nil {
		log.ErrorContext(ctx, "growth analysis job failed", "err", err)
	}
}
