package job

import (
	log "log/slog"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/consts"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/redis"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/service"
)

// QuotaJob 每日配额巡检，余量过低时告警一次
type QuotaJob struct {
	publishSvc service.PublishService
}

func NewQuotaJob(publishSvc service.PublishService) *QuotaJob {
	return &QuotaJob{
		publishSvc: publishSvc,
	}
}

func (s *QuotaJob) Run() {
	ctx := jobContext("quota")

	quota, err := s.publishSvc.QuotaReport(ctx)
	if err != nil {
		log.ErrorContext(ctx, "quota job failed", "err", err)
		return
	}
	log.InfoContext(ctx, "quota check", "platform", quota.Platform, "used", quota.Used,
		"remaining", quota.Remaining, "daily_average", quota.DailyAverage)

	if quota.Remaining >= consts.QuotaWarnThreshold {
		return
	}

	// 当月只告警一次
	warnKey := consts.QuotaWarnKey + time.Now().Format("2006-01")
	first, err := redis.TryLock(ctx, warnKey, "1", 31*24*time.Hour, 0)
	if err != nil || !first {
		return
	}
	log.WarnContext(ctx, "twitter quota running low, 本月配额告急",
		"remaining", quota.Remaining, "limit", quota.Limit)
}
