package job

import (
	log "log/slog"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/consts"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/redis"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/service"

	"github.com/google/uuid"
)

// publishLockTTL 发布锁时长，覆盖一次串推发布的最长耗时
const publishLockTTL = 2 * time.Minute

// PublishJob 发布时段任务：自动发布队列里最早的待发帖
type PublishJob struct {
	publishSvc service.PublishService
}

func NewPublishJob(publishSvc service.PublishService) *PublishJob {
	return &PublishJob{
		publishSvc: publishSvc,
	}
}

func (s *PublishJob) Run() {
	if !config.Cfg.Scheduler.AutoPost || config.Cfg.Scheduler.RequireApproval {
		log.Info("publish job skipped, 自动发布未开启或需人工审核")
		return
	}

	ctx := jobContext("publish")
	lockUUID := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.PublishTickLock, lockUUID, publishLockTTL, 0)
	if err != nil || !ok {
		log.InfoContext(ctx, "publish job skipped, 锁被其他实例持有")
		return
	}
	defer redis.UnLock(ctx, consts.PublishTickLock, lockUUID)

	result, err := s.publishSvc.PublishNextPending(ctx)
	if err != nil {
		log.ErrorContext(ctx, "publish job failed", "err", err)
		return
	}
	if result == nil {
		log.InfoContext(ctx, "publish job: 待发队列为空")
		return
	}
	log.InfoContext(ctx, "publish job finished", "post_id", result.PostID, "status", result.Status)
}

// ScheduleSweepJob 周期扫描到点的定时帖
type ScheduleSweepJob struct {
	publishSvc service.PublishService
}

func NewScheduleSweepJob(publishSvc service.PublishService) *ScheduleSweepJob {
	return &ScheduleSweepJob{
		publishSvc: publishSvc,
	}
}

func (s *ScheduleSweepJob) Run() {
	ctx := jobContext("sweep")
	lockUUID := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.PublishTickLock, lockUUID, publishLockTTL, 0)
	if err != nil || !ok {
		return
	}
	defer redis.UnLock(ctx, consts.PublishTickLock, lockUUID)

	count, err := s.publishSvc.PublishDue(ctx)
	if err != nil {
		log.ErrorContext(ctx, "schedule sweep failed", "err", err)
		return
	}
	if count > 0 {
		log.InfoContext(ctx, "schedule sweep finished", "published", count)
	}
}
