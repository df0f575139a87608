package cron

import (
	"fmt"
	log "log/slog"
	"strconv"
	"strings"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/job"

	"github.com/robfig/cron/v3"
)

const (
	fetchSpec  = "0 0 */6 * * *"
	sweepSpec  = "0 */5 * * * *"
	quotaSpec  = "0 0 0 * * *"
	growthSpec = "0 0 12 * * *"
)

type Manager struct {
	engine     *cron.Cron
	fetchJob   *job.FetchJob
	publishJob *job.PublishJob
	sweepJob   *job.ScheduleSweepJob
	quotaJob   *job.QuotaJob
	growthJob  *job.GrowthJob
}

func NewCronManager(fetchJob *job.FetchJob, publishJob *job.PublishJob, sweepJob *job.ScheduleSweepJob,
	quotaJob *job.QuotaJob, growthJob *job.GrowthJob) *Manager {
	return &Manager{
		engine:     cron.New(cron.WithSeconds()),
		fetchJob:   fetchJob,
		publishJob: publishJob,
		sweepJob:   sweepJob,
		quotaJob:   quotaJob,
		growthJob:  growthJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(fetchSpec, s.fetchJob); err != nil {
		return err
	}
	for _, t := range config.Cfg.Scheduler.PostingTimes {
		spec, err := postingTimeSpec(t)
		if err != nil {
			return err
		}
		if _, err := s.engine.AddJob(spec, s.publishJob); err != nil {
			return err
		}
	}
	if _, err := s.engine.AddJob(sweepSpec, s.sweepJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(quotaSpec, s.quotaJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(growthSpec, s.growthJob); err != nil {
		return err
	}
	return nil
}

// postingTimeSpec 把 "HH:MM" 转成 cron 表达式
func postingTimeSpec(t string) (string, error) {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid posting time %q", t)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid posting time %q", t)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid posting time %q", t)
	}
	return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
