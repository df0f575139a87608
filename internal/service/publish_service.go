package service

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/dto"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/model"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/consts"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/minio"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/social"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/repository"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// quotaWindowDays 配额按月发放，日均额度按 30 天摊
const quotaWindowDays = 30

type PublishService interface {
	PublishPost(ctx context.Context, id uint64, req *dto.PublishReqDTO) (*dto.PublishResultDTO, error)
	PublishNextPending(ctx context.Context) (*dto.PublishResultDTO, error)
	PublishDue(ctx context.Context) (int, error)
	QuotaReport(ctx context.Context) (*dto.QuotaDTO, error)
}

type publishServiceImpl struct {
	postRepo    repository.PostRepo
	outcomeRepo repository.OutcomeRepo
	twitter     *social.TwitterClient
	linkedin    *social.LinkedInClient
	client      *resty.Client
}

func NewPublishService(postRepo repository.PostRepo, outcomeRepo repository.OutcomeRepo,
	twitter *social.TwitterClient, linkedin *social.LinkedInClient) PublishService {
	return &publishServiceImpl{
		postRepo:    postRepo,
		outcomeRepo: outcomeRepo,
		twitter:     twitter,
		linkedin:    linkedin,
		client:      resty.New().SetTimeout(30 * time.Second),
	}
}

// PublishPost 按平台逐个发布，单平台失败不拖垮其余平台。
// 请求里的文案覆盖只作用于本次发布，草稿原文不动
func (s *publishServiceImpl) PublishPost(ctx context.Context, id uint64, req *dto.PublishReqDTO) (*dto.PublishResultDTO, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, UnExpectedError
	}
	if post.Status == model.StatusPosted {
		return nil, ErrPostAlreadyPosted
	}

	var platforms []string
	if req != nil {
		platforms = req.Platforms
		if req.TwitterText != "" {
			post.TwitterPost = req.TwitterText
			post.TwitterThread = ""
		}
		if req.LinkedinText != "" {
			post.LinkedinPost = req.LinkedinText
		}
	}
	if len(platforms) == 0 {
		platforms = config.Cfg.Scheduler.Platforms
	}
	if len(platforms) == 0 {
		platforms = []string{consts.PlatformTwitter, consts.PlatformLinkedIn}
	}

	result := &dto.PublishResultDTO{
		PostID: id,
	}
	anySuccess := false
	for _, platform := range platforms {
		pr := s.publishTo(ctx, post, platform)
		if pr.Success {
			anySuccess = true
		}
		result.Results = append(result.Results, pr)
	}

	if anySuccess {
		if err := s.postRepo.UpdateStatus(ctx, id, model.StatusPosted); err != nil {
			log.ErrorContext(ctx, "update post status failed", "post_id", id, "err", err)
		}
		post.Status = model.StatusPosted
	}
	result.Status = string(post.Status)
	return result, nil
}

func (s *publishServiceImpl) publishTo(ctx context.Context, post *model.Post, platform string) *dto.PlatformResultDTO {
	pr := &dto.PlatformResultDTO{
		Platform: platform,
	}

	// 已发过的平台不重复发
	done, err := s.outcomeRepo.HasOutcome(ctx, post.ID, platform)
	if err == nil && done {
		pr.Error = ErrPostAlreadyPosted.Error()
		return pr
	}

	switch platform {
	case consts.PlatformTwitter:
		s.publishTwitter(ctx, post, pr)
	case consts.PlatformLinkedIn:
		s.publishLinkedIn(ctx, post, pr)
	default:
		pr.Error = ErrParamInvalid.Error()
		return pr
	}

	if pr.Success {
		outcome := &model.PublishOutcome{
			PostID:         post.ID,
			Platform:       platform,
			PlatformPostID: pr.PlatformPostID,
			URL:            pr.URL,
			HasImage:       pr.HasImage,
			OccurredAt:     time.Now(),
		}
		if err := s.outcomeRepo.CreateOutcome(ctx, outcome); err != nil {
			log.ErrorContext(ctx, "record publish outcome failed", "post_id", post.ID, "platform", platform, "err", err)
		}
		log.InfoContext(ctx, "post published", "post_id", post.ID, "platform", platform, "url", pr.URL)
	} else {
		log.WarnContext(ctx, "publish failed", "post_id", post.ID, "platform", platform, "err", pr.Error)
	}
	return pr
}

func (s *publishServiceImpl) publishTwitter(ctx context.Context, post *model.Post, pr *dto.PlatformResultDTO) {
	if post.TwitterPost == "" {
		pr.Error = ErrNoPlatformText.Error()
		return
	}
	twitterCfg := config.Cfg.Twitter
	if twitterCfg.ApiKey == "" || twitterCfg.ApiSecret == "" ||
		twitterCfg.AccessToken == "" || twitterCfg.AccessSecret == "" {
		pr.Error = ErrPlatformNotConfigured.Error()
		return
	}

	// 配额只做提示，超了也照发，平台侧自会拒绝
	if quota, err := twitterQuota(ctx, s.outcomeRepo); err == nil && quota.Remaining <= 0 {
		log.WarnContext(ctx, "twitter 月配额已用完，仍尝试发布", "used", quota.Used, "limit", quota.Limit)
	}

	var thread []string
	if post.TwitterThread != "" {
		if err := json.Unmarshal([]byte(post.TwitterThread), &thread); err != nil {
			log.WarnContext(ctx, "twitter thread 解析失败，只发主推文", "post_id", post.ID, "err", err)
			thread = nil
		}
	}

	var tweetID string
	var err error
	if len(thread) > 0 {
		tweetID, err = s.twitter.PostThread(ctx, post.TwitterPost, thread)
	} else {
		tweetID, err = s.twitter.PostTweet(ctx, post.TwitterPost, "")
	}
	if err != nil {
		pr.Error = err.Error()
		return
	}

	pr.Success = true
	pr.PlatformPostID = tweetID
	pr.URL = s.twitter.TweetURL(tweetID)
}

func (s *publishServiceImpl) publishLinkedIn(ctx context.Context, post *model.Post, pr *dto.PlatformResultDTO) {
	if post.LinkedinPost == "" {
		pr.Error = ErrNoPlatformText.Error()
		return
	}
	linkedinCfg := config.Cfg.LinkedIn
	if linkedinCfg.AccessToken == "" || linkedinCfg.PersonURN == "" {
		pr.Error = ErrPlatformNotConfigured.Error()
		return
	}

	imageData := s.loadImage(ctx, post)
	postID, hasImage, err := s.linkedin.CreatePost(ctx, post.LinkedinPost, imageData)
	if err != nil {
		pr.Error = err.Error()
		return
	}

	pr.Success = true
	pr.PlatformPostID = postID
	pr.HasImage = hasImage
	if postID != "" {
		pr.URL = s.linkedin.PostURL(postID)
	}
}

// loadImage 优先取归档副本，归档不可用再回源下载，都失败就无图发布
func (s *publishServiceImpl) loadImage(ctx context.Context, post *model.Post) []byte {
	if post.ImageData != "" && minio.Enabled() {
		data, err := minio.FetchObject(ctx, post.ImageData)
		if err == nil {
			return data
		}
		log.WarnContext(ctx, "fetch archived image failed", "object", post.ImageData, "err", err)
	}

	if post.ImageURL == "" {
		return nil
	}
	resp, err := s.client.R().SetContext(ctx).Get(post.ImageURL)
	if err != nil || resp.IsError() {
		log.WarnContext(ctx, "download image failed", "url", post.ImageURL, "err", err)
		return nil
	}
	return resp.Body()
}

// PublishNextPending 取最早的待发帖发布，队列为空返回 nil
func (s *publishServiceImpl) PublishNextPending(ctx context.Context) (*dto.PublishResultDTO, error) {
	post, err := s.postRepo.GetOldestPending(ctx)
	if err != nil {
		return nil, UnExpectedError
	}
	if post == nil {
		return nil, nil
	}
	return s.PublishPost(ctx, post.ID, nil)
}

// PublishDue 扫描到点的定时帖并发布，返回处理条数
func (s *publishServiceImpl) PublishDue(ctx context.Context) (int, error) {
	posts, err := s.postRepo.GetDueScheduled(ctx, "", time.Now())
	if err != nil {
		return 0, UnExpectedError
	}

	count := 0
	for _, post := range posts {
		if _, err := s.PublishPost(ctx, post.ID, nil); err != nil {
			log.ErrorContext(ctx, "publish scheduled post failed", "post_id", post.ID, "err", err)
			continue
		}
		count++
	}
	return count, nil
}

func (s *publishServiceImpl) QuotaReport(ctx context.Context) (*dto.QuotaDTO, error) {
	quota, err := twitterQuota(ctx, s.outcomeRepo)
	if err != nil {
		return nil, UnExpectedError
	}
	return quota, nil
}

// twitterQuota 本月已用 / 剩余 / 日均可用额度
func twitterQuota(ctx context.Context, outcomeRepo repository.OutcomeRepo) (*dto.QuotaDTO, error) {
	limit := config.Cfg.Twitter.MonthlyLimit
	if limit <= 0 {
		limit = consts.DefaultMonthlyLimit
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	used, err := outcomeRepo.CountSince(ctx, consts.PlatformTwitter, monthStart)
	if err != nil {
		return nil, fmt.Errorf("count twitter outcomes: %w", err)
	}

	remaining := int64(limit) - used
	if remaining < 0 {
		remaining = 0
	}
	return &dto.QuotaDTO{
		Platform:     consts.PlatformTwitter,
		Used:         used,
		Limit:        limit,
		Remaining:    remaining,
		DailyAverage: remaining / quotaWindowDays,
	}, nil
}
