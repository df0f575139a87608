package service

import (
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/dto"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/model"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/image"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/llm"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/minio"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/source"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/repository"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// PendingListLimit 待审列表单页上限
const PendingListLimit = 50

type PostService interface {
	GeneratePosts(ctx context.Context, req *dto.GeneratePostsReqDTO) (*dto.PostDTO, error)
	CreateFromItem(ctx context.Context, item *source.ContentItem, tone string) (*model.Post, error)
	GetPendingPosts(ctx context.Context) ([]*dto.PostDTO, error)
	GetAllPosts(ctx context.Context) ([]*dto.PostDTO, error)
	DeletePost(ctx context.Context, id uint64) error
	RegenerateImage(ctx context.Context, id uint64) (*dto.PostDTO, error)
	SchedulePost(ctx context.Context, req *dto.SchedulePostReqDTO) error
	GetAnalytics(ctx context.Context) (*dto.AnalyticsDTO, error)
}

type postServiceImpl struct {
	postRepo    repository.PostRepo
	outcomeRepo repository.OutcomeRepo
	resolver    *image.Resolver
}

func NewPostService(postRepo repository.PostRepo, outcomeRepo repository.OutcomeRepo, resolver *image.Resolver) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		outcomeRepo: outcomeRepo,
		resolver:    resolver,
	}
}

// GeneratePosts 由给定素材生成双平台文案并入库
func (s *postServiceImpl) GeneratePosts(ctx context.Context, req *dto.GeneratePostsReqDTO) (*dto.PostDTO, error) {
	item := &source.ContentItem{
		Title: req.Title,
		Body:  req.Content,
	}

	posts, err := llm.Generate(ctx, item, req.Provider, req.Tone)
	if err != nil {
		log.ErrorContext(ctx, "generate posts failed", "err", err)
		return nil, ErrGenerateFailed
	}

	post, err := s.buildPost(ctx, item, posts, req.Tone, req.WithImage == nil || *req.WithImage)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		log.ErrorContext(ctx, "create post failed", "err", err)
		return nil, UnExpectedError
	}
	return toPostDTO(post), nil
}

// CreateFromItem 定时抓取管线用：单条素材 -> 文案 -> 配图 -> 入库。
// 开了人工审核的实例落为草稿，否则直接进待发队列。
func (s *postServiceImpl) CreateFromItem(ctx context.Context, item *source.ContentItem, tone string) (*model.Post, error) {
	posts, err := llm.Generate(ctx, item, "", tone)
	if err != nil {
		return nil, err
	}

	post, err := s.buildPost(ctx, item, posts, tone, true)
	if err != nil {
		return nil, err
	}
	if config.Cfg.Scheduler.RequireApproval {
		post.Status = model.StatusDraft
	}
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// buildPost 组装帖子记录，配图失败只降级不报错
func (s *postServiceImpl) buildPost(ctx context.Context, item *source.ContentItem, posts *llm.GeneratedPosts, tone string, withImage bool) (*model.Post, error) {
	if tone == "" {
		tone = config.Cfg.LLM.DefaultTone
	}

	threadJSON := ""
	if len(posts.Twitter.Thread) > 0 {
		raw, err := json.Marshal(posts.Twitter.Thread)
		if err != nil {
			return nil, ErrGenerateFailed
		}
		threadJSON = string(raw)
	}

	contentSource := item.Body
	if item.Title != "" {
		contentSource = item.Title + "\n\n" + item.Body
	}

	post := &model.Post{
		ContentSource: contentSource,
		TwitterPost:   posts.Twitter.Tweet,
		TwitterThread: threadJSON,
		LinkedinPost:  posts.LinkedIn.Post,
		Tone:          tone,
		Status:        model.StatusPending,
	}

	if withImage {
		s.attachImage(ctx, post)
	}
	return post, nil
}

// attachImage 搜图并归档，任一步失败帖子保持无图
func (s *postServiceImpl) attachImage(ctx context.Context, post *model.Post) {
	ref := s.resolver.Resolve(ctx, "", post.LinkedinPost)
	if ref == nil {
		return
	}
	post.ImageURL = ref.URL

	if minio.Enabled() {
		objectName, err := minio.ArchiveImage(ctx, ref.URL)
		if err != nil {
			log.WarnContext(ctx, "archive image failed, 仅保留外链", "err", err)
			return
		}
		post.ImageData = objectName
	}
}

func (s *postServiceImpl) GetPendingPosts(ctx context.Context) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.GetPendingPosts(ctx, PendingListLimit)
	if err != nil {
		log.ErrorContext(ctx, "get pending posts failed", "err", err)
		return nil, UnExpectedError
	}
	return toPostDTOs(posts), nil
}

func (s *postServiceImpl) GetAllPosts(ctx context.Context) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.GetAllPosts(ctx)
	if err != nil {
		log.ErrorContext(ctx, "get all posts failed", "err", err)
		return nil, UnExpectedError
	}
	return toPostDTOs(posts), nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, id uint64) error {
	post, err := s.postRepo.GetPost(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return UnExpectedError
	}

	if post.ImageData != "" && minio.Enabled() {
		if err := minio.DeleteFile(ctx, post.ImageData); err != nil {
			log.WarnContext(ctx, "delete archived image failed", "object", post.ImageData, "err", err)
		}
	}
	if err := s.postRepo.DeletePost(ctx, id); err != nil {
		return UnExpectedError
	}
	return nil
}

// RegenerateImage 重新搜一张配图替换原图
func (s *postServiceImpl) RegenerateImage(ctx context.Context, id uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, UnExpectedError
	}

	s.resolver.MarkUsed(post.ImageURL)
	ref := s.resolver.Resolve(ctx, "", post.LinkedinPost)
	if ref == nil {
		return nil, ErrImageUnavailable
	}

	oldObject := post.ImageData
	post.ImageURL = ref.URL
	post.ImageData = ""
	if minio.Enabled() {
		objectName, err := minio.ArchiveImage(ctx, ref.URL)
		if err != nil {
			log.WarnContext(ctx, "archive image failed, 仅保留外链", "err", err)
		} else {
			post.ImageData = objectName
		}
	}

	if err := s.postRepo.UpdateImage(ctx, id, post.ImageURL, post.ImageData); err != nil {
		return nil, UnExpectedError
	}
	if oldObject != "" && minio.Enabled() {
		if err := minio.DeleteFile(ctx, oldObject); err != nil {
			log.WarnContext(ctx, "delete old archived image failed", "object", oldObject, "err", err)
		}
	}
	return toPostDTO(post), nil
}

// SchedulePost 设定或取消定时：scheduled_at 为空串表示取消，过去的时间点拒绝
func (s *postServiceImpl) SchedulePost(ctx context.Context, req *dto.SchedulePostReqDTO) error {
	var at *time.Time
	if req.ScheduledAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.ScheduledAt)
		if err != nil {
			return ErrScheduleTimeInvalid
		}
		if parsed.Before(time.Now()) {
			return ErrScheduleTimeInvalid
		}
		at = &parsed
	}

	post, err := s.postRepo.GetPost(ctx, req.PostID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return UnExpectedError
	}
	if post.Status == model.StatusPosted {
		return ErrPostAlreadyPosted
	}

	if err := s.postRepo.UpdateScheduledAt(ctx, req.PostID, at); err != nil {
		return UnExpectedError
	}
	if at == nil {
		log.InfoContext(ctx, "post schedule cleared", "post_id", req.PostID)
	} else {
		log.InfoContext(ctx, "post scheduled", "post_id", req.PostID, "at", at)
	}
	return nil
}

func (s *postServiceImpl) GetAnalytics(ctx context.Context) (*dto.AnalyticsDTO, error) {
	posted, err := s.postRepo.CountByStatus(ctx, model.StatusPosted)
	if err != nil {
		return nil, UnExpectedError
	}
	pending, err := s.postRepo.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, UnExpectedError
	}
	drafts, err := s.postRepo.CountByStatus(ctx, model.StatusDraft)
	if err != nil {
		return nil, UnExpectedError
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	postedToday, err := s.postRepo.CountPostedSince(ctx, midnight)
	if err != nil {
		return nil, UnExpectedError
	}

	quota, err := twitterQuota(ctx, s.outcomeRepo)
	if err != nil {
		return nil, UnExpectedError
	}

	return &dto.AnalyticsDTO{
		TotalPosted: posted,
		Pending:     pending,
		Drafts:      drafts,
		PostedToday: postedToday,
		Quota:       quota,
	}, nil
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	d := &dto.PostDTO{
		ID:              post.ID,
		ContentSource:   post.ContentSource,
		Tweet:           post.TwitterPost,
		LinkedInPost:    post.LinkedinPost,
		Tone:            post.Tone,
		ImageURL:        post.ImageURL,
		HasImage:        post.ImageURL != "",
		Status:          string(post.Status),
		EngagementScore: post.EngagementScore,
		CreatedAt:       post.CreatedAt.Format(time.RFC3339),
	}
	if post.TwitterThread != "" {
		var thread []string
		if err := json.Unmarshal([]byte(post.TwitterThread), &thread); err == nil {
			d.Thread = thread
		}
	}
	if post.ScheduledAt != nil {
		d.ScheduledAt = post.ScheduledAt.Format(time.RFC3339)
	}
	if post.PostedAt != nil {
		d.PostedAt = post.PostedAt.Format(time.RFC3339)
	}
	return d
}

func toPostDTOs(posts []*model.Post) []*dto.PostDTO {
	result := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		result = append(result, toPostDTO(post))
	}
	return result
}
