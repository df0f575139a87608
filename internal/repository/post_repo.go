package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/model"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/consts"

	"gorm.io/gorm"
)

// HourStat 按发布小时聚合的互动数据
type HourStat struct {
	Hour          int     `json:"hour"`
	AvgEngagement float64 `json:"avg_engagement"`
	PostCount     int     `json:"post_count"`
}

// DayMetric 按天聚合的发布量与互动
type DayMetric struct {
	Date            string `json:"date"`
	Posts           int    `json:"posts"`
	TotalEngagement int    `json:"total_engagement"`
}

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetAllPosts(ctx context.Context) ([]*model.Post, error)
	GetPendingPosts(ctx context.Context, limit int) ([]*model.Post, error)
	GetOldestPending(ctx context.Context) (*model.Post, error)
	GetDueScheduled(ctx context.Context, platform string, now time.Time) ([]*model.Post, error)
	UpdateStatus(ctx context.Context, id uint64, status model.PostStatus) error
	UpdateImage(ctx context.Context, id uint64, imageURL string, imageData string) error
	UpdateScheduledAt(ctx context.Context, id uint64, at *time.Time) error
	UpdateEngagement(ctx context.Context, id uint64, score int) error
	DeletePost(ctx context.Context, id uint64) error

	CountByStatus(ctx context.Context, status model.PostStatus) (int64, error)
	CountPostedSince(ctx context.Context, since time.Time) (int64, error)
	BestPostingHours(ctx context.Context, limit int) ([]*HourStat, error)
	TopPosts(ctx context.Context, limit int) ([]*model.Post, error)
	MetricsByDay(ctx context.Context, since time.Time) ([]*DayMetric, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s PostRepoImpl) GetAllPosts(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPendingPosts 待审列表，最新优先
func (s PostRepoImpl) GetPendingPosts(ctx context.Context, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("status = ?", model.StatusPending).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// GetOldestPending 取最早入队的待发帖，无结果返回 nil
func (s PostRepoImpl) GetOldestPending(ctx context.Context) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Where("status = ?", model.StatusPending).
		Order("created_at ASC").
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetDueScheduled 到点的定时帖，按创建时间先后排列，只取含目标平台文案的
func (s PostRepoImpl) GetDueScheduled(ctx context.Context, platform string, now time.Time) ([]*model.Post, error) {
	query := s.db.WithContext(ctx).
		Where("status <> ?", model.StatusPosted).
		Where("scheduled_at IS NOT NULL AND scheduled_at <= ?", now)

	switch platform {
	case consts.PlatformTwitter:
		query = query.Where("twitter_post <> '' OR twitter_thread <> ''")
	case consts.PlatformLinkedIn:
		query = query.Where("linkedin_post <> ''")
	}

	var posts []*model.Post
	err := query.Order("created_at ASC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdateStatus posted_at 与状态保持一致：posted 时落时间戳，其余状态清空
func (s PostRepoImpl) UpdateStatus(ctx context.Context, id uint64, status model.PostStatus) error {
	updates := map[string]interface{}{
		"status":    status,
		"posted_at": nil,
	}
	if status == model.StatusPosted {
		updates["posted_at"] = time.Now()
	}
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(updates).Error
}

func (s PostRepoImpl) UpdateImage(ctx context.Context, id uint64, imageURL string, imageData string) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"image_url":  imageURL,
		"image_data": imageData,
	}).Error
}

func (s PostRepoImpl) UpdateScheduledAt(ctx context.Context, id uint64, at *time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Update("scheduled_at", at).Error
}

func (s PostRepoImpl) UpdateEngagement(ctx context.Context, id uint64, score int) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Update("engagement_score", score).Error
}

func (s PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func (s PostRepoImpl) CountByStatus(ctx context.Context, status model.PostStatus) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (s PostRepoImpl) CountPostedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("status = ? AND posted_at >= ?", model.StatusPosted, since).
		Count(&count).Error
	return count, err
}

func (s PostRepoImpl) BestPostingHours(ctx context.Context, limit int) ([]*HourStat, error) {
	var stats []*HourStat
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Select("HOUR(posted_at) AS hour, AVG(engagement_score) AS avg_engagement, COUNT(*) AS post_count").
		Where("status = ? AND posted_at IS NOT NULL", model.StatusPosted).
		Group("hour").
		Order("avg_engagement DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s PostRepoImpl) TopPosts(ctx context.Context, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("status = ?", model.StatusPosted).
		Order("engagement_score DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s PostRepoImpl) MetricsByDay(ctx context.Context, since time.Time) ([]*DayMetric, error) {
	var metrics []*DayMetric
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Select("DATE(posted_at) AS date, COUNT(*) AS posts, SUM(engagement_score) AS total_engagement").
		Where("status = ? AND posted_at >= ?", model.StatusPosted, since).
		Group("date").
		Order("date DESC").
		Scan(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}
