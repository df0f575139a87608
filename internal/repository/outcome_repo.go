package repository

import (
	"context"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/model"

	"gorm.io/gorm"
)

type OutcomeRepo interface {
	CreateOutcome(ctx context.Context, outcome *model.PublishOutcome) error
	CountSince(ctx context.Context, platform string, since time.Time) (int64, error)
	HasOutcome(ctx context.Context, postID uint64, platform string) (bool, error)
}

type OutcomeRepoImpl struct {
	db *gorm.DB
}

func NewOutcomeRepository(db *gorm.DB) OutcomeRepo {
	return &OutcomeRepoImpl{
		db: db,
	}
}

func (s OutcomeRepoImpl) CreateOutcome(ctx context.Context, outcome *model.PublishOutcome) error {
	return s.db.WithContext(ctx).Create(outcome).Error
}

// CountSince 统计某平台自 since 以来的成功发布次数，用于月度配额
func (s OutcomeRepoImpl) CountSince(ctx context.Context, platform string, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PublishOutcome{}).
		Where("platform = ? AND occurred_at >= ?", platform, since).
		Count(&count).Error
	return count, err
}

func (s OutcomeRepoImpl) HasOutcome(ctx context.Context, postID uint64, platform string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PublishOutcome{}).
		Where("post_id = ? AND platform = ?", postID, platform).
		Count(&count).Error
	return count > 0, err
}
