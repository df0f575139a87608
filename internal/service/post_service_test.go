package service

import (
	"context"
	"testing"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/dto"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/model"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/consts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSchedulingService(postRepo *fakePostRepo) PostService {
	return NewPostService(postRepo, newFakeOutcomeRepo(), nil)
}

func TestSchedulePost_SetAndClear(t *testing.T) {
	postRepo := newFakePostRepo()
	post := &model.Post{TwitterPost: "tweet", Status: model.StatusPending}
	require.NoError(t, postRepo.CreatePost(context.Background(), post))

	svc := newSchedulingService(postRepo)
	future := time.Now().Add(2 * time.Hour).Truncate(time.Second)

	err := svc.SchedulePost(context.Background(), &dto.SchedulePostReqDTO{
		PostID:      post.ID,
		ScheduledAt: future.Format(time.RFC3339),
	})
	require.NoError(t, err)

	stored, err := postRepo.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ScheduledAt)
	assert.True(t, stored.ScheduledAt.Equal(future))

	// 空串取消定时
	err = svc.SchedulePost(context.Background(), &dto.SchedulePostReqDTO{PostID: post.ID})
	require.NoError(t, err)

	stored, err = postRepo.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ScheduledAt)
}

func TestSchedulePost_RejectsPastTime(t *testing.T) {
	postRepo := newFakePostRepo()
	post := &model.Post{TwitterPost: "tweet", Status: model.StatusPending}
	require.NoError(t, postRepo.CreatePost(context.Background(), post))

	svc := newSchedulingService(postRepo)
	err := svc.SchedulePost(context.Background(), &dto.SchedulePostReqDTO{
		PostID:      post.ID,
		ScheduledAt: time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrScheduleTimeInvalid)

	err = svc.SchedulePost(context.Background(), &dto.SchedulePostReqDTO{
		PostID:      post.ID,
		ScheduledAt: "tomorrow at noon",
	})
	assert.ErrorIs(t, err, ErrScheduleTimeInvalid)
}

func TestSchedulePost_RejectsPostedAndMissing(t *testing.T) {
	postRepo := newFakePostRepo()
	post := &model.Post{TwitterPost: "tweet", Status: model.StatusPosted}
	require.NoError(t, postRepo.CreatePost(context.Background(), post))

	svc := newSchedulingService(postRepo)
	future := time.Now().Add(time.Hour).Format(time.RFC3339)

	err := svc.SchedulePost(context.Background(), &dto.SchedulePostReqDTO{PostID: post.ID, ScheduledAt: future})
	assert.ErrorIs(t, err, ErrPostAlreadyPosted)

	err = svc.SchedulePost(context.Background(), &dto.SchedulePostReqDTO{PostID: 404, ScheduledAt: future})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestGetAnalytics_Counts(t *testing.T) {
	setTestConfig("", "")

	postRepo := newFakePostRepo()
	now := time.Now()
	earlier := now.Add(-48 * time.Hour)
	seed := []*model.Post{
		{TwitterPost: "a", Status: model.StatusPosted, PostedAt: &now},
		{TwitterPost: "b", Status: model.StatusPosted, PostedAt: &earlier},
		{TwitterPost: "c", Status: model.StatusPending},
		{TwitterPost: "d", Status: model.StatusDraft},
	}
	for _, p := range seed {
		require.NoError(t, postRepo.CreatePost(context.Background(), p))
	}

	svc := newSchedulingService(postRepo)
	analytics, err := svc.GetAnalytics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), analytics.TotalPosted)
	assert.Equal(t, int64(1), analytics.Pending)
	assert.Equal(t, int64(1), analytics.Drafts)
	assert.Equal(t, int64(1), analytics.PostedToday)
	assert.Equal(t, consts.PlatformTwitter, analytics.Quota.Platform)
	assert.Equal(t, 500, analytics.Quota.Limit)
}
