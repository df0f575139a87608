package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/dto"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/model"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/consts"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/social"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ---- 内存版仓储 ----

type fakePostRepo struct {
	mu     sync.Mutex
	nextID uint64
	posts  map[uint64]*model.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		nextID: 1,
		posts:  make(map[uint64]*model.Post),
	}
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = f.nextID
	f.nextID++
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *post
	return &clone, nil
}

func (f *fakePostRepo) GetAllPosts(ctx context.Context) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var posts []*model.Post
	for _, p := range f.posts {
		posts = append(posts, p)
	}
	return posts, nil
}

func (f *fakePostRepo) GetPendingPosts(ctx context.Context, limit int) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var posts []*model.Post
	for _, p := range f.posts {
		if p.Status == model.StatusPending {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (f *fakePostRepo) GetOldestPending(ctx context.Context) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var oldest *model.Post
	for _, p := range f.posts {
		if p.Status != model.StatusPending {
			continue
		}
		if oldest == nil || p.CreatedAt.Before(oldest.CreatedAt) {
			oldest = p
		}
	}
	return oldest, nil
}

func (f *fakePostRepo) GetDueScheduled(ctx context.Context, platform string, now time.Time) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var posts []*model.Post
	for _, p := range f.posts {
		if p.Status != model.StatusPosted && p.ScheduledAt != nil && !p.ScheduledAt.After(now) {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (f *fakePostRepo) UpdateStatus(ctx context.Context, id uint64, status model.PostStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	post.Status = status
	if status == model.StatusPosted {
		now := time.Now()
		post.PostedAt = &now
	} else {
		post.PostedAt = nil
	}
	return nil
}

func (f *fakePostRepo) UpdateImage(ctx context.Context, id uint64, imageURL string, imageData string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post, ok := f.posts[id]; ok {
		post.ImageURL = imageURL
		post.ImageData = imageData
	}
	return nil
}

func (f *fakePostRepo) UpdateScheduledAt(ctx context.Context, id uint64, at *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post, ok := f.posts[id]; ok {
		post.ScheduledAt = at
	}
	return nil
}

func (f *fakePostRepo) UpdateEngagement(ctx context.Context, id uint64, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if post, ok := f.posts[id]; ok {
		post.EngagementScore = score
	}
	return nil
}

func (f *fakePostRepo) DeletePost(ctx context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) CountByStatus(ctx context.Context, status model.PostStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.posts {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakePostRepo) CountPostedSince(ctx context.Context, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.posts {
		if p.Status == model.StatusPosted && p.PostedAt != nil && !p.PostedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakePostRepo) BestPostingHours(ctx context.Context, limit int) ([]*repository.HourStat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sums := make(map[int]*repository.HourStat)
	for _, p := range f.posts {
		if p.Status != model.StatusPosted || p.PostedAt == nil {
			continue
		}
		hour := p.PostedAt.Hour()
		stat, ok := sums[hour]
		if !ok {
			stat = &repository.HourStat{Hour: hour}
			sums[hour] = stat
		}
		stat.AvgEngagement += float64(p.EngagementScore)
		stat.PostCount++
	}
	var stats []*repository.HourStat
	for _, stat := range sums {
		stat.AvgEngagement /= float64(stat.PostCount)
		stats = append(stats, stat)
	}
	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

func (f *fakePostRepo) TopPosts(ctx context.Context, limit int) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var posts []*model.Post
	for _, p := range f.posts {
		if p.Status == model.StatusPosted {
			posts = append(posts, p)
		}
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (f *fakePostRepo) MetricsByDay(ctx context.Context, since time.Time) ([]*repository.DayMetric, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	byDay := make(map[string]*repository.DayMetric)
	for _, p := range f.posts {
		if p.Status != model.StatusPosted || p.PostedAt == nil || p.PostedAt.Before(since) {
			continue
		}
		day := p.PostedAt.Format("2006-01-02")
		m, ok := byDay[day]
		if !ok {
			m = &repository.DayMetric{Date: day}
			byDay[day] = m
		}
		m.Posts++
		m.TotalEngagement += p.EngagementScore
	}
	var metrics []*repository.DayMetric
	for _, m := range byDay {
		metrics = append(metrics, m)
	}
	return metrics, nil
}

type fakeOutcomeRepo struct {
	mu       sync.Mutex
	presets  map[string]int64
	outcomes []*model.PublishOutcome
}

func newFakeOutcomeRepo() *fakeOutcomeRepo {
	return &fakeOutcomeRepo{
		presets: make(map[string]int64),
	}
}

func (f *fakeOutcomeRepo) CreateOutcome(ctx context.Context, outcome *model.PublishOutcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, outcome)
	return nil
}

func (f *fakeOutcomeRepo) CountSince(ctx context.Context, platform string, since time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := f.presets[platform]
	for _, o := range f.outcomes {
		if o.Platform == platform && !o.OccurredAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeOutcomeRepo) HasOutcome(ctx context.Context, postID uint64, platform string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.outcomes {
		if o.PostID == postID && o.Platform == platform {
			return true, nil
		}
	}
	return false, nil
}

// ---- 假平台服务 ----

type recordedTweet struct {
	Text  string
	Reply string
}

func newTwitterServer(t *testing.T, tweets *[]recordedTweet) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	var counter int

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/2/tweets", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("Authorization"))

		raw, _ := io.ReadAll(r.Body)
		var req struct {
			Text  string `json:"text"`
			Reply *struct {
				InReplyToTweetID string `json:"in_reply_to_tweet_id"`
			} `json:"reply"`
		}
		require.NoError(t, json.Unmarshal(raw, &req))

		mu.Lock()
		counter++
		id := counter
		rec := recordedTweet{Text: req.Text}
		if req.Reply != nil {
			rec.Reply = req.Reply.InReplyToTweetID
		}
		*tweets = append(*tweets, rec)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"tw-` + string(rune('0'+id)) + `","text":""}}`))
	}))
}

func setTestConfig(twitterURL, linkedinURL string) {
	config.Cfg = &config.Config{
		Twitter: config.TwitterConfig{
			URL:          twitterURL,
			ApiKey:       "k",
			ApiSecret:    "s",
			AccessToken:  "at",
			AccessSecret: "as",
			MonthlyLimit: 500,
		},
		LinkedIn: config.LinkedInConfig{
			URL:         linkedinURL,
			AccessToken: "li-token",
			PersonURN:   "urn:li:person:me",
		},
		Scheduler: config.SchedulerConfig{
			Platforms: []string{consts.PlatformTwitter, consts.PlatformLinkedIn},
		},
	}
}

func newPublishService(postRepo repository.PostRepo, outcomeRepo repository.OutcomeRepo) PublishService {
	return NewPublishService(postRepo, outcomeRepo,
		social.NewTwitterClient(config.Cfg.Twitter),
		social.NewLinkedInClient(config.Cfg.LinkedIn))
}

func TestPublishPost_TwitterThreadChaining(t *testing.T) {
	var tweets []recordedTweet
	twitterSrv := newTwitterServer(t, &tweets)
	defer twitterSrv.Close()
	setTestConfig(twitterSrv.URL, "")

	postRepo := newFakePostRepo()
	outcomeRepo := newFakeOutcomeRepo()
	post := &model.Post{
		TwitterPost:   "main tweet",
		TwitterThread: `["part two","part three"]`,
		Status:        model.StatusPending,
	}
	require.NoError(t, postRepo.CreatePost(context.Background(), post))

	svc := newPublishService(postRepo, outcomeRepo)
	result, err := svc.PublishPost(context.Background(), post.ID, &dto.PublishReqDTO{Platforms: []string{consts.PlatformTwitter}})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.True(t, result.Results[0].Success)
	assert.Equal(t, "tw-1", result.Results[0].PlatformPostID)
	assert.Equal(t, string(model.StatusPosted), result.Status)

	// 串推按顺序挂在上一条推文下
	require.Len(t, tweets, 3)
	assert.Equal(t, "main tweet", tweets[0].Text)
	assert.Empty(t, tweets[0].Reply)
	assert.Equal(t, "tw-1", tweets[1].Reply)
	assert.Equal(t, "tw-2", tweets[2].Reply)

	stored, err := postRepo.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPosted, stored.Status)
	assert.NotNil(t, stored.PostedAt)
	require.Len(t, outcomeRepo.outcomes, 1)
	assert.Equal(t, consts.PlatformTwitter, outcomeRepo.outcomes[0].Platform)
}

func TestPublishPost_TextOverride(t *testing.T) {
	var tweets []recordedTweet
	twitterSrv := newTwitterServer(t, &tweets)
	defer twitterSrv.Close()
	setTestConfig(twitterSrv.URL, "")

	postRepo := newFakePostRepo()
	post := &model.Post{
		TwitterPost:   "original tweet",
		TwitterThread: `["part two"]`,
		Status:        model.StatusPending,
	}
	require.NoError(t, postRepo.CreatePost(context.Background(), post))

	svc := newPublishService(postRepo, newFakeOutcomeRepo())
	result, err := svc.PublishPost(context.Background(), post.ID, &dto.PublishReqDTO{
		Platforms:   []string{consts.PlatformTwitter},
		TwitterText: "edited just before publish",
	})
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.True(t, result.Results[0].Success)

	// 覆盖文案只发单条，串推被丢弃
	require.Len(t, tweets, 1)
	assert.Equal(t, "edited just before publish", tweets[0].Text)

	// 覆盖只作用于本次发布，不写回草稿
	stored, err := postRepo.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "original tweet", stored.TwitterPost)
}

func TestPublishPost_LinkedInDegradesToTextOnly(t *testing.T) {
	imageSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("fake-image-bytes"))
	}))
	defer imageSrv.Close()

	linkedinSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/assets":
			// 上传凭证申请失败，发布应降级为纯文本
			w.WriteHeader(http.StatusInternalServerError)
		case "/v2/ugcPosts":
			raw, _ := io.ReadAll(r.Body)
			assert.NotContains(t, string(raw), `"IMAGE"`)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"urn:li:share:99"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer linkedinSrv.Close()
	setTestConfig("", linkedinSrv.URL)

	postRepo := newFakePostRepo()
	outcomeRepo := newFakeOutcomeRepo()
	post := &model.Post{
		LinkedinPost: "a thoughtful longform post",
		ImageURL:     imageSrv.URL + "/img.jpg",
		Status:       model.StatusPending,
	}
	require.NoError(t, postRepo.CreatePost(context.Background(), post))

	svc := newPublishService(postRepo, outcomeRepo)
	result, err := svc.PublishPost(context.Background(), post.ID, &dto.PublishReqDTO{Platforms: []string{consts.PlatformLinkedIn}})
	require.NoError(t, err)

	require.Len(t, result.Results, 1)
	assert.True(t, result.Results[0].Success)
	assert.False(t, result.Results[0].HasImage)
	assert.Equal(t, "urn:li:share:99", result.Results[0].PlatformPostID)
}

func TestPublishPost_QuotaExceededDoesNotBlock(t *testing.T) {
	var tweets []recordedTweet
	twitterSrv := newTwitterServer(t, &tweets)
	defer twitterSrv.Close()
	setTestConfig(twitterSrv.URL, "")

	postRepo := newFakePostRepo()
	outcomeRepo := newFakeOutcomeRepo()
	outcomeRepo.presets[consts.PlatformTwitter] = 500

	post := &model.Post{
		TwitterPost: "tweet",
		Status:      model.StatusPending,
	}
	require.NoError(t, postRepo.CreatePost(context.Background(), post))

	svc := newPublishService(postRepo, outcomeRepo)
	result, err := svc.PublishPost(context.Background(), post.ID, &dto.PublishReqDTO{Platforms: []string{consts.PlatformTwitter}})
	require.NoError(t, err)

	// 配额只是提示，额度用完也要把请求交给平台
	require.Len(t, tweets, 1)
	require.Len(t, result.Results, 1)
	assert.True(t, result.Results[0].Success)
	assert.Equal(t, string(model.StatusPosted), result.Status)
}

func TestPublishPost_PlatformNotConfigured(t *testing.T) {
	var tweets []recordedTweet
	twitterSrv := newTwitterServer(t, &tweets)
	defer twitterSrv.Close()
	setTestConfig(twitterSrv.URL, "")
	config.Cfg.Twitter.ApiKey = ""
	config.Cfg.LinkedIn.AccessToken = ""

	postRepo := newFakePostRepo()
	post := &model.Post{
		TwitterPost:  "tweet",
		LinkedinPost: "longform",
		Status:       model.StatusPending,
	}
	require.NoError(t, postRepo.CreatePost(context.Background(), post))

	svc := newPublishService(postRepo, newFakeOutcomeRepo())
	result, err := svc.PublishPost(context.Background(), post.ID, nil)
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	for _, pr := range result.Results {
		assert.False(t, pr.Success)
		assert.Equal(t, ErrPlatformNotConfigured.Error(), pr.Error)
	}
	// 凭证缺失在本地直接报错，不会发出平台请求
	assert.Empty(t, tweets)
	assert.Equal(t, string(model.StatusPending), result.Status)
}

func TestPublishPost_AlreadyPosted(t *testing.T) {
	setTestConfig("http://twitter.invalid", "")

	postRepo := newFakePostRepo()
	post := &model.Post{
		TwitterPost: "tweet",
		Status:      model.StatusPosted,
	}
	require.NoError(t, postRepo.CreatePost(context.Background(), post))

	svc := newPublishService(postRepo, newFakeOutcomeRepo())
	_, err := svc.PublishPost(context.Background(), post.ID, nil)
	assert.ErrorIs(t, err, ErrPostAlreadyPosted)
}

func TestPublishPost_NotFound(t *testing.T) {
	setTestConfig("http://twitter.invalid", "")

	svc := newPublishService(newFakePostRepo(), newFakeOutcomeRepo())
	_, err := svc.PublishPost(context.Background(), 404, nil)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestQuotaReport(t *testing.T) {
	setTestConfig("", "")

	outcomeRepo := newFakeOutcomeRepo()
	outcomeRepo.presets[consts.PlatformTwitter] = 120

	svc := newPublishService(newFakePostRepo(), outcomeRepo)
	quota, err := svc.QuotaReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(120), quota.Used)
	assert.Equal(t, 500, quota.Limit)
	assert.Equal(t, int64(380), quota.Remaining)
	assert.Equal(t, int64(12), quota.DailyAverage)
}
