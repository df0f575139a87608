package service

import (
	"context"
	"fmt"
	log "log/slog"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/dto"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/model"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/repository"
)

const (
	topPostsSample    = 20
	bestHoursLimit    = 5
	defaultMetricDays = 30
)

type GrowthService interface {
	Recommendations(ctx context.Context) (*dto.GrowthRecommendationsDTO, error)
	OptimalSchedule(ctx context.Context) (*dto.OptimalScheduleDTO, error)
	Metrics(ctx context.Context, days int) (*dto.GrowthMetricsDTO, error)
	PredictViral(ctx context.Context, content string) *dto.ViralPredictionDTO
	AnalyzeGrowth(ctx context.Context) error
}

type growthServiceImpl struct {
	postRepo repository.PostRepo
}

func NewGrowthService(postRepo repository.PostRepo) GrowthService {
	return &growthServiceImpl{
		postRepo: postRepo,
	}
}

func (s *growthServiceImpl) Recommendations(ctx context.Context) (*dto.GrowthRecommendationsDTO, error) {
	hours, err := s.postRepo.BestPostingHours(ctx, bestHoursLimit)
	if err != nil {
		log.ErrorContext(ctx, "best posting hours failed", "err", err)
		return nil, UnExpectedError
	}
	top, err := s.postRepo.TopPosts(ctx, topPostsSample)
	if err != nil {
		log.ErrorContext(ctx, "top posts failed", "err", err)
		return nil, UnExpectedError
	}

	patterns := analyzePatterns(top)
	result := &dto.GrowthRecommendationsDTO{
		BestHours:       toHourStatDTOs(hours),
		WinningPatterns: patterns,
		Suggestions:     buildSuggestions(hours, patterns),
	}
	return result, nil
}

// OptimalSchedule 没有历史数据时退回配置的固定时段
func (s *growthServiceImpl) OptimalSchedule(ctx context.Context) (*dto.OptimalScheduleDTO, error) {
	hours, err := s.postRepo.BestPostingHours(ctx, 3)
	if err != nil {
		return nil, UnExpectedError
	}

	result := &dto.OptimalScheduleDTO{}
	if len(hours) == 0 {
		for _, t := range config.Cfg.Scheduler.PostingTimes {
			result.Slots = append(result.Slots, &dto.ScheduleSlotDTO{
				Time:   t,
				Reason: "configured default, no engagement history yet",
			})
		}
		return result, nil
	}

	for _, h := range hours {
		result.Slots = append(result.Slots, &dto.ScheduleSlotDTO{
			Time:   fmt.Sprintf("%02d:00", h.Hour),
			Reason: fmt.Sprintf("avg engagement %.1f across %d posts", h.AvgEngagement, h.PostCount),
		})
	}
	return result, nil
}

func (s *growthServiceImpl) Metrics(ctx context.Context, days int) (*dto.GrowthMetricsDTO, error) {
	if days <= 0 {
		days = defaultMetricDays
	}
	since := time.Now().AddDate(0, 0, -days)
	rows, err := s.postRepo.MetricsByDay(ctx, since)
	if err != nil {
		return nil, UnExpectedError
	}

	result := &dto.GrowthMetricsDTO{
		Days: make([]*dto.DayMetricDTO, 0, len(rows)),
	}
	totalEngagement := 0
	for _, row := range rows {
		result.Days = append(result.Days, &dto.DayMetricDTO{
			Date:            row.Date,
			Posts:           row.Posts,
			TotalEngagement: row.TotalEngagement,
		})
		result.TotalPosts += row.Posts
		totalEngagement += row.TotalEngagement
	}
	if result.TotalPosts > 0 {
		result.AvgEngagement = float64(totalEngagement) / float64(result.TotalPosts)
	}
	result.WeekOverWeek = weekOverWeek(rows, time.Now())
	return result, nil
}

// weekOverWeek 最近 7 天与其前 7 天的互动量环比，百分数
func weekOverWeek(rows []*repository.DayMetric, now time.Time) float64 {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	var current, previous int
	for _, row := range rows {
		day, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue
		}
		switch {
		case day.After(weekAgo):
			current += row.TotalEngagement
		case day.After(twoWeeksAgo):
			previous += row.TotalEngagement
		}
	}
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

var numberPattern = regexp.MustCompile(`\d`)

// hookWords 开头抓人的常见句式
var hookWords = []string{"how ", "why ", "what ", "the secret", "stop ", "i spent", "unpopular opinion"}

// PredictViral 启发式传播力打分，不依赖外部服务
func (s *growthServiceImpl) PredictViral(ctx context.Context, content string) *dto.ViralPredictionDTO {
	score := 40
	var signals []string
	lower := strings.ToLower(content)

	if strings.Contains(content, "?") {
		score += 10
		signals = append(signals, "asks a question")
	}
	if numberPattern.MatchString(content) {
		score += 10
		signals = append(signals, "contains concrete numbers")
	}
	for _, hook := range hookWords {
		if strings.HasPrefix(lower, hook) {
			score += 15
			signals = append(signals, "opens with a hook")
			break
		}
	}
	if n := utf8.RuneCountInString(content); n >= 50 && n <= 200 {
		score += 10
		signals = append(signals, "scannable length")
	}
	if strings.Count(content, "\n") >= 2 {
		score += 5
		signals = append(signals, "uses line breaks")
	}
	if strings.Count(content, "#") > 2 {
		score -= 10
		signals = append(signals, "too many hashtags")
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	verdict := "low"
	switch {
	case score >= 75:
		verdict = "high"
	case score >= 55:
		verdict = "medium"
	}
	return &dto.ViralPredictionDTO{
		Score:   score,
		Verdict: verdict,
		Signals: signals,
	}
}

// AnalyzeGrowth 每日增长分析：补算互动估分并输出建议
func (s *growthServiceImpl) AnalyzeGrowth(ctx context.Context) error {
	top, err := s.postRepo.TopPosts(ctx, topPostsSample)
	if err != nil {
		return fmt.Errorf("load posted posts: %w", err)
	}

	// 还没有互动数据的帖子先用预测分占位
	for _, post := range top {
		if post.EngagementScore > 0 {
			continue
		}
		text := post.TwitterPost
		if text == "" {
			text = post.LinkedinPost
		}
		prediction := s.PredictViral(ctx, text)
		if err := s.postRepo.UpdateEngagement(ctx, post.ID, prediction.Score); err != nil {
			log.WarnContext(ctx, "update engagement failed", "post_id", post.ID, "err", err)
		}
	}

	rec, err := s.Recommendations(ctx)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "growth analysis finished",
		"best_hours", len(rec.BestHours),
		"patterns", len(rec.WinningPatterns),
		"suggestions", rec.Suggestions)
	return nil
}

// analyzePatterns 统计高互动帖子里反复出现的内容特征
func analyzePatterns(posts []*model.Post) []*dto.PatternDTO {
	counters := map[string]*dto.PatternDTO{
		"question": {Pattern: "question"},
		"numbers":  {Pattern: "numbers"},
		"thread":   {Pattern: "thread"},
		"short":    {Pattern: "short"},
	}

	for _, post := range posts {
		text := post.TwitterPost
		if strings.Contains(text, "?") {
			bump(counters["question"], text)
		}
		if numberPattern.MatchString(text) {
			bump(counters["numbers"], text)
		}
		if post.TwitterThread != "" {
			bump(counters["thread"], text)
		}
		if text != "" && utf8.RuneCountInString(text) < 100 {
			bump(counters["short"], text)
		}
	}

	result := make([]*dto.PatternDTO, 0, len(counters))
	for _, p := range counters {
		if p.Count > 0 {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

func bump(p *dto.PatternDTO, example string) {
	p.Count++
	if p.Example == "" {
		p.Example = example
	}
}

func buildSuggestions(hours []*repository.HourStat, patterns []*dto.PatternDTO) []string {
	var suggestions []string
	if len(hours) > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("post around %02d:00, it has your highest average engagement", hours[0].Hour))
	}
	if len(patterns) > 0 {
		switch patterns[0].Pattern {
		case "question":
			suggestions = append(suggestions, "posts that ask a question perform best, end with one")
		case "numbers":
			suggestions = append(suggestions, "posts with concrete numbers perform best, lead with a stat")
		case "thread":
			suggestions = append(suggestions, "threads perform best, break long ideas into one")
		case "short":
			suggestions = append(suggestions, "short punchy posts perform best, cut the fluff")
		}
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "not enough posted history yet, keep publishing consistently")
	}
	return suggestions
}

func toHourStatDTOs(stats []*repository.HourStat) []*dto.HourStatDTO {
	result := make([]*dto.HourStatDTO, 0, len(stats))
	for _, s := range stats {
		result = append(result, &dto.HourStatDTO{
			Hour:          s.Hour,
			AvgEngagement: s.AvgEngagement,
			PostCount:     s.PostCount,
		})
	}
	return result
}
