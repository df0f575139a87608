package job

import (
	"errors"
	log "log/slog"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/service"
)

// defaultTopN 每轮抓取后入库的素材条数
const defaultTopN = 3

// FetchJob 定时抓取素材并生成草稿
type FetchJob struct {
	contentSvc service.ContentService
	postSvc    service.PostService
}

func NewFetchJob(contentSvc service.ContentService, postSvc service.PostService) *FetchJob {
	return &FetchJob{
		contentSvc: contentSvc,
		postSvc:    postSvc,
	}
}

func (s *FetchJob) Run() {
	ctx := jobContext("fetch")
	log.InfoContext(ctx, "start content fetch job")

	items, err := s.contentSvc.FetchItems(ctx, nil)
	if errors.Is(err, service.ErrNoContentFetched) {
		log.InfoContext(ctx, "content fetch job: 本轮无可用素材")
		return
	}
	if err != nil {
		log.ErrorContext(ctx, "content fetch job failed", "err", err)
		return
	}

	topN := config.Cfg.Scheduler.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if len(items) > topN {
		items = items[:topN]
	}

	created := 0
	for _, item := range items {
		post, err := s.postSvc.CreateFromItem(ctx, item, "")
		if err != nil {
			log.ErrorContext(ctx, "create post from item failed", "title", item.Title, "err", err)
			continue
		}
		created++
		log.InfoContext(ctx, "post drafted from content", "post_id", post.ID, "source", item.Source, "title", item.Title)
	}
	log.InfoContext(ctx, "content fetch job finished", "fetched", len(items), "created", created)
}
