package wire

import (
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/handler"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/job"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/cron"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/image"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/llm"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/social"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/source"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/repository"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	outcomeRepo := repository.NewOutcomeRepository(db)

	var classify source.RelevanceFunc
	if cfg.Sources.LLMFilter {
		classify = llm.ClassifyContent
	}
	fetcher := source.NewFetcher(cfg.Sources, classify)
	resolver := image.NewResolver(cfg.Image)
	twitterClient := social.NewTwitterClient(cfg.Twitter)
	linkedinClient := social.NewLinkedInClient(cfg.LinkedIn)

	contentService := service.NewContentService(fetcher)
	postService := service.NewPostService(postRepo, outcomeRepo, resolver)
	publishService := service.NewPublishService(postRepo, outcomeRepo, twitterClient, linkedinClient)
	growthService := service.NewGrowthService(postRepo)

	handlers := &api.HandlersGroup{
		ContentHandler: handler.NewContentHandler(contentService),
		PostHandler:    handler.NewPostHandler(postService, publishService),
		GrowthHandler:  handler.NewGrowthHandler(growthService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		job.NewFetchJob(contentService, postService),
		job.NewPublishJob(publishService),
		job.NewScheduleSweepJob(publishService),
		job.NewQuotaJob(publishService),
		job.NewGrowthJob(growthService),
	)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
