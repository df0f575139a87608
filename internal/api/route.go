package api

import (
	"net/http"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/middleware"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		apiGroup.POST("/fetch-content", group.ContentHandler.FetchContent)
		apiGroup.POST("/generate-posts", group.PostHandler.GeneratePosts)

		apiGroup.GET("/posts", group.PostHandler.GetAllPosts)
		apiGroup.GET("/posts/pending", group.PostHandler.GetPendingPosts)

		postGroup := apiGroup.Group("/post")
		{
			postGroup.POST("/:id", group.PostHandler.PublishPost)
			postGroup.DELETE("/:id", group.PostHandler.DeletePost)
			postGroup.POST("/:id/regenerate-image", group.PostHandler.RegenerateImage)
		}

		apiGroup.POST("/schedule-post", group.PostHandler.SchedulePost)
		apiGroup.GET("/analytics", group.PostHandler.GetAnalytics)

		growthGroup := apiGroup.Group("/growth")
		{
			growthGroup.GET("/recommendations", group.GrowthHandler.GetRecommendations)
			growthGroup.GET("/schedule", group.GrowthHandler.GetOptimalSchedule)
			growthGroup.GET("/metrics", group.GrowthHandler.GetMetrics)
			growthGroup.POST("/predict-viral", group.GrowthHandler.PredictViral)
		}
	}

	return r
}
