package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"smartexam_backend/docs"
	"smartexam_backend/internal/config"
	"smartexam_backend/internal/middleware"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/monitoring"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/papers/analyze", c.analysis.Analyze)

		jobs := authGroup.Group("/jobs")
		{
			jobs.GET("", c.analysis.ListJobs)
			jobs.GET("/:id", c.analysis.GetJob)
			jobs.GET("/:id/report", c.analysis.GetReport)
			jobs.GET("/:id/markup", c.analysis.GetMarkup)
			jobs.GET("/:id/tokens", c.analysis.GetTokens)
			jobs.GET("/:id/ast", c.analysis.GetAST)
			jobs.GET("/:id/dashboard", c.analysis.GetDashboard)

			jobs.DELETE("/:id", middleware.RoleMiddleware(util.RoleTeacher), c.analysis.DeleteJob)
		}
	}
}
