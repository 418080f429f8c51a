package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/lenstube-reports/internal/config"
	"github.com/ignatzorin/lenstube-reports/internal/http/handlers"
	"github.com/ignatzorin/lenstube-reports/internal/http/middleware"
)

// Handlers собирает хэндлеры, которые монтирует роутер.
type Handlers struct {
	Health  *handlers.HealthHandler
	Report  *handlers.ReportHandler
	Collect *handlers.CollectHandler
	WS      *handlers.WSHandler
}

func SetupRouter(cfg *config.Config, h Handlers, tokens middleware.AccessParser) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)

	api := r.Group("/api")

	// Публичные маршруты
	api.GET("/report-reasons", h.Report.ListReasons)
	api.GET("/publications/:id/collect-module", middleware.PublicationIDValidator("id"), h.Collect.GetCollectModule)
	api.GET("/ws", h.WS.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		reports := protected.Group("/publications/:id/reports")
		reports.Use(middleware.PublicationIDValidator("id"))
		reports.POST("", middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod), h.Report.CreateReport)
		reports.DELETE("/dialog", h.Report.DismissReport)

		protected.GET("/reports", h.Report.ListMyReports)
		protected.GET("/reports/:reportId", h.Report.GetReport)
	}

	return r
}
