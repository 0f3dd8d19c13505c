// Package server assembles the HTTP routes of the analysis API.
package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"finhealth/internal/handlers"
	"finhealth/internal/middleware"
)

// Handlers groups the route handlers mounted by NewRouter.
type Handlers struct {
	Health   *handlers.HealthHandler
	Analysis *handlers.AnalysisHandler
	Report   *handlers.ReportHandler
	Record   *handlers.RecordHandler
}

// Options configures route protection.
type Options struct {
	APIKey      string
	ShareTokens *middleware.ShareTokens
	Swagger     bool
}

// NewRouter builds the gin engine with global middleware and all routes.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/", h.Health.Root)
	router.GET("/api/health", h.Health.Health)

	v1 := router.Group("/api/v1")

	// Share links carry their own credential
	v1.GET("/shared/:token", middleware.ShareTokenMiddleware(opts.ShareTokens), h.Record.GetSharedAnalysis)

	protected := v1.Group("/")
	protected.Use(middleware.APIKeyAuth(opts.APIKey))

	protected.POST("/analysis/run", h.Analysis.RunAnalysis)

	reports := protected.Group("/report")
	reports.POST("/generate", h.Report.GenerateReport)
	reports.GET("/history", h.Report.GetHistory)

	analyses := protected.Group("/analyses")
	analyses.GET("/:id", h.Record.GetAnalysis)
	analyses.POST("/:id/share", h.Record.ShareAnalysis)

	return router
}
