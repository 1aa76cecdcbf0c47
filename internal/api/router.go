package api

import (
	"github.com/Conceptual-Machines/game-design-team/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/game-design-team/internal/api/middleware"
	"github.com/Conceptual-Machines/game-design-team/internal/config"
	"github.com/Conceptual-Machines/game-design-team/internal/metrics"
	"github.com/Conceptual-Machines/game-design-team/internal/services"
	"github.com/Conceptual-Machines/game-design-team/internal/session"
	webhandlers "github.com/Conceptual-Machines/game-design-team/internal/web/handlers"
	"github.com/gin-gonic/gin"
)

// Dependencies are the long-lived services the routes share
type Dependencies struct {
	Generator       services.ConceptGenerator
	Sessions        *session.Store
	Counters        *metrics.Counters
	CloudWatch      *metrics.Client // nil disables CloudWatch request metrics
	LangfuseEnabled bool
}

func SetupRouter(cfg *config.Config, deps Dependencies, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.CloudWatch))

	// Health check
	healthHandler := handlers.NewHealthHandler(version, cfg.DefaultModel, deps.LangfuseEnabled)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, deps.Counters)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Web pages
	webHandler := webhandlers.NewWebHandler(deps.Generator, deps.Sessions, cfg.DefaultModel)
	router.GET("/", webHandler.Home)
	router.POST("/generate", webHandler.Generate)
	router.NoRoute(webHandler.NotFound)

	// JSON API, credential in X-API-Key
	v1 := router.Group("/api/v1")
	{
		conceptsHandler := handlers.NewConceptsHandler(deps.Generator, cfg.DefaultModel)
		v1.GET("/options", conceptsHandler.Options)
		v1.POST("/concepts", conceptsHandler.Create)
	}

	return router
}
