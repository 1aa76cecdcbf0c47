package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/api"
	"github.com/Conceptual-Machines/game-design-team/internal/config"
	"github.com/Conceptual-Machines/game-design-team/internal/llm"
	"github.com/Conceptual-Machines/game-design-team/internal/metrics"
	"github.com/Conceptual-Machines/game-design-team/internal/observability"
	"github.com/Conceptual-Machines/game-design-team/internal/services"
	"github.com/Conceptual-Machines/game-design-team/internal/session"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	sessionSweepInterval  = time.Hour
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	ctx := context.Background()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "game-design-team@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
					event.Request.Data = ""
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	// Observability
	langfuse := observability.InitializeLangfuse(ctx, cfg)
	cloudwatch, err := metrics.NewClient(ctx, cfg.Environment)
	if err != nil {
		log.Printf("CloudWatch metrics unavailable: %v", err)
		cloudwatch = &metrics.Client{}
	}
	counters := metrics.NewCounters()
	recorder := metrics.Combine(metrics.NewSentryMetrics(), cloudwatch, counters)

	// Generation service; the LLM credential comes from each request
	conceptService := services.NewConceptService(cfg, llm.NewProviderFactory(), recorder, langfuse)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions := session.NewStore(cfg)
	sessions.StartSweeper(ctx, sessionSweepInterval)

	// Initialize router
	router := api.SetupRouter(cfg, api.Dependencies{
		Generator:       conceptService,
		Sessions:        sessions,
		Counters:        counters,
		CloudWatch:      cloudwatch,
		LangfuseEnabled: langfuse.IsEnabled(),
	}, GetVersion())

	log.Printf("🚀 Starting server on port %s (default model: %s)", cfg.Port, cfg.DefaultModel)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
