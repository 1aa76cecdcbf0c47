package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/logger"
	"github.com/Conceptual-Machines/game-design-team/internal/metrics"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	httpStatusBadRequest          = http.StatusBadRequest
	httpStatusInternalServerError = http.StatusInternalServerError
	sentryFlushTimeout            = 2 * time.Second

	requestIDHeader = "X-Request-ID"
)

// Global metrics instance
var sentryMetrics = metrics.NewSentryMetrics()

// RequestTracking adds request ID and logging to all requests. cloudwatch may be nil.
func RequestTracking(cloudwatch *metrics.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)

		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.Scope().SetTag("request_id", requestID)
		}

		start := time.Now()
		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		fields := logger.WithContext(c).With(logger.Fields{
			"duration_ms": duration.Milliseconds(),
			"status_code": statusCode,
			"client_ip":   c.ClientIP(),
		})

		// Log based on status code
		if statusCode >= httpStatusInternalServerError {
			logger.Error("Request failed with server error", nil, fields)
		} else if statusCode >= httpStatusBadRequest {
			logger.Warn("Request failed with client error", fields)
		} else {
			logger.Info("Request completed", fields)
		}

		sentryMetrics.RecordAPIRequest(c.Request.Context(), route, statusCode, duration)
		if cloudwatch != nil {
			cloudwatch.RecordAPIRequest(route, statusCode, duration)
		}
	}
}

// SentryMiddleware returns the Sentry middleware with custom configuration
func SentryMiddleware() gin.HandlerFunc {
	return sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         sentryFlushTimeout,
	})
}

// RecoverWithSentry recovers from panics and sends them to Sentry
func RecoverWithSentry() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				if hub := sentrygin.GetHubFromContext(c); hub != nil {
					hub.WithScope(func(scope *sentry.Scope) {
						scope.SetRequest(c.Request)
						scope.SetContext("request", map[string]interface{}{
							"request_id": c.GetString("request_id"),
							"method":     c.Request.Method,
							"path":       c.Request.URL.Path,
						})
						if sessionID := c.GetString("session_id"); sessionID != "" {
							scope.SetUser(sentry.User{ID: sessionID})
						}

						hub.RecoverWithContext(c.Request.Context(), err)
					})
				}

				logger.Error("Panic recovered", nil, logger.Fields{
					"request_id": c.GetString("request_id"),
					"error":      err,
					"path":       c.Request.URL.Path,
				})

				if strings.HasPrefix(c.Request.URL.Path, "/api/") {
					c.JSON(httpStatusInternalServerError, gin.H{
						"error":      "Internal server error",
						"request_id": c.GetString("request_id"),
					})
				} else {
					c.String(httpStatusInternalServerError, "Internal server error (request %s)", c.GetString("request_id"))
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
