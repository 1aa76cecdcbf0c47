package logger

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

const redacted = "[REDACTED]"

// Fields represents structured log fields
type Fields map[string]interface{}

// sensitiveKeys are never written to logs or breadcrumbs
var sensitiveKeys = map[string]bool{
	"api_key":    true,
	"credential": true,
	"x-api-key":  true,
}

// WithContext extracts request context for logging
func WithContext(c *gin.Context) Fields {
	fields := Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
	}

	if sessionID := c.GetString("session_id"); sessionID != "" {
		fields["session_id"] = sessionID
	}

	return fields
}

// With returns a copy of fields extended with extra
func (f Fields) With(extra Fields) Fields {
	merged := make(Fields, len(f)+len(extra))
	for k, v := range f {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// Info logs an informational message with structured fields
func Info(msg string, fields Fields) {
	log.Printf("[INFO] %s %s", msg, formatFields(fields))
	addBreadcrumb("info", msg, fields, sentry.LevelInfo)
}

// Warn logs a warning message with structured fields
func Warn(msg string, fields Fields) {
	log.Printf("[WARN] %s %s", msg, formatFields(fields))
	addBreadcrumb("warning", msg, fields, sentry.LevelWarning)
}

// Debug logs a debug message with structured fields
func Debug(msg string, fields Fields) {
	log.Printf("[DEBUG] %s %s", msg, formatFields(fields))
	addBreadcrumb("debug", msg, fields, sentry.LevelDebug)
}

// Error logs an error message with structured fields and sends to Sentry
func Error(msg string, err error, fields Fields) {
	log.Printf("[ERROR] %s: %v %s", msg, err, formatFields(fields))

	hub := sentry.CurrentHub()
	if hub.Client() == nil || err == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		for key, value := range sanitize(fields) {
			scope.SetContext(key, map[string]interface{}{
				"value": value,
			})
		}

		// Tags for filtering in Sentry
		if requestID, ok := fields["request_id"].(string); ok {
			scope.SetTag("request_id", requestID)
		}
		if model, ok := fields["model"].(string); ok {
			scope.SetTag("model", model)
		}
		if agent, ok := fields["agent"].(string); ok {
			scope.SetTag("agent", agent)
		}

		hub.CaptureException(err)
	})
}

func addBreadcrumb(kind, msg string, fields Fields, level sentry.Level) {
	if hub := sentry.CurrentHub(); hub.Client() != nil {
		sentry.AddBreadcrumb(&sentry.Breadcrumb{
			Type:     kind,
			Category: "log",
			Message:  msg,
			Data:     sanitize(fields),
			Level:    level,
		})
	}
}

// formatFields renders fields as {k=v, ...} with keys in sorted order
func formatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}

	clean := sanitize(fields)
	keys := make([]string, 0, len(clean))
	for k := range clean {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+formatValue(clean[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func sanitize(fields Fields) map[string]interface{} {
	result := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if sensitiveKeys[strings.ToLower(k)] {
			result[k] = redacted
			continue
		}
		result[k] = v
	}
	return result
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
