package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/llm"
	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics records measurements as Sentry spans
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Spans are dropped by the SDK when Sentry is not configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))
	span.SetData("duration_ms", duration.Milliseconds())

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordGenerationRun records one complete group chat
func (m *SentryMetrics) RecordGenerationRun(ctx context.Context, model string, duration time.Duration, rounds int, success bool) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "generation.run")
	defer span.Finish()

	span.SetTag("model", model)
	span.SetTag("success", fmt.Sprintf("%t", success))
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("rounds", rounds)

	if success {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("Generation Run: %s", model)
}

// RecordAgentTurn records one participant reply and its token usage
func (m *SentryMetrics) RecordAgentTurn(ctx context.Context, agent, model string, duration time.Duration, usage llm.TokenUsage) {
	if !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetData("tokens."+agent, usage.TotalTokens)
	}

	span := sentry.StartSpan(ctx, "agent.turn")
	defer span.Finish()

	span.SetTag("agent", agent)
	span.SetTag("model", model)
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("input_tokens", usage.InputTokens)
	span.SetData("output_tokens", usage.OutputTokens)
	span.SetData("total_tokens", usage.TotalTokens)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Agent Turn: %s", agent)
}

// RecordExtractionMisses tags the current transaction with slots left at the sentinel
func (m *SentryMetrics) RecordExtractionMisses(ctx context.Context, misses []string) {
	if !m.enabled || len(misses) == 0 {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("extraction.misses", strings.Join(misses, ","))
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.AddBreadcrumb(&sentry.Breadcrumb{
			Category: "extraction",
			Message:  "sections not generated: " + strings.Join(misses, ", "),
			Level:    sentry.LevelWarning,
		}, nil)
	}
}
