package metrics

import (
	"context"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/llm"
)

// Recorder receives the measurements of a generation run
type Recorder interface {
	RecordGenerationRun(ctx context.Context, model string, duration time.Duration, rounds int, success bool)
	RecordAgentTurn(ctx context.Context, agent, model string, duration time.Duration, usage llm.TokenUsage)
	RecordExtractionMisses(ctx context.Context, misses []string)
}

type multiRecorder []Recorder

// Combine fans every measurement out to each recorder
func Combine(recorders ...Recorder) Recorder {
	return multiRecorder(recorders)
}

func (m multiRecorder) RecordGenerationRun(ctx context.Context, model string, duration time.Duration, rounds int, success bool) {
	for _, r := range m {
		r.RecordGenerationRun(ctx, model, duration, rounds, success)
	}
}

func (m multiRecorder) RecordAgentTurn(ctx context.Context, agent, model string, duration time.Duration, usage llm.TokenUsage) {
	for _, r := range m {
		r.RecordAgentTurn(ctx, agent, model, duration, usage)
	}
}

func (m multiRecorder) RecordExtractionMisses(ctx context.Context, misses []string) {
	for _, r := range m {
		r.RecordExtractionMisses(ctx, misses)
	}
}

var (
	_ Recorder = (*SentryMetrics)(nil)
	_ Recorder = (*Client)(nil)
	_ Recorder = (*Counters)(nil)
)
