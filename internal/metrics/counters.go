package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/llm"
)

// Counters keeps process-lifetime totals for the metrics endpoint
type Counters struct {
	mu       sync.Mutex
	snapshot Snapshot
}

// Snapshot is a point-in-time copy of the counters
type Snapshot struct {
	Runs             int            `json:"runs"`
	FailedRuns       int            `json:"failed_runs"`
	AgentTurns       int            `json:"agent_turns"`
	ExtractionMisses int            `json:"extraction_misses"`
	Tokens           llm.TokenUsage `json:"tokens"`
	LastRunMs        int64          `json:"last_run_ms"`
}

// NewCounters creates zeroed counters
func NewCounters() *Counters {
	return &Counters{}
}

func (c *Counters) RecordGenerationRun(_ context.Context, _ string, duration time.Duration, _ int, success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot.Runs++
	if !success {
		c.snapshot.FailedRuns++
	}
	c.snapshot.LastRunMs = duration.Milliseconds()
}

func (c *Counters) RecordAgentTurn(_ context.Context, _, _ string, _ time.Duration, usage llm.TokenUsage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot.AgentTurns++
	c.snapshot.Tokens.Add(usage)
}

func (c *Counters) RecordExtractionMisses(_ context.Context, misses []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot.ExtractionMisses += len(misses)
}

// Snapshot returns the current totals
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}
