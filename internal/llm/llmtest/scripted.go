// Package llmtest provides an in-memory llm.Provider for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/Conceptual-Machines/game-design-team/internal/llm"
)

// ScriptedProvider answers each Generate call with the next scripted reply.
// A nil Respond falls back to Replies, one per call, in order.
type ScriptedProvider struct {
	Replies []string
	Usage   llm.TokenUsage
	Err     error // Returned from every call when set
	FailAt  int   // 1-based call number that returns Err; 0 means every call

	// Respond overrides Replies when set
	Respond func(call int, request *llm.GenerationRequest) (string, error)

	mu       sync.Mutex
	requests []*llm.GenerationRequest
}

// Name returns the provider name
func (p *ScriptedProvider) Name() string {
	return "scripted"
}

// Generate records the request and returns the scripted reply
func (p *ScriptedProvider) Generate(_ context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, request)
	call := len(p.requests)
	p.mu.Unlock()

	if p.Err != nil && (p.FailAt == 0 || p.FailAt == call) {
		return nil, p.Err
	}

	if p.Respond != nil {
		out, err := p.Respond(call, request)
		if err != nil {
			return nil, err
		}
		return &llm.GenerationResponse{RawOutput: out, Usage: p.Usage}, nil
	}

	if call > len(p.Replies) {
		return nil, fmt.Errorf("scripted provider: no reply for call %d", call)
	}
	return &llm.GenerationResponse{RawOutput: p.Replies[call-1], Usage: p.Usage}, nil
}

// Calls returns the number of Generate calls made so far
func (p *ScriptedProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

// Requests returns a copy of every request received
func (p *ScriptedProvider) Requests() []*llm.GenerationRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*llm.GenerationRequest, len(p.requests))
	copy(out, p.requests)
	return out
}
