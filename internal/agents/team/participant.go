package team

import (
	"context"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/llm"
	"github.com/Conceptual-Machines/game-design-team/internal/models"
)

// Backend is the LLM configuration shared by every generative participant
type Backend struct {
	Provider      llm.Provider
	Model         string
	ReasoningMode string
}

// Reply is one produced turn plus its cost
type Reply struct {
	Message  models.TranscriptMessage
	Usage    llm.TokenUsage
	Duration time.Duration
}

// Respond produces the participant's next message given the transcript so far.
// The orchestrator never calls the backend: it has nothing to add after the
// task, so its reply is empty.
func (p Participant) Respond(ctx context.Context, backend Backend, transcript []models.TranscriptMessage) (*Reply, error) {
	switch p.Role {
	case RoleOrchestrator:
		return &Reply{Message: models.TranscriptMessage{Name: p.Name}}, nil

	case RoleStory, RoleGameplay, RoleVisuals, RoleTech:
		start := time.Now()
		resp, err := backend.Provider.Generate(ctx, &llm.GenerationRequest{
			Model:         backend.Model,
			SystemPrompt:  p.Instructions,
			InputArray:    p.InputArray(transcript),
			ReasoningMode: backend.ReasoningMode,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		return &Reply{
			Message:  models.TranscriptMessage{Name: p.Name, Content: resp.RawOutput},
			Usage:    resp.Usage,
			Duration: time.Since(start),
		}, nil

	default:
		return nil, fmt.Errorf("participant %s has unknown role %s", p.Name, p.Role)
	}
}

// InputArray renders the transcript from this participant's point of view:
// its own messages are assistant turns, everyone else's are user turns
// prefixed with the speaker's name. Empty messages are left out.
func (p Participant) InputArray(transcript []models.TranscriptMessage) []map[string]any {
	input := make([]map[string]any, 0, len(transcript))
	for _, msg := range transcript {
		if msg.Content == "" {
			continue
		}
		item := map[string]any{"role": llm.RoleAssistant, "content": msg.Content}
		if msg.Name != p.Name {
			item["role"] = llm.RoleUser
			item["content"] = msg.Name + ": " + msg.Content
		}
		input = append(input, item)
	}
	return input
}
