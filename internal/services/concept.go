package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/agents/core/coordination"
	"github.com/Conceptual-Machines/game-design-team/internal/agents/team"
	"github.com/Conceptual-Machines/game-design-team/internal/config"
	"github.com/Conceptual-Machines/game-design-team/internal/llm"
	"github.com/Conceptual-Machines/game-design-team/internal/logger"
	"github.com/Conceptual-Machines/game-design-team/internal/metrics"
	"github.com/Conceptual-Machines/game-design-team/internal/models"
	"github.com/Conceptual-Machines/game-design-team/internal/observability"
	"github.com/Conceptual-Machines/game-design-team/internal/prompt"
)

var (
	// ErrMissingCredential is returned before any work when no API key was supplied
	ErrMissingCredential = errors.New("please enter your OpenAI API key")
	// ErrBackendFailure wraps any error raised by the LLM backend during a run
	ErrBackendFailure = errors.New("LLM backend failure")
)

// ConceptGenerator runs the design team on a brief
type ConceptGenerator interface {
	Generate(ctx context.Context, brief models.GameBrief, credential, model string) (*Result, error)
}

var _ ConceptGenerator = (*ConceptService)(nil)

// ProviderSource resolves the backend for a model and credential
type ProviderSource interface {
	GetProvider(ctx context.Context, model, apiKey string) (llm.Provider, error)
}

// Result is the outcome of one completed generation run
type Result struct {
	Task       string                     `json:"task"`
	Model      string                     `json:"model"`
	Transcript []models.TranscriptMessage `json:"transcript"`
	Bundle     models.OutputBundle        `json:"bundle"`
	Misses     []string                   `json:"misses"`
	StopReason coordination.StopReason    `json:"stop_reason"`
	Usage      llm.TokenUsage             `json:"usage"`
	Duration   time.Duration              `json:"duration_ns"`
}

// ConceptService runs the design team on a game brief
type ConceptService struct {
	providers    ProviderSource
	loader       *prompt.Loader
	recorder     metrics.Recorder
	langfuse     *observability.LangfuseClient
	defaultModel string
	maxRounds    int
	reasoning    string
}

// NewConceptService creates the generation service. recorder and langfuse may be nil.
func NewConceptService(
	cfg *config.Config,
	providers ProviderSource,
	recorder metrics.Recorder,
	langfuse *observability.LangfuseClient,
) *ConceptService {
	if recorder == nil {
		recorder = metrics.Combine()
	}
	return &ConceptService{
		providers:    providers,
		loader:       prompt.NewPromptLoader(),
		recorder:     recorder,
		langfuse:     langfuse,
		defaultModel: cfg.DefaultModel,
		maxRounds:    cfg.MaxRounds,
		reasoning:    cfg.ReasoningEffort,
	}
}

// Generate runs one full generation: compose the task, let the four agents
// answer in turn and extract their sections. A blank credential fails before
// anything reaches the backend. Backend errors abort the run with no result.
func (s *ConceptService) Generate(ctx context.Context, brief models.GameBrief, credential, model string) (*Result, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, ErrMissingCredential
	}
	if strings.TrimSpace(model) == "" {
		model = s.defaultModel
	}

	startTime := time.Now()
	brief.Normalize()
	task := prompt.Compose(brief)
	fields := logger.Fields{
		"model":    model,
		"provider": llm.ProviderNameForModel(model),
	}

	provider, err := s.providers.GetProvider(ctx, model, credential)
	if err != nil {
		logger.Error("Failed to create LLM provider", err, fields)
		return nil, fmt.Errorf("%w: %w", ErrBackendFailure, err)
	}

	roster, err := team.NewRoster(s.loader)
	if err != nil {
		return nil, fmt.Errorf("build roster: %w", err)
	}

	trace := s.langfuse.StartTrace(ctx, "game_concept", map[string]interface{}{
		"model":     model,
		"game_type": brief.GameType,
	})
	defer trace.Finish()

	chat := coordination.NewGroupChat(roster, provider, model, s.maxRounds)
	chat.ReasoningMode = s.reasoning
	chat.OnTurn = s.observeTurn(trace, model, task)

	logger.Info("Starting generation run", fields)
	chatResult, err := chat.Run(ctx, task)
	if err != nil {
		duration := time.Since(startTime)
		s.recorder.RecordGenerationRun(ctx, model, duration, 0, false)
		failed := trace.Generation("run_failed", map[string]interface{}{"model": model})
		failed.Input(task)
		failed.Output(err.Error())
		failed.SetLevel(observability.LevelError)
		failed.Finish()
		logger.Error("Generation run failed", err, fields.With(logger.Fields{"duration_ms": duration.Milliseconds()}))
		return nil, fmt.Errorf("%w: %w", ErrBackendFailure, err)
	}

	bundle := team.Extract(chatResult.Transcript)
	misses := bundle.Missing()
	duration := time.Since(startTime)

	s.recorder.RecordGenerationRun(ctx, model, duration, chatResult.Rounds, true)
	if len(misses) > 0 {
		s.recorder.RecordExtractionMisses(ctx, misses)
		logger.Warn("Sections not generated", fields.With(logger.Fields{"misses": strings.Join(misses, ",")}))
	}

	logger.Info("Generation run completed", fields.With(logger.Fields{
		"rounds":       chatResult.Rounds,
		"stop_reason":  string(chatResult.StopReason),
		"total_tokens": chatResult.Usage.TotalTokens,
		"duration_ms":  duration.Milliseconds(),
	}))

	return &Result{
		Task:       task,
		Model:      model,
		Transcript: chatResult.Transcript,
		Bundle:     bundle,
		Misses:     misses,
		StopReason: chatResult.StopReason,
		Usage:      chatResult.Usage,
		Duration:   duration,
	}, nil
}

// observeTurn reports each generative reply to metrics and tracing
func (s *ConceptService) observeTurn(trace *observability.Trace, model, task string) coordination.TurnObserver {
	return func(ctx context.Context, turn coordination.Turn) {
		if !turn.Participant.Generative() {
			return
		}

		s.recorder.RecordAgentTurn(ctx, turn.Participant.Name, model, turn.Duration, turn.Usage)

		gen := trace.GenerationSince(turn.Participant.Name, time.Now().Add(-turn.Duration), map[string]interface{}{
			"role":  turn.Participant.Role.String(),
			"index": turn.Index,
		})
		gen.Input(task)
		gen.LogCompletion(model, turn.Message.Content, turn.Usage)
		gen.Finish()

		logger.Debug("Agent replied", logger.Fields{
			"agent":         turn.Participant.Name,
			"model":         model,
			"output_tokens": turn.Usage.OutputTokens,
			"duration_ms":   turn.Duration.Milliseconds(),
		})
	}
}
