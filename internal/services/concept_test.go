package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Conceptual-Machines/game-design-team/internal/agents/core/coordination"
	"github.com/Conceptual-Machines/game-design-team/internal/agents/team"
	"github.com/Conceptual-Machines/game-design-team/internal/config"
	"github.com/Conceptual-Machines/game-design-team/internal/llm"
	"github.com/Conceptual-Machines/game-design-team/internal/llm/llmtest"
	"github.com/Conceptual-Machines/game-design-team/internal/models"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProviders struct {
	provider llm.Provider
	err      error
	calls    int
	model    string
	apiKey   string
}

func (f *fakeProviders) GetProvider(_ context.Context, model, apiKey string) (llm.Provider, error) {
	f.calls++
	f.model = model
	f.apiKey = apiKey
	if f.err != nil {
		return nil, f.err
	}
	return f.provider, nil
}

type fakeRecorder struct {
	mu     sync.Mutex
	runs   []bool
	turns  []string
	misses []string
}

func (r *fakeRecorder) RecordGenerationRun(_ context.Context, _ string, _ time.Duration, _ int, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, success)
}

func (r *fakeRecorder) RecordAgentTurn(_ context.Context, agent, _ string, _ time.Duration, _ llm.TokenUsage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.turns = append(r.turns, agent)
}

func (r *fakeRecorder) RecordExtractionMisses(_ context.Context, misses []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.misses = append(r.misses, misses...)
}

// teamReplies answers with each persona's marker, keyed off its system prompt
func teamReplies(request *llm.GenerationRequest) string {
	for _, marker := range []string{team.StoryMarker, team.GameplayMarker, team.VisualsMarker, team.TechMarker} {
		if strings.Contains(request.SystemPrompt, marker) {
			return marker + "\nDetails."
		}
	}
	return "no marker"
}

func newService(providers ProviderSource, recorder *fakeRecorder) *ConceptService {
	cfg := &config.Config{DefaultModel: "gpt-4o-mini", MaxRounds: 10}
	return NewConceptService(cfg, providers, recorder, nil)
}

func TestGenerateMissingCredential(t *testing.T) {
	provider := &llmtest.ScriptedProvider{}
	providers := &fakeProviders{provider: provider}
	recorder := &fakeRecorder{}

	for _, credential := range []string{"", "  \t"} {
		result, err := newService(providers, recorder).Generate(context.Background(), models.DefaultBrief(), credential, "")
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrMissingCredential)
	}

	assert.Zero(t, providers.calls)
	assert.Zero(t, provider.Calls())
	assert.Empty(t, recorder.runs)
}

func TestGenerateFullRun(t *testing.T) {
	provider := &llmtest.ScriptedProvider{
		Respond: func(_ int, request *llm.GenerationRequest) (string, error) {
			return teamReplies(request), nil
		},
		Usage: llm.TokenUsage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30},
	}
	providers := &fakeProviders{provider: provider}
	recorder := &fakeRecorder{}

	result, err := newService(providers, recorder).Generate(context.Background(), models.DefaultBrief(), "sk-test", "")
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", providers.model)
	assert.Equal(t, "sk-test", providers.apiKey)
	assert.Equal(t, "gpt-4o-mini", result.Model)
	assert.Equal(t, coordination.StopTerminated, result.StopReason)
	require.Len(t, result.Transcript, 5)
	assert.Equal(t, result.Task, result.Transcript[0].Content)
	assert.True(t, strings.HasPrefix(result.Task, "Create a game concept with the following details:"))

	for _, slot := range models.Slots {
		assert.True(t, result.Bundle.Generated(slot), slot)
	}
	assert.Empty(t, result.Misses)
	assert.Equal(t, 120, result.Usage.TotalTokens)

	assert.Equal(t, []bool{true}, recorder.runs)
	assert.Equal(t, []string{team.StoryName, team.GameplayName, team.VisualsName, team.TechName}, recorder.turns)
	assert.Empty(t, recorder.misses)
}

func TestGenerateReportsMisses(t *testing.T) {
	provider := &llmtest.ScriptedProvider{
		Respond: func(_ int, request *llm.GenerationRequest) (string, error) {
			if strings.Contains(request.SystemPrompt, team.VisualsMarker) {
				return "I forgot the header.", nil
			}
			return teamReplies(request), nil
		},
	}
	recorder := &fakeRecorder{}

	result, err := newService(&fakeProviders{provider: provider}, recorder).Generate(context.Background(), models.DefaultBrief(), "sk-test", "gpt-4o")
	require.NoError(t, err)

	assert.Equal(t, models.NotGenerated, result.Bundle.Visuals)
	assert.Equal(t, []string{models.SlotVisuals}, result.Misses)
	assert.Equal(t, []string{models.SlotVisuals}, recorder.misses)
	assert.Equal(t, "gpt-4o", result.Model)
}

// openAIReply is a Responses API payload; empty text yields a message with no content
func openAIReply(text string) string {
	content := "[]"
	if text != "" {
		quoted, _ := json.Marshal(text)
		content = fmt.Sprintf(`[{"type":"output_text","text":%s,"annotations":[]}]`, quoted)
	}
	return fmt.Sprintf(`{"id":"resp_test","object":"response","created_at":1700000000,"status":"completed",`+
		`"model":"gpt-4o-mini","output":[{"type":"message","id":"msg_test","status":"completed","role":"assistant","content":%s}],`+
		`"usage":{"input_tokens":10,"input_tokens_details":{"cached_tokens":0},"output_tokens":5,`+
		`"output_tokens_details":{"reasoning_tokens":0},"total_tokens":15}}`, content)
}

func TestGenerateEmptyReplyIsMiss(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var body struct {
			Instructions string `json:"instructions"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		reply := teamReplies(&llm.GenerationRequest{SystemPrompt: body.Instructions})
		if strings.Contains(body.Instructions, team.VisualsMarker) {
			reply = ""
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(openAIReply(reply)))
	}))
	defer server.Close()

	provider := llm.NewOpenAIProvider("sk-test", option.WithBaseURL(server.URL+"/"), option.WithMaxRetries(0))
	recorder := &fakeRecorder{}

	result, err := newService(&fakeProviders{provider: provider}, recorder).Generate(context.Background(), models.DefaultBrief(), "sk-test", "")
	require.NoError(t, err)

	assert.Equal(t, int32(4), calls.Load())
	assert.Len(t, result.Transcript, 5)
	assert.Empty(t, result.Transcript[3].Content)
	assert.Equal(t, models.NotGenerated, result.Bundle.Visuals)
	assert.True(t, result.Bundle.Generated(models.SlotTech))
	assert.Equal(t, []string{models.SlotVisuals}, result.Misses)
	assert.Equal(t, []bool{true}, recorder.runs)
}

func TestGenerateBackendFailure(t *testing.T) {
	backendErr := errors.New("401 invalid api key")
	provider := &llmtest.ScriptedProvider{Err: backendErr}
	recorder := &fakeRecorder{}

	result, err := newService(&fakeProviders{provider: provider}, recorder).Generate(context.Background(), models.DefaultBrief(), "sk-bad", "")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrBackendFailure)
	assert.ErrorIs(t, err, backendErr)
	assert.Equal(t, 1, provider.Calls())
	assert.Equal(t, []bool{false}, recorder.runs)
}

func TestGenerateProviderCreationFailure(t *testing.T) {
	providerErr := errors.New("gemini client")
	result, err := newService(&fakeProviders{err: providerErr}, &fakeRecorder{}).Generate(context.Background(), models.DefaultBrief(), "key", "gemini-2.5-flash")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrBackendFailure)
	assert.ErrorIs(t, err, providerErr)
}

func TestGenerateNormalizesBrief(t *testing.T) {
	provider := &llmtest.ScriptedProvider{
		Respond: func(_ int, request *llm.GenerationRequest) (string, error) {
			return teamReplies(request), nil
		},
	}
	brief := models.DefaultBrief()
	brief.DevelopmentMonths = 99
	brief.BudgetUSD = -5

	result, err := newService(&fakeProviders{provider: provider}, &fakeRecorder{}).Generate(context.Background(), brief, "sk-test", "")
	require.NoError(t, err)
	assert.Contains(t, result.Task, "- Development Time: 36 months")
	assert.Contains(t, result.Task, "- Budget: $0")
}
