package llm

import (
	"context"
	"errors"
)

// Message roles used in GenerationRequest.InputArray
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	// ErrMissingAPIKey is returned when a provider is requested without a credential
	ErrMissingAPIKey = errors.New("llm: API key not provided")
	// ErrEmptyCompletion is returned when the backend answered with no candidate at all
	ErrEmptyCompletion = errors.New("llm: response did not include any candidates")
)

// Provider defines the interface for LLM providers.
// A provider turns one system directive plus a running conversation into a
// single text completion.
type Provider interface {
	// Generate requests one completion. It blocks until the backend answers.
	Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// GenerationRequest contains all parameters needed for generation
type GenerationRequest struct {
	Model        string
	SystemPrompt string
	// InputArray is the conversation so far, each item {"role": ..., "content": ...}
	InputArray []map[string]any
	// ReasoningMode is applied only to models that support reasoning
	ReasoningMode string
}

// GenerationResponse contains the result from the LLM
type GenerationResponse struct {
	RawOutput string     `json:"raw_output"`
	Usage     TokenUsage `json:"usage"`
}

// TokenUsage is the provider-neutral token accounting of one completion
type TokenUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add accumulates another usage record
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}

// inputItem extracts role and content from an InputArray item
func inputItem(item map[string]any) (string, string, bool) {
	role, hasRole := item["role"].(string)
	content, hasContent := item["content"].(string)
	return role, content, hasRole && hasContent
}

// truncate truncates a string to maxLen runes
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
