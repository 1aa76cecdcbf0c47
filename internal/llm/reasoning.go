package llm

import (
	"strings"

	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

// Reasoning effort levels accepted in REASONING_EFFORT
const (
	ReasoningMinimal = "minimal"
	ReasoningLow     = "low"
	ReasoningMedium  = "medium"
	ReasoningHigh    = "high"
)

// reasoningModelPrefixes are the OpenAI families that accept a reasoning
// parameter. Sending it to gpt-4o and friends is a 400.
var reasoningModelPrefixes = []string{"gpt-5", "o1", "o3", "o4"}

// SupportsReasoning reports whether the model accepts a reasoning effort
func SupportsReasoning(model string) bool {
	model = strings.ToLower(model)
	for _, prefix := range reasoningModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}

// ReasoningEffort maps a configured mode to the Responses API effort.
// Unknown modes fall back to low.
func ReasoningEffort(mode string) shared.ReasoningEffort {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ReasoningMinimal:
		return shared.ReasoningEffort(ReasoningMinimal)
	case ReasoningMedium:
		return responses.ReasoningEffortMedium
	case ReasoningHigh:
		return responses.ReasoningEffortHigh
	default:
		return responses.ReasoningEffortLow
	}
}
