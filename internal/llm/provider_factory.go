package llm

import (
	"context"
	"strings"
)

const geminiModelPrefix = "gemini-"

// ProviderFactory creates providers from a model name and the user's credential.
// The credential is supplied per run; the factory itself holds no secrets.
type ProviderFactory struct{}

// NewProviderFactory creates a new provider factory
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// GetProvider returns the provider serving model, authenticated with apiKey
func (f *ProviderFactory) GetProvider(ctx context.Context, model, apiKey string) (Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}

	if ProviderNameForModel(model) == providerNameGemini {
		return NewGeminiProvider(ctx, apiKey)
	}

	// GPT models and anything unknown default to OpenAI
	return NewOpenAIProvider(apiKey), nil
}

// ProviderNameForModel infers the backend from the model name
func ProviderNameForModel(model string) string {
	if strings.HasPrefix(strings.ToLower(model), geminiModelPrefix) {
		return providerNameGemini
	}
	return providerNameOpenAI
}
