package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderNameForModel(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"gpt-4o-mini", "openai"},
		{"gpt-5-mini", "openai"},
		{"gemini-2.5-flash", "gemini"},
		{"Gemini-2.5-Pro", "gemini"},
		{"some-unknown-model", "openai"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, ProviderNameForModel(tt.model))
		})
	}
}

func TestGetProviderMissingKey(t *testing.T) {
	factory := NewProviderFactory()

	for _, key := range []string{"", "   "} {
		provider, err := factory.GetProvider(context.Background(), "gpt-4o-mini", key)
		assert.Nil(t, provider)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	}
}

func TestGetProviderOpenAI(t *testing.T) {
	provider, err := NewProviderFactory().GetProvider(context.Background(), "gpt-4o-mini", "sk-test")
	require.NoError(t, err)
	assert.Equal(t, "openai", provider.Name())
}

func TestGetProviderGemini(t *testing.T) {
	provider, err := NewProviderFactory().GetProvider(context.Background(), "gemini-2.5-flash", "test-key")
	require.NoError(t, err)
	assert.Equal(t, "gemini", provider.Name())
}
