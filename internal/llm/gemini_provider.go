package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genai"
)

const (
	providerNameGemini = "gemini"
	geminiUserRole     = "user"
	geminiModelRole    = "model"
)

// GeminiProvider implements the Provider interface using Google's Gemini API
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
	}, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return providerNameGemini
}

// Generate requests a plain text completion
func (p *GeminiProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("🎮 GEMINI GENERATION REQUEST STARTED (Model: %s, messages: %d)", request.Model, len(request.InputArray))

	transaction := sentry.StartTransaction(ctx, "gemini.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameGemini)

	contents := p.buildGeminiContents(request.InputArray)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: request.SystemPrompt}},
		},
	}

	span := transaction.StartChild("gemini.api_call")
	result, err := p.client.Models.GenerateContent(ctx, request.Model, contents, config)
	apiDuration := time.Since(startTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ GEMINI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	log.Printf("⏱️  GEMINI API CALL COMPLETED in %v", apiDuration)

	response, err := p.processGeminiResponse(result)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	transaction.SetTag("success", "true")
	return response, nil
}

// buildGeminiContents converts our input array to Gemini Content format
func (p *GeminiProvider) buildGeminiContents(inputArray []map[string]any) []*genai.Content {
	var contents []*genai.Content

	for _, item := range inputArray {
		role, content, ok := inputItem(item)
		if !ok {
			log.Printf("⚠️  Skipping invalid input item (missing role or content): %v", item)
			continue
		}

		// Gemini only knows "user" and "model"
		geminiRole := geminiUserRole
		if role == RoleAssistant {
			geminiRole = geminiModelRole
		}

		contents = append(contents, &genai.Content{
			Role:  geminiRole,
			Parts: []*genai.Part{{Text: content}},
		})
	}

	return contents
}

// processGeminiResponse converts a Gemini response to our GenerationResponse
func (p *GeminiProvider) processGeminiResponse(result *genai.GenerateContentResponse) (*GenerationResponse, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in Gemini response: %w", ErrEmptyCompletion)
	}

	// A candidate without content (e.g. blocked by safety filters) is an empty reply
	var text strings.Builder
	if candidate := result.Candidates[0]; candidate != nil && candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil {
				text.WriteString(part.Text)
			}
		}
	}

	textOutput := strings.TrimSpace(text.String())
	log.Printf("📥 GEMINI RESPONSE: output_length=%d", len(textOutput))
	if textOutput == "" {
		log.Printf("⚠️  GEMINI RESPONSE HAS NO OUTPUT TEXT")
	}

	response := &GenerationResponse{RawOutput: textOutput}
	if result.UsageMetadata != nil {
		response.Usage = TokenUsage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
		log.Printf("📊 GEMINI USAGE: input=%d, output=%d, total=%d",
			response.Usage.InputTokens, response.Usage.OutputTokens, response.Usage.TotalTokens)
	}

	return response, nil
}
