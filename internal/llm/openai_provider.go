package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

const (
	providerNameOpenAI = "openai"
	maxPreviewChars    = 200
)

// OpenAIProvider implements the Provider interface using OpenAI's Responses API
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string, opts ...option.RequestOption) *OpenAIProvider {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(opts...)
	return &OpenAIProvider{
		client: &client,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return providerNameOpenAI
}

// Generate requests a plain text completion
func (p *OpenAIProvider) Generate(ctx context.Context, request *GenerationRequest) (*GenerationResponse, error) {
	startTime := time.Now()
	log.Printf("🎮 OPENAI GENERATION REQUEST STARTED (Model: %s, messages: %d)", request.Model, len(request.InputArray))

	transaction := sentry.StartTransaction(ctx, "openai.generate")
	defer transaction.Finish()

	transaction.SetTag("model", request.Model)
	transaction.SetTag("provider", providerNameOpenAI)

	params := p.buildRequestParams(request)

	span := transaction.StartChild("openai.api_call")
	resp, err := p.client.Responses.New(ctx, params)
	apiDuration := time.Since(startTime)
	span.Finish()

	if err != nil {
		log.Printf("❌ OPENAI REQUEST FAILED after %v: %v", apiDuration, err)
		transaction.SetTag("success", "false")
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	log.Printf("⏱️  OPENAI API CALL COMPLETED in %v", apiDuration)

	result, err := p.processResponse(resp)
	if err != nil {
		transaction.SetTag("success", "false")
		return nil, err
	}

	transaction.SetTag("success", "true")
	return result, nil
}

// buildRequestParams converts GenerationRequest to OpenAI-specific ResponseNewParams
func (p *OpenAIProvider) buildRequestParams(request *GenerationRequest) responses.ResponseNewParams {
	inputItems := responses.ResponseInputParam{}

	for _, item := range request.InputArray {
		role, content, ok := inputItem(item)
		if !ok {
			log.Printf("⚠️  Skipping invalid input item (missing role or content): %v", item)
			continue
		}

		var roleEnum responses.EasyInputMessageRole
		switch role {
		case RoleAssistant:
			roleEnum = responses.EasyInputMessageRoleAssistant
		default:
			roleEnum = responses.EasyInputMessageRoleUser
		}

		inputItems = append(inputItems,
			responses.ResponseInputItemParamOfMessage(content, roleEnum),
		)
	}

	params := responses.ResponseNewParams{
		Model: request.Model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: inputItems,
		},
		Instructions: openai.String(request.SystemPrompt),
	}

	// Only include Reasoning parameter for models that support it
	if SupportsReasoning(request.Model) {
		params.Reasoning = shared.ReasoningParam{
			Effort: ReasoningEffort(request.ReasoningMode),
		}
	}

	return params
}

// processResponse extracts the text completion and token usage.
// An empty completion is a valid reply with no text.
func (p *OpenAIProvider) processResponse(resp *responses.Response) (*GenerationResponse, error) {
	textOutput := strings.TrimSpace(resp.OutputText())
	log.Printf("📥 OPENAI PLAIN TEXT RESPONSE: output_length=%d, tokens=%d", len(textOutput), resp.Usage.TotalTokens)

	if textOutput == "" {
		log.Printf("⚠️  OPENAI RESPONSE HAS NO OUTPUT TEXT (status: %s)", resp.Status)
	}

	log.Printf("📊 USAGE: input=%d, output=%d, total=%d (preview: %s)",
		resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens,
		truncate(textOutput, maxPreviewChars))

	return &GenerationResponse{
		RawOutput: textOutput,
		Usage: TokenUsage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
	}, nil
}
