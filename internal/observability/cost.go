package observability

import (
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/game-design-team/internal/llm"
)

// Pricing constants
const (
	tokensPerKilo       = 1000.0
	costFormatPrecision = 6

	// GPT-4o pricing
	gpt4oInputPrice  = 0.0025
	gpt4oOutputPrice = 0.01

	// GPT-4o-mini pricing
	gpt4oMiniInputPrice  = 0.00015
	gpt4oMiniOutputPrice = 0.0006

	// GPT-5-mini pricing
	gpt5MiniInputPrice  = 0.00025
	gpt5MiniOutputPrice = 0.002

	// Gemini 2.5 Flash pricing
	gemini25FlashInputPrice  = 0.0003
	gemini25FlashOutputPrice = 0.0025

	// Gemini 2.5 Pro pricing
	gemini25ProInputPrice  = 0.00125
	gemini25ProOutputPrice = 0.01
)

// defaultPricingModel is charged for models missing from the table
const defaultPricingModel = "gpt-4o-mini"

// ModelPricing contains pricing information per 1K tokens
type ModelPricing struct {
	InputPricePer1K  float64 // Price per 1K input tokens in USD
	OutputPricePer1K float64 // Price per 1K output tokens in USD
}

// PricingTable contains pricing for all models
var PricingTable = map[string]ModelPricing{
	"gpt-4o": {
		InputPricePer1K:  gpt4oInputPrice,
		OutputPricePer1K: gpt4oOutputPrice,
	},
	"gpt-4o-mini": {
		InputPricePer1K:  gpt4oMiniInputPrice,
		OutputPricePer1K: gpt4oMiniOutputPrice,
	},
	"gpt-5-mini": {
		InputPricePer1K:  gpt5MiniInputPrice,
		OutputPricePer1K: gpt5MiniOutputPrice,
	},
	"gemini-2.5-flash": {
		InputPricePer1K:  gemini25FlashInputPrice,
		OutputPricePer1K: gemini25FlashOutputPrice,
	},
	"gemini-2.5-pro": {
		InputPricePer1K:  gemini25ProInputPrice,
		OutputPricePer1K: gemini25ProOutputPrice,
	},
}

// CalculateCost calculates the cost in USD of one completion
func CalculateCost(model string, usage llm.TokenUsage) float64 {
	pricing, exists := PricingTable[strings.ToLower(model)]
	if !exists {
		pricing = PricingTable[defaultPricingModel]
	}

	inputCost := (float64(usage.InputTokens) / tokensPerKilo) * pricing.InputPricePer1K
	outputCost := (float64(usage.OutputTokens) / tokensPerKilo) * pricing.OutputPricePer1K

	return inputCost + outputCost
}

// FormatCost formats a cost value as a USD string
func FormatCost(cost float64) string {
	return "$" + formatFloat(cost, costFormatPrecision)
}

// formatFloat formats a float with specified precision using strconv
func formatFloat(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}
