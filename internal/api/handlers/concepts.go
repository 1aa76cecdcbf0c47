package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Conceptual-Machines/game-design-team/internal/llm"
	"github.com/Conceptual-Machines/game-design-team/internal/logger"
	"github.com/Conceptual-Machines/game-design-team/internal/models"
	"github.com/Conceptual-Machines/game-design-team/internal/services"
	"github.com/gin-gonic/gin"
)

type ConceptsHandler struct {
	generator    services.ConceptGenerator
	defaultModel string
}

func NewConceptsHandler(generator services.ConceptGenerator, defaultModel string) *ConceptsHandler {
	return &ConceptsHandler{
		generator:    generator,
		defaultModel: defaultModel,
	}
}

// ConceptRequest is a game brief plus an optional model override.
// Omitted brief fields keep their form defaults.
type ConceptRequest struct {
	models.GameBrief
	Model string `json:"model"`
}

type ConceptResponse struct {
	Model      string                     `json:"model"`
	Bundle     models.OutputBundle        `json:"bundle"`
	Misses     []string                   `json:"misses"`
	Transcript []models.TranscriptMessage `json:"transcript"`
	StopReason string                     `json:"stop_reason"`
	Usage      llm.TokenUsage             `json:"usage"`
	DurationMs int64                      `json:"duration_ms"`
}

// Options returns every form catalog and the default brief
func (h *ConceptsHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"game_types":        models.GameTypes,
		"target_audiences":  models.TargetAudiences,
		"perspectives":      models.Perspectives,
		"multiplayer_modes": models.MultiplayerModes,
		"art_styles":        models.ArtStyles,
		"platforms":         models.Platforms,
		"core_mechanics":    models.CoreMechanics,
		"moods":             models.Moods,
		"detail_levels":     models.DetailLevels,
		"development_months": gin.H{
			"min":     models.MinDevelopmentMonths,
			"max":     models.MaxDevelopmentMonths,
			"default": models.DefaultDevelopmentMonths,
		},
		"budget_step_usd": models.BudgetStepUSD,
		"default_model":   h.defaultModel,
		"defaults":        models.DefaultBrief(),
	})
}

// Create runs one generation synchronously and returns the extracted sections
func (h *ConceptsHandler) Create(c *gin.Context) {
	req := ConceptRequest{GameBrief: models.DefaultBrief()}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	credential := c.GetHeader(apiKeyHeader)
	fields := logger.WithContext(c).With(logger.Fields{"model": req.Model})

	result, err := h.generator.Generate(c.Request.Context(), req.GameBrief, credential, req.Model)
	switch {
	case errors.Is(err, services.ErrMissingCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": missingCredentialMessage})
		return
	case errors.Is(err, services.ErrBackendFailure):
		logger.Warn("Concept generation failed", fields.With(logger.Fields{"error": err.Error()}))
		c.JSON(http.StatusBadGateway, gin.H{
			"error":      err.Error(),
			"request_id": c.GetString("request_id"),
		})
		return
	case err != nil:
		logger.Error("Concept generation error", err, fields)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Internal server error",
			"request_id": c.GetString("request_id"),
		})
		return
	}

	c.JSON(http.StatusOK, ConceptResponse{
		Model:      result.Model,
		Bundle:     result.Bundle,
		Misses:     nonNil(result.Misses),
		Transcript: result.Transcript,
		StopReason: string(result.StopReason),
		Usage:      result.Usage,
		DurationMs: result.Duration.Milliseconds(),
	})
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
