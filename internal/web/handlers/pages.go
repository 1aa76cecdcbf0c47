package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Conceptual-Machines/game-design-team/internal/logger"
	"github.com/Conceptual-Machines/game-design-team/internal/models"
	"github.com/Conceptual-Machines/game-design-team/internal/services"
	"github.com/Conceptual-Machines/game-design-team/internal/session"
	"github.com/Conceptual-Machines/game-design-team/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

const (
	missingCredentialMessage = "Please enter your OpenAI API key."
	invalidFormMessage       = "Some of the form values could not be read. Please check them and try again."
	backendFailureMessage    = "The design team could not finish the concept: "
)

// GenerateForm is the submitted page form
type GenerateForm struct {
	models.GameBrief
	APIKey string `form:"api_key"`
	Model  string `form:"model"`
}

type WebHandler struct {
	generator    services.ConceptGenerator
	sessions     *session.Store
	defaultModel string
}

func NewWebHandler(generator services.ConceptGenerator, sessions *session.Store, defaultModel string) *WebHandler {
	return &WebHandler{
		generator:    generator,
		sessions:     sessions,
		defaultModel: defaultModel,
	}
}

// Home renders the form prefilled from the session, plus the last concept if any
func (h *WebHandler) Home(c *gin.Context) {
	state := h.sessions.Load(c.Request)
	if state.ID != "" {
		c.Set("session_id", state.ID)
	}

	var bundle *models.OutputBundle
	if state.HasBundle {
		bundle = &state.Bundle
	}

	h.render(c, http.StatusOK, templates.Home(templates.NewHomeData(state.Brief, h.defaultModel, bundle, nil)))
}

// Generate runs the design team synchronously on the submitted form
func (h *WebHandler) Generate(c *gin.Context) {
	form := GenerateForm{GameBrief: models.DefaultBrief()}
	if err := c.ShouldBind(&form); err != nil {
		logger.Warn("Invalid concept form", logger.WithContext(c).With(logger.Fields{"error": err.Error()}))
		brief := form.GameBrief
		brief.Normalize()
		h.renderPage(c, http.StatusBadRequest, brief, form.Model, nil, templates.ErrorBanner(invalidFormMessage))
		return
	}

	brief := form.GameBrief
	brief.Normalize()
	model := strings.TrimSpace(form.Model)
	if model == "" {
		model = h.defaultModel
	}

	result, err := h.generator.Generate(c.Request.Context(), brief, form.APIKey, model)
	switch {
	case errors.Is(err, services.ErrMissingCredential):
		h.renderPage(c, http.StatusBadRequest, brief, model, nil, templates.ErrorBanner(missingCredentialMessage))
		return
	case err != nil:
		logger.Warn("Concept generation failed", logger.WithContext(c).With(logger.Fields{
			"model": model,
			"error": err.Error(),
		}))
		h.renderPage(c, http.StatusBadGateway, brief, model, nil, templates.ErrorBanner(backendFailureMessage+err.Error()))
		return
	}

	sessionID, err := h.sessions.SaveRun(c.Writer, c.Request, brief, result.Bundle)
	if err != nil {
		logger.Error("Failed to save concept to session", err, logger.WithContext(c))
	} else {
		c.Set("session_id", sessionID)
	}

	h.renderPage(c, http.StatusOK, brief, model, &result.Bundle, templates.SuccessBanner())
}

// NotFound renders the 404 page for browsers and JSON for API clients
func (h *WebHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	h.render(c, http.StatusNotFound, templates.NotFound(c.Request.URL.Path))
}

func (h *WebHandler) renderPage(c *gin.Context, status int, brief models.GameBrief, model string, bundle *models.OutputBundle, banner *templates.Banner) {
	if model == "" {
		model = h.defaultModel
	}
	h.render(c, status, templates.Home(templates.NewHomeData(brief, model, bundle, banner)))
}

func (h *WebHandler) render(c *gin.Context, status int, component templ.Component) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		logger.Error("Failed to render template", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render template"})
	}
}
