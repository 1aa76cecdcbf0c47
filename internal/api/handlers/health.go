package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness and the active generation defaults
type HealthHandler struct {
	version         string
	defaultModel    string
	langfuseEnabled bool
}

func NewHealthHandler(version, defaultModel string, langfuseEnabled bool) *HealthHandler {
	return &HealthHandler{
		version:         version,
		defaultModel:    defaultModel,
		langfuseEnabled: langfuseEnabled,
	}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"version":       h.version,
		"default_model": h.defaultModel,
		"langfuse":      h.langfuseEnabled,
	})
}
