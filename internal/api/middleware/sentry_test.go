package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestTrackingSetsRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestTracking(nil))

	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(requestIDHeader))
}

func TestRecoverWithSentry(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		contentType string
	}{
		{"api path answers json", "/api/v1/boom", "application/json"},
		{"page path answers text", "/boom", "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RecoverWithSentry(), RequestTracking(nil))
			router.GET(tt.path, func(c *gin.Context) {
				panic("boom")
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), tt.contentType)
			assert.Contains(t, rec.Body.String(), "Internal server error")
		})
	}
}
