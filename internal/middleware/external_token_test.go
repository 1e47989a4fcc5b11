package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/middleware"
	"github.com/stretchr/testify/assert"
)

func externalRouter(apiToken string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/external")
	group.Use(middleware.ExternalTokenMiddleware(apiToken))
	group.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestExternalTokenMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		configured     string
		header         string
		expectedStatus int
	}{
		{
			name:           "valid token",
			configured:     "secret-token",
			header:         "Bearer secret-token",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong token",
			configured:     "secret-token",
			header:         "Bearer other-token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing header",
			configured:     "secret-token",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty configured token disables the API",
			configured:     "",
			header:         "Bearer ",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := externalRouter(tt.configured)

			req := httptest.NewRequest(http.MethodGet, "/external/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
