package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgriss/aimanifesto/internal/utils"
)

// ExternalTokenMiddleware authenticates external API clients against the
// static bearer token from configuration. An empty configured token
// disables the external API entirely.
func ExternalTokenMiddleware(apiToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := utils.ExtractToken(c)
		if err != nil || apiToken == "" ||
			subtle.ConstantTimeCompare([]byte(token), []byte(apiToken)) != 1 {
			c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized. Invalid or missing API token."))
			c.Abort()
			return
		}

		c.Next()
	}
}
