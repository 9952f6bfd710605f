package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// sourceCtxKey is the Gin context key holding the authenticated detector source.
const sourceCtxKey = "detector_source"

// APIKeyMiddleware maps X-API-Key to the detector source that owns it.
// Requests with an unknown or missing key are rejected before any forwarding.
func APIKeyMiddleware(keys map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader("X-API-Key"))
		source, ok := keys[apiKey]
		if apiKey == "" || !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(sourceCtxKey, source)
		c.Next()
	}
}

// Source returns the authenticated detector source from the request context.
func Source(c *gin.Context) string {
	return c.GetString(sourceCtxKey)
}
