package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/apex-fest/backend/pkg/response"
)

// HeaderAPIKey carries the shared secret for sync/audit endpoints.
// Header rather than query so the key stays out of access logs.
const HeaderAPIKey = "X-Api-Key"

// RequireAPIKey returns a middleware that rejects requests whose
// X-Api-Key header does not match key. Comparison is constant time. An
// empty configured key rejects everything rather than opening the
// endpoint.
func RequireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(HeaderAPIKey)
		if key == "" || len(got) != len(key) ||
			subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			response.Unauthorized(c, "Invalid or missing API key")
			c.Abort()
			return
		}
		c.Next()
	}
}
