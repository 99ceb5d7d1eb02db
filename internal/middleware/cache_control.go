package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// CacheControl sets a public max-age header on the response. Used for the
// sitemap and feed XML endpoints, which tolerate staleness.
func CacheControl(maxAge time.Duration) gin.HandlerFunc {
	value := fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds()))
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}

// NoStore disables caching entirely. Applied to admin endpoints.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
