package middleware

import (
	"net/http"

	"github.com/examwatch/examwatch-backend/internal/config"
	"github.com/gin-gonic/gin"
)

// Redirects returns a middleware serving the static redirect table from
// config: legacy paths 301 to their current locations. Only exact GET
// matches redirect; everything else passes through.
func Redirects(rules []config.RedirectRule) gin.HandlerFunc {
	table := make(map[string]string, len(rules))
	for _, r := range rules {
		table[r.From] = r.To
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			if to, ok := table[c.Request.URL.Path]; ok {
				c.Redirect(http.StatusMovedPermanently, to)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
