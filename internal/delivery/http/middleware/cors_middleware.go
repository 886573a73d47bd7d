package middleware

import (
	"net/http"

	"go-website-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware echoes CORS headers for the single configured site
// origin. Other origins get no CORS headers and the browser blocks them.
func CORSMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" && security.CheckOrigin(origin, allowedOrigin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400") // 24 hours
		}

		// Vary header to ensure caches differentiate by Origin
		c.Header("Vary", "Origin")

		c.Next()
	}
}

// Preflight answers OPTIONS for a form endpoint.
func Preflight(c *gin.Context) {
	c.Header("Allow", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
	c.AbortWithStatus(http.StatusNoContent)
}
