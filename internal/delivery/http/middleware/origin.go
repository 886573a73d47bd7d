package middleware

import (
	"go-website-backend/pkg/apperror"
	"go-website-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// OriginGuard rejects cross-site submissions whose Origin does not match
// the configured site.
func OriginGuard(allowedOrigin string, secLogger *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if security.CheckOrigin(origin, allowedOrigin) {
			c.Next()
			return
		}

		c.Header("Vary", "Origin")
		secLogger.Log(c.Request.Context(), security.SecurityEvent{
			Event:     security.EventOriginRejected,
			IP:        ClientIP(c),
			UserAgent: c.Request.UserAgent(),
			RequestID: c.GetString("RequestID"),
			Endpoint:  c.Request.URL.Path,
			Details:   map[string]interface{}{"origin": origin},
		})
		_ = c.Error(apperror.Forbidden("Invalid origin"))
		c.Abort()
	}
}
