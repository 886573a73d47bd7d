package middleware

import (
	"net/http"

	"go-website-backend/pkg/apperror"
	"go-website-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// BodyLimit rejects declared oversize bodies before any read and caps the
// bytes the JSON decoder can consume for the rest.
func BodyLimit(max int64, secLogger *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !security.CheckContentLength(c.GetHeader("Content-Length"), max) || c.Request.ContentLength > max {
			secLogger.Log(c.Request.Context(), security.SecurityEvent{
				Event:     security.EventPayloadTooLarge,
				IP:        ClientIP(c),
				RequestID: c.GetString("RequestID"),
				Endpoint:  c.Request.URL.Path,
				Details:   map[string]interface{}{"content_length": c.Request.ContentLength},
			})
			_ = c.Error(apperror.PayloadTooLarge())
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		c.Next()
	}
}
