package middleware

import (
	"context"
	"regexp"

	"go-website-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{8,64}$`)

// RequestID tags every request with an ID (reusing a well-formed upstream
// one) and copies request metadata into the request context for usecases.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !requestIDPattern.MatchString(id) {
			id = uuid.NewString()
		}
		c.Set("RequestID", id)
		c.Header(RequestIDHeader, id)

		ctx := context.WithValue(c.Request.Context(), domain.KeyRequestID, id)
		ctx = context.WithValue(ctx, domain.KeyEndpoint, c.Request.URL.Path)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ClientIP resolves the caller address using the engine's RemoteIPHeaders
// and trusted proxies, falling back to 0.0.0.0.
func ClientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "0.0.0.0"
}
