package middleware

import (
	"errors"
	"net/http"

	"go-website-backend/internal/delivery/http/response"
	"go-website-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error attached with c.Error. Only the
// AppError message and code reach the client; wrapped causes are logged.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString("RequestID")

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Status >= http.StatusInternalServerError {
				logger.Error("request failed",
					zap.String("code", appErr.Code),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", requestID),
					zap.Error(appErr.Err),
				)
			}
			response.Error(c, appErr.Status, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// SECURITY: Never expose internal error details to clients.
		logger.Error("unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, apperror.CodeInternal, "An error occurred. Please try again later.", nil)
	}
}
