package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Code      string      `json:"code,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	User      interface{} `json:"user,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}

// Success sends a success response
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// UserCreated sends the account body used when registrations echo the new user.
func UserCreated(c *gin.Context, status int, user interface{}) {
	c.JSON(status, Response{
		Success:   true,
		User:      user,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, Response{
		Success:   false,
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID(c),
	})
}
