package apperror

import "net/http"

// Machine-readable error codes returned in the "code" field of error responses.
const (
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeForbidden        = "FORBIDDEN"
	CodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
	CodeBadRequest       = "BAD_REQUEST"
	CodeValidation       = "VALIDATION_ERROR"
	CodeTooFast          = "TOO_FAST"
	CodeRateLimited      = "RATE_LIMITED"
	CodeCaptchaRequired  = "CAPTCHA_REQUIRED"
	CodeCaptchaInvalid   = "CAPTCHA_INVALID"
	CodeUpstreamFailure  = "UPSTREAM_FAILURE"
	CodeInternal         = "INTERNAL_ERROR"
)

type AppError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func MethodNotAllowed() *AppError {
	return New(http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Use POST", nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, CodeForbidden, message, nil)
}

func PayloadTooLarge() *AppError {
	return New(http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "Request body too large", nil)
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, CodeBadRequest, message, nil)
}

// Validation carries per-field reasons so clients can render inline feedback.
func Validation(message string, fields map[string][]string) *AppError {
	e := New(http.StatusBadRequest, CodeValidation, message, nil)
	e.Details = fields
	return e
}

func TooFast() *AppError {
	return New(http.StatusTooManyRequests, CodeTooFast, "Please take your time", nil)
}

func RateLimited(message string) *AppError {
	return New(http.StatusTooManyRequests, CodeRateLimited, message, nil)
}

func CaptchaRequired() *AppError {
	return New(http.StatusBadRequest, CodeCaptchaRequired, "Captcha token is required.", nil)
}

func CaptchaInvalid() *AppError {
	return New(http.StatusBadRequest, CodeCaptchaInvalid, "Invalid captcha. Please try again.", nil)
}

// Upstream hides provider details from the client; err is only logged.
func Upstream(message string, err error) *AppError {
	return New(http.StatusInternalServerError, CodeUpstreamFailure, message, err)
}

func Unavailable(message string, err error) *AppError {
	return New(http.StatusServiceUnavailable, CodeUpstreamFailure, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, CodeInternal, "An error occurred. Please try again later.", err)
}
