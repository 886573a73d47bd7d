package v1

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"go-website-backend/internal/delivery/http/middleware"
	"go-website-backend/internal/delivery/http/response"
	"go-website-backend/internal/domain"
	"go-website-backend/pkg/apperror"
	"go-website-backend/pkg/metrics"
	"go-website-backend/pkg/security"
	"go-website-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Submission outcomes recorded in forms_submissions_total.
const (
	outcomeAccepted = "accepted"
	outcomeInvalid  = "invalid"
	outcomeHoneypot = "honeypot"
	outcomeTooFast  = "too_fast"
	outcomeTooLarge = "too_large"
	outcomeFailed   = "failed"
)

// pipeline runs the per-request checks that need the parsed body. Method,
// origin and size checks have already run as middleware; the order here is
// parse, validate, spam screen, rate limit.
type pipeline struct {
	validate   *validator.Validate
	limiter    *middleware.RateLimiter
	secLogger  *security.SecurityLogger
	metrics    *metrics.Metrics
	minElapsed time.Duration
	now        func() time.Time
}

// bind decodes and validates the body into form. On failure the error is
// attached to c and false is returned.
func (p *pipeline) bind(c *gin.Context, endpoint string, form domain.Form) bool {
	if err := c.ShouldBindJSON(form); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			p.metrics.Submission(endpoint, outcomeTooLarge)
			_ = c.Error(apperror.PayloadTooLarge())
			return false
		}
		p.metrics.Submission(endpoint, outcomeInvalid)
		_ = c.Error(apperror.BadRequest("Invalid JSON"))
		return false
	}

	form.Normalize()

	if err := p.validate.Struct(form); err != nil {
		fields := validation.FieldErrors(err)
		p.secLogger.Log(c.Request.Context(), security.SecurityEvent{
			Event:     security.EventValidationFailed,
			IP:        middleware.ClientIP(c),
			RequestID: c.GetString("RequestID"),
			Endpoint:  c.Request.URL.Path,
			Details:   map[string]interface{}{"fields": fieldNames(fields)},
		})
		p.metrics.Submission(endpoint, outcomeInvalid)
		_ = c.Error(apperror.Validation("Invalid input", fields))
		return false
	}
	return true
}

// screen applies the honeypot and minimum-fill-time checks. A tripped
// honeypot gets the normal success reply so bots learn nothing. It returns
// true when the request has been fully handled.
func (p *pipeline) screen(c *gin.Context, endpoint string, form domain.SpamScreened, successMessage string) bool {
	ip := middleware.ClientIP(c)

	if security.HoneypotTripped(form.HoneypotValue()) {
		p.secLogger.Log(c.Request.Context(), security.SecurityEvent{
			Event:     security.EventHoneypotTripped,
			IP:        ip,
			UserAgent: c.Request.UserAgent(),
			RequestID: c.GetString("RequestID"),
			Endpoint:  c.Request.URL.Path,
		})
		p.metrics.Submission(endpoint, outcomeHoneypot)
		response.Success(c, http.StatusOK, successMessage, nil)
		return true
	}

	now := p.now()
	if security.TooFast(form.RenderedAt(), now, p.minElapsed) {
		wait := security.FillTimeRemaining(form.RenderedAt(), now, p.minElapsed)
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		p.secLogger.Log(c.Request.Context(), security.SecurityEvent{
			Event:     security.EventSubmissionTooFast,
			IP:        ip,
			RequestID: c.GetString("RequestID"),
			Endpoint:  c.Request.URL.Path,
		})
		p.metrics.Submission(endpoint, outcomeTooFast)
		_ = c.Error(apperror.TooFast())
		return true
	}
	return false
}

func fieldNames(fields map[string][]string) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}
