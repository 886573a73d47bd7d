package middleware

import (
	"strconv"
	"time"

	"go-website-backend/pkg/apperror"
	"go-website-backend/pkg/metrics"
	"go-website-backend/pkg/ratelimit"
	"go-website-backend/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter applies sliding-window policies per client IP. Backend
// failures deny the request (fail closed).
type RateLimiter struct {
	limiter   ratelimit.Limiter
	secLogger *security.SecurityLogger
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewRateLimiter(limiter ratelimit.Limiter, secLogger *security.SecurityLogger, m *metrics.Metrics, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		limiter:   limiter,
		secLogger: secLogger,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// Allow consumes one request from policy for the caller. On denial it
// records the error, aborts the chain and returns false.
func (rl *RateLimiter) Allow(c *gin.Context, policy ratelimit.Policy) bool {
	ip := ClientIP(c)
	ctx := c.Request.Context()

	decision, err := rl.limiter.Check(ctx, policy.Identifier(ip), policy.Limit, policy.Window)
	if err != nil {
		rl.logger.Error("rate limiter unavailable",
			zap.String("policy", policy.Name),
			zap.Error(err),
		)
		rl.secLogger.Log(ctx, security.SecurityEvent{
			Event:     security.EventLimiterUnavailable,
			IP:        ip,
			RequestID: c.GetString("RequestID"),
			Endpoint:  c.Request.URL.Path,
		})
		_ = c.Error(apperror.Unavailable("Service temporarily unavailable. Please try again.", err))
		c.Abort()
		return false
	}

	rl.metrics.RateLimitDecision(policy.Name, decision.Allowed)

	// Set rate limit headers
	c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

	if !decision.Allowed {
		retryAfter := decision.RetryAfter(rl.now())
		c.Header("Retry-After", strconv.Itoa(int(retryAfter/time.Second)))

		rl.secLogger.LogRateLimitTriggered(ctx, ip, c.Request.UserAgent(), c.GetString("RequestID"), c.Request.URL.Path)
		rl.metrics.Submission(policy.Name, "rate_limited")

		_ = c.Error(apperror.RateLimited("Too many requests. Please try again later."))
		c.Abort()
		return false
	}
	return true
}

// RateLimitMiddleware applies policy before the handler runs.
func RateLimitMiddleware(rl *RateLimiter, policy ratelimit.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c, policy) {
			return
		}
		c.Next()
	}
}
