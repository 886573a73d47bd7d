// Package ratelimit provides sliding-window request counting per identifier.
//
// Two backends share the Limiter interface:
//
//   - MemoryLimiter keeps timestamps in a process-local map. It is neither
//     durable nor shared between replicas and is meant for development and
//     single-instance fallback only.
//   - RedisLimiter keeps timestamps in a Redis sorted set and runs the
//     prune/count/record cycle inside a Lua script, so every replica sees one
//     global budget per identifier.
//
// Backends return errors instead of deciding a failure policy; callers decide
// whether to deny (fail closed) or allow.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Decision is the outcome of one Check call.
type Decision struct {
	Allowed   bool
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// RetryAfter returns the wait until ResetAt, never less than one second.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	wait := d.ResetAt.Sub(now)
	if wait < time.Second {
		return time.Second
	}
	return wait.Round(time.Second)
}

type Limiter interface {
	Check(ctx context.Context, identifier string, limit int, window time.Duration) (Decision, error)
}

// Policy names an endpoint quota. Identifiers are prefixed with Name so one
// endpoint's traffic never consumes another endpoint's budget.
type Policy struct {
	Name   string
	Limit  int
	Window time.Duration
}

func (p Policy) Identifier(clientKey string) string {
	return p.Name + ":" + clientKey
}

// New selects the backend once at startup: Redis when a client is available,
// otherwise the in-memory fallback.
func New(client *redis.Client, log *zap.Logger, opts ...Option) Limiter {
	if client != nil {
		log.Info("Rate limiter backend selected", zap.String("backend", "redis"))
		return NewRedisLimiter(client, opts...)
	}
	log.Warn("Rate limiter backend selected: in-memory. Counters are per-process and reset on restart",
		zap.String("backend", "memory"))
	return NewMemoryLimiter(opts...)
}
