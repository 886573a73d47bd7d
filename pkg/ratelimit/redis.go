package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Sliding window over a sorted set scored by request time in milliseconds.
// KEYS[1] = window key
// ARGV[1] = limit
// ARGV[2] = window in ms
// ARGV[3] = now in ms
// ARGV[4] = unique member for this request
// ARGV[5] = cutoff in ms (now - window); scores at or below it are expired
// Returns: {allowed (0/1), remaining, reset_at_ms}
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', ARGV[5])

local count = redis.call('ZCARD', key)
local reset = now + window
local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if oldest[2] then
    reset = tonumber(oldest[2]) + window
end

if count >= limit then
    return {0, 0, reset}
end

redis.call('ZADD', key, ARGV[3], ARGV[4])
redis.call('PEXPIRE', key, ARGV[2])
return {1, limit - count - 1, reset}
`)

// RedisLimiter is the distributed sliding-window backend.
type RedisLimiter struct {
	client *redis.Client
	opts   options
}

func NewRedisLimiter(client *redis.Client, opts ...Option) *RedisLimiter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &RedisLimiter{client: client, opts: o}
}

func (r *RedisLimiter) Check(ctx context.Context, identifier string, limit int, window time.Duration) (Decision, error) {
	now := r.opts.now()
	if limit <= 0 {
		return Decision{Allowed: false, Remaining: 0, Limit: limit, ResetAt: now.Add(window)}, nil
	}

	if r.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.timeout)
		defer cancel()
	}

	nowMs := now.UnixMilli()
	windowMs := window.Milliseconds()
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()

	result, err := slidingWindowScript.Run(ctx, r.client,
		[]string{r.opts.prefix + identifier},
		limit,
		windowMs,
		nowMs,
		member,
		nowMs-windowMs,
	).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 3 {
		return Decision{}, errors.New("unexpected redis result format")
	}
	allowed, _ := values[0].(int64)
	remaining, _ := values[1].(int64)
	resetMs, _ := values[2].(int64)

	return Decision{
		Allowed:   allowed == 1,
		Remaining: int(remaining),
		Limit:     limit,
		ResetAt:   time.UnixMilli(resetMs),
	}, nil
}
