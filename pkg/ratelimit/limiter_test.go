package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestPolicyIdentifier(t *testing.T) {
	p := Policy{Name: "contact", Limit: 5, Window: time.Hour}
	assert.Equal(t, "contact:203.0.113.7", p.Identifier("203.0.113.7"))
}

func TestDecisionRetryAfter(t *testing.T) {
	now := time.Now()
	assert.Equal(t, time.Second, Decision{ResetAt: now}.RetryAfter(now))
	assert.Equal(t, 90*time.Second, Decision{ResetAt: now.Add(90 * time.Second)}.RetryAfter(now))
}

func TestNew_SelectsBackend(t *testing.T) {
	log := zap.NewNop()

	_, isMemory := New(nil, log).(*MemoryLimiter)
	assert.True(t, isMemory)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	_, isRedis := New(client, log).(*RedisLimiter)
	assert.True(t, isRedis)
}
