package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLimiter_SlidingWindow(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	clock := newFakeClock()
	limiter := NewRedisLimiter(client, WithClock(clock.Now))

	for want := 4; want >= 0; want-- {
		dec, err := limiter.Check(ctx, "contact:1.2.3.4", 5, time.Hour)
		require.NoError(t, err)
		assert.True(t, dec.Allowed)
		assert.Equal(t, want, dec.Remaining)
		clock.Advance(time.Second)
	}

	dec, err := limiter.Check(ctx, "contact:1.2.3.4", 5, time.Hour)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, 0, dec.Remaining)
	assert.Equal(t, newFakeClock().Now().Add(time.Hour).UnixMilli(), dec.ResetAt.UnixMilli())
}

func TestRedisLimiter_WindowSlides(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	clock := newFakeClock()
	limiter := NewRedisLimiter(client, WithClock(clock.Now))

	_, err := limiter.Check(ctx, "k", 1, time.Minute)
	require.NoError(t, err)

	dec, err := limiter.Check(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, dec.Allowed)

	clock.Advance(time.Minute)
	dec, err = limiter.Check(ctx, "k", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func TestRedisLimiter_SharedAcrossInstances(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)

	nodeA := NewRedisLimiter(client)
	nodeB := NewRedisLimiter(client)

	dec, err := nodeA.Check(ctx, "register:10.0.0.1", 1, time.Hour)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)

	dec, err = nodeB.Check(ctx, "register:10.0.0.1", 1, time.Hour)
	require.NoError(t, err)
	assert.False(t, dec.Allowed, "second node must see the first node's request")

	dec, err = nodeB.Check(ctx, "register:10.0.0.2", 1, time.Hour)
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func TestRedisLimiter_KeyPrefixAndExpiry(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	limiter := NewRedisLimiter(client, WithPrefix("site:"))

	_, err := limiter.Check(ctx, "newsletter:1.1.1.1", 3, time.Hour)
	require.NoError(t, err)

	assert.True(t, mr.Exists("site:newsletter:1.1.1.1"))
	assert.Equal(t, time.Hour, mr.TTL("site:newsletter:1.1.1.1"))
}

func TestRedisLimiter_BackendUnavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewRedisLimiter(client, WithTimeout(200*time.Millisecond))
	mr.Close()

	_, err := limiter.Check(context.Background(), "k", 5, time.Minute)
	assert.Error(t, err)
}
