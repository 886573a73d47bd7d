package ratelimit

import "time"

type options struct {
	prefix  string
	timeout time.Duration
	maxKeys int
	now     func() time.Time
}

func defaultOptions() options {
	return options{
		prefix:  "rl:",
		timeout: 2 * time.Second,
		maxKeys: 100000,
		now:     time.Now,
	}
}

type Option func(*options)

// WithPrefix sets the Redis key prefix (default "rl:").
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithTimeout bounds each Redis round trip (default 2s). Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithMaxKeys bounds the number of identifiers the in-memory backend tracks.
// When full, the identifier seen least recently is evicted.
func WithMaxKeys(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxKeys = n
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
