package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	timestamps []time.Time // ascending
	lastSeen   time.Time
}

// MemoryLimiter is the in-process sliding-window backend. It is safe for
// concurrent use; state is lost on restart and not shared across replicas.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	opts    options
}

func NewMemoryLimiter(opts ...Option) *MemoryLimiter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MemoryLimiter{
		entries: make(map[string]*memoryEntry),
		opts:    o,
	}
}

func (m *MemoryLimiter) Check(_ context.Context, identifier string, limit int, window time.Duration) (Decision, error) {
	now := m.opts.now()
	if limit <= 0 {
		return Decision{Allowed: false, Remaining: 0, Limit: limit, ResetAt: now.Add(window)}, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[identifier]
	if !ok {
		if len(m.entries) >= m.opts.maxKeys {
			m.evictLeastRecent()
		}
		entry = &memoryEntry{}
		m.entries[identifier] = entry
	}
	entry.lastSeen = now
	entry.timestamps = pruneBefore(entry.timestamps, now, window)

	if len(entry.timestamps) >= limit {
		return Decision{
			Allowed:   false,
			Remaining: 0,
			Limit:     limit,
			ResetAt:   entry.timestamps[0].Add(window),
		}, nil
	}

	entry.timestamps = append(entry.timestamps, now)
	return Decision{
		Allowed:   true,
		Remaining: limit - len(entry.timestamps),
		Limit:     limit,
		ResetAt:   entry.timestamps[0].Add(window),
	}, nil
}

// Sweep drops identifiers whose newest request is older than maxAge.
// Returns the number of identifiers removed.
func (m *MemoryLimiter) Sweep(maxAge time.Duration) int {
	now := m.opts.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, entry := range m.entries {
		if now.Sub(entry.lastSeen) >= maxAge {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is cancelled. Identifiers
// idle for longer than maxAge can no longer have in-window entries.
func (m *MemoryLimiter) StartSweeper(ctx context.Context, interval, maxAge time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep(maxAge)
			}
		}
	}()
}

// Len reports how many identifiers are tracked.
func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// evictLeastRecent must be called with m.mu held. It only runs when the map
// is full, so the linear scan is bounded by maxKeys.
func (m *MemoryLimiter) evictLeastRecent() {
	var (
		oldestKey  string
		oldestSeen time.Time
		found      bool
	)
	for key, entry := range m.entries {
		if !found || entry.lastSeen.Before(oldestSeen) {
			oldestKey, oldestSeen, found = key, entry.lastSeen, true
		}
	}
	if found {
		delete(m.entries, oldestKey)
	}
}

// pruneBefore keeps timestamps younger than window, reusing the backing array.
func pruneBefore(timestamps []time.Time, now time.Time, window time.Duration) []time.Time {
	valid := timestamps[:0]
	for _, ts := range timestamps {
		if now.Sub(ts) < window {
			valid = append(valid, ts)
		}
	}
	return valid
}
