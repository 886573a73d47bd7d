package domain

import "strings"

// SpamSignals are the anti-bot fields shared by the public forms. Both are
// optional; a real browser leaves the honeypot empty.
type SpamSignals struct {
	Honeypot  string `json:"honeypot,omitempty" validate:"max=1000"`
	Timestamp int64  `json:"timestamp,omitempty" validate:"gte=0"`
}

func (s SpamSignals) HoneypotValue() string { return s.Honeypot }

// RenderedAt is the client-reported form render time in Unix milliseconds.
func (s SpamSignals) RenderedAt() int64 { return s.Timestamp }

// Form is implemented by every request body that goes through the
// submission pipeline.
type Form interface {
	Normalize()
}

// SpamScreened is implemented by forms that carry SpamSignals.
type SpamScreened interface {
	HoneypotValue() string
	RenderedAt() int64
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
