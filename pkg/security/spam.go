package security

import (
	"strings"
	"time"
)

// DefaultMinSubmitElapsed is the shortest plausible time between rendering a
// form and a human submitting it.
const DefaultMinSubmitElapsed = 2 * time.Second

// HoneypotTripped reports whether the hidden honeypot field was filled in.
func HoneypotTripped(value string) bool {
	return strings.TrimSpace(value) != ""
}

// TooFast reports whether a form was submitted suspiciously soon after it
// was rendered. renderedAtMillis is the client-supplied render time in Unix
// milliseconds; zero means the client did not send one and the check is
// skipped. Timestamps in the future are treated as too fast.
func TooFast(renderedAtMillis int64, now time.Time, min time.Duration) bool {
	if renderedAtMillis <= 0 {
		return false
	}
	if min <= 0 {
		min = DefaultMinSubmitElapsed
	}
	elapsed := now.Sub(time.UnixMilli(renderedAtMillis))
	return elapsed < min
}

// FillTimeRemaining is how long a too-fast submission should wait before a
// retry would pass TooFast. It is never more than min.
func FillTimeRemaining(renderedAtMillis int64, now time.Time, min time.Duration) time.Duration {
	if renderedAtMillis <= 0 {
		return 0
	}
	if min <= 0 {
		min = DefaultMinSubmitElapsed
	}
	remaining := min - now.Sub(time.UnixMilli(renderedAtMillis))
	switch {
	case remaining < 0:
		return 0
	case remaining > min:
		return min
	}
	return remaining
}
