// Package email delivers transactional mail through a single backend chosen
// at startup. Callers hand over fully escaped HTML; the dispatcher guards
// addresses and the subject header but never touches the body.
package email

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go-website-backend/pkg/metrics"

	"go.uber.org/zap"
)

// MaxSubjectLength is the RFC 5322 line length limit applied to subjects.
const MaxSubjectLength = 998

var (
	// ErrSendFailed is the only error callers see for provider failures;
	// details stay in the server log.
	ErrSendFailed = errors.New("email: send failed")
	// ErrInvalidAddress is returned before any delivery attempt.
	ErrInvalidAddress = errors.New("email: invalid address")
)

var addressRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Message is a single outbound email.
type Message struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// Sender is a delivery backend.
type Sender interface {
	Send(ctx context.Context, from string, msg Message) error
	Name() string
}

// Dispatcher validates messages and hands them to the configured Sender.
type Dispatcher struct {
	sender  Sender
	from    string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewDispatcher(sender Sender, from string, logger *zap.Logger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{
		sender:  sender,
		from:    from,
		logger:  logger.Named("email"),
		metrics: m,
	}
}

// Backend names the delivery backend in use.
func (d *Dispatcher) Backend() string {
	return d.sender.Name()
}

// Send delivers msg. Address problems return ErrInvalidAddress; any backend
// failure returns ErrSendFailed.
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("%w: no recipients", ErrInvalidAddress)
	}
	for _, to := range msg.To {
		if !ValidAddress(to) {
			return fmt.Errorf("%w: recipient", ErrInvalidAddress)
		}
	}
	if msg.ReplyTo != "" && !ValidAddress(msg.ReplyTo) {
		return fmt.Errorf("%w: reply-to", ErrInvalidAddress)
	}
	msg.Subject = SanitizeSubject(msg.Subject)

	err := d.sender.Send(ctx, d.from, msg)
	d.metrics.EmailSend(d.sender.Name(), err)
	if err != nil {
		d.logger.Error("email delivery failed",
			zap.String("backend", d.sender.Name()),
			zap.Int("recipients", len(msg.To)),
			zap.Error(err),
		)
		return ErrSendFailed
	}
	return nil
}

// SendBestEffort delivers msg and only logs a failure.
func (d *Dispatcher) SendBestEffort(ctx context.Context, msg Message) {
	if err := d.Send(ctx, msg); err != nil {
		d.logger.Warn("best-effort email not delivered", zap.Error(err))
	}
}

// ValidAddress rejects control characters that could start a new header
// and anything that is not shaped like local@domain.tld.
func ValidAddress(addr string) bool {
	if strings.ContainsAny(addr, "\r\n\x00") {
		return false
	}
	return addressRegex.MatchString(addr)
}

// SanitizeSubject replaces line breaks with spaces and truncates to
// MaxSubjectLength bytes without splitting a UTF-8 sequence.
func SanitizeSubject(subject string) string {
	subject = strings.NewReplacer("\r", " ", "\n", " ").Replace(subject)
	if len(subject) <= MaxSubjectLength {
		return subject
	}
	cut := MaxSubjectLength
	for cut > 0 && !utf8.RuneStart(subject[cut]) {
		cut--
	}
	return subject[:cut]
}
