package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventRateLimitTriggered    EventType = "rate_limit_triggered"
	EventLimiterUnavailable    EventType = "limiter_unavailable"
	EventOriginRejected        EventType = "origin_rejected"
	EventPayloadTooLarge       EventType = "payload_too_large"
	EventValidationFailed      EventType = "validation_failed"
	EventHoneypotTripped       EventType = "honeypot_tripped"
	EventSubmissionTooFast     EventType = "submission_too_fast"
	EventCaptchaFailed         EventType = "captcha_failed"
	EventUserCreated           EventType = "user_created"
	EventRegistrationDuplicate EventType = "registration_duplicate"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time
	Event        EventType
	SubjectType  string // "email", "ip", "user_id"
	SubjectValue string // Masked or hashed for PII
	IP           string
	UserAgent    string
	RequestID    string
	Endpoint     string
	Details      map[string]interface{}
}

// SecurityLogger writes audit events for the submission pipeline.
type SecurityLogger struct {
	zapLogger *zap.Logger
}

func NewSecurityLogger(logger *zap.Logger) *SecurityLogger {
	return &SecurityLogger{zapLogger: logger.Named("security")}
}

// Log logs a security event
func (sl *SecurityLogger) Log(_ context.Context, event SecurityEvent) {
	if sl == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	level := zapcore.WarnLevel
	switch GetSeverity(event.Event) {
	case SeverityINFO:
		level = zapcore.InfoLevel
	case SeverityCRITICAL:
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("event", string(event.Event)),
		zap.String("severity", string(GetSeverity(event.Event))),
		zap.Time("event_time", event.Timestamp),
	}
	if event.SubjectType != "" {
		fields = append(fields,
			zap.String("subject_type", event.SubjectType),
			zap.String("subject_value", maskValue(event.SubjectType, event.SubjectValue)),
		)
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.Endpoint != "" {
		fields = append(fields, zap.String("endpoint", event.Endpoint))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}
	if IsHighOrAbove(event.Event) {
		fields = append(fields, zap.Bool("alert", true))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Endpoint:     endpoint,
	})
}

// LogCaptchaFailed records a failed or missing challenge token.
func (sl *SecurityLogger) LogCaptchaFailed(ctx context.Context, ip, requestID, endpoint string, tokenProvided bool) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventCaptchaFailed,
		IP:        ip,
		RequestID: requestID,
		Endpoint:  endpoint,
		Details:   map[string]interface{}{"token_provided": tokenProvided},
	})
}

// LogUserCreated records a new account.
func (sl *SecurityLogger) LogUserCreated(ctx context.Context, userID, email, ip string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventUserCreated,
		SubjectType:  "email",
		SubjectValue: email,
		IP:           ip,
		Details:      map[string]interface{}{"user_id": userID},
	})
}

// LogRegistrationDuplicate records a registration attempt for a known email.
func (sl *SecurityLogger) LogRegistrationDuplicate(ctx context.Context, email, ip string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRegistrationDuplicate,
		SubjectType:  "email",
		SubjectValue: email,
		IP:           ip,
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// --- Helper Functions ---

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8]) // First 16 chars of hex
}

// maskValue masks a value based on its type
func maskValue(subjectType, value string) string {
	switch subjectType {
	case "email":
		return MaskEmail(value)
	case "ip":
		return value // IPs are not PII in security context
	default:
		return HashValue(value)
	}
}
