package security

// Severity represents the severity level of a security event
// This is derived from EventType, NOT user-provided
type Severity string

const (
	SeverityINFO     Severity = "INFO"
	SeverityMEDIUM   Severity = "MEDIUM"
	SeverityWARN     Severity = "WARN"
	SeverityHIGH     Severity = "HIGH"
	SeverityCRITICAL Severity = "CRITICAL"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventUserCreated: SeverityINFO,

	EventValidationFailed:      SeverityMEDIUM,
	EventPayloadTooLarge:       SeverityMEDIUM,
	EventRegistrationDuplicate: SeverityMEDIUM,

	EventRateLimitTriggered: SeverityWARN,
	EventSubmissionTooFast:  SeverityWARN,
	EventCaptchaFailed:      SeverityWARN,

	EventHoneypotTripped: SeverityHIGH,
	EventOriginRejected:  SeverityHIGH,

	EventLimiterUnavailable: SeverityCRITICAL,
}

// GetSeverity returns the severity for an event type
// If the event type is not mapped, defaults to MEDIUM
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

// IsHighOrAbove returns true if the event is HIGH or CRITICAL severity
func IsHighOrAbove(eventType EventType) bool {
	severity := GetSeverity(eventType)
	return severity == SeverityHIGH || severity == SeverityCRITICAL
}
