package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps JSON field names to user-facing labels
var FieldLabels = map[string]string{
	"name":     "Name",
	"email":    "Email",
	"subject":  "Subject",
	"message":  "Message",
	"token":    "Captcha token",
	"password": "Password",
	"url":      "URL",
	"stack":    "Stack trace",
}

// FieldErrors groups validation failures by JSON field name. Errors that are
// not validator errors are reported under "_".
func FieldErrors(err error) map[string][]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string][]string{"_": {err.Error()}}
	}

	fields := make(map[string][]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = append(fields[e.Field()], formatSingleError(e))
	}
	return fields
}

// FormatValidationErrors converts validator.ValidationErrors to flat messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("%s: %s", getFieldLabel(e.Field()), formatSingleError(e)))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	param := e.Param()

	switch e.Tag() {
	case "required":
		return "is required"

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", param)
		}
		return fmt.Sprintf("must be at least %s", param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", param)
		}
		return fmt.Sprintf("must be at most %s", param)

	case "email", "safe_email":
		return "must be a valid email address"

	case "url", "http_url":
		return "must be a valid URL"

	case "strong_password":
		return fmt.Sprintf("must be %d-%d characters and include upper and lower case letters, a digit and a symbol",
			MinPasswordLength, MaxPasswordLength)

	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(param), ", "))

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("is invalid (%s)", e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}
