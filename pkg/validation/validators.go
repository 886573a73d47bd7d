package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinPasswordLength = 12
	MaxPasswordLength = 128
	MaxEmailLength    = 254
)

// Regex patterns
var (
	// local@domain.tld with no whitespace and a single @ boundary
	emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// New returns a validator with the custom tags registered and JSON field
// names reported in errors.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("safe_email", SafeEmail)
	_ = v.RegisterValidation("strong_password", StrongPassword)
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// IsSafeEmail reports whether s is a plausible single address that cannot
// smuggle extra mail headers.
func IsSafeEmail(s string) bool {
	if s == "" || len(s) > MaxEmailLength {
		return false
	}
	if strings.ContainsAny(s, "\r\n\x00") {
		return false
	}
	return emailShapeRegex.MatchString(s)
}

// SafeEmail validates an email address without header-injection characters
func SafeEmail(fl validator.FieldLevel) bool {
	return IsSafeEmail(fl.Field().String())
}

// StrongPassword requires upper, lower, digit and symbol classes within the
// accepted length range.
func StrongPassword(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	n := len([]rune(val))
	if n < MinPasswordLength || n > MaxPasswordLength {
		return false
	}

	// Character classes are ASCII; anything outside A-Z, a-z, 0-9 is a symbol.
	var upper, lower, digit, symbol bool
	for _, r := range val {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
