package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,safe_email"`
	Password string `json:"password" validate:"required,strong_password"`
}

func TestIsSafeEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@example.com", true},
		{"jane.doe+tag@mail.example.co", true},
		{"", false},
		{"jane@example", false},
		{"jane example@example.com", false},
		{"jane@@example.com", false},
		{"jane@example.com\r\nBcc: victim@example.com", false},
		{"jane@example.com\nX: y", false},
		{"jane@exa\x00mple.com", false},
		{strings.Repeat("a", 250) + "@example.com", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSafeEmail(tt.email), "email %q", tt.email)
	}
}

func TestStrongPassword(t *testing.T) {
	v := New()

	valid := signup{Name: "Jane", Email: "jane@example.com", Password: "Correct-Horse-9"}
	require.NoError(t, v.Struct(valid))

	weak := []string{
		"Sh0rt!",                          // too short
		"alllowercase1!",                  // no upper
		"ALLUPPERCASE1!",                  // no lower
		"NoDigitsHere!!",                  // no digit
		"NoSymbolsHere12",                 // no symbol
		"Aa1!" + strings.Repeat("x", 125), // too long
	}
	for _, pw := range weak {
		s := valid
		s.Password = pw
		err := v.Struct(s)
		require.Error(t, err, "password %q", pw)
		assert.Contains(t, FieldErrors(err), "password")
	}
}

func TestFieldErrors_UsesJSONNames(t *testing.T) {
	v := New()

	err := v.Struct(signup{Name: "J", Email: "bad"})
	require.Error(t, err)

	fields := FieldErrors(err)
	assert.Equal(t, []string{"must be at least 2 characters"}, fields["name"])
	assert.Equal(t, []string{"must be a valid email address"}, fields["email"])
	assert.Equal(t, []string{"is required"}, fields["password"])
	assert.NotContains(t, fields, "Name")
}

func TestFieldErrors_NonValidatorError(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))
	assert.Equal(t, map[string][]string{"_": {"boom"}}, FieldErrors(errors.New("boom")))
}

func TestFormatValidationErrors(t *testing.T) {
	err := New().Struct(signup{Name: "Jane", Email: "jane@example.com"})
	require.Error(t, err)
	assert.Equal(t, []string{"Password: is required"}, FormatValidationErrors(err))
}
