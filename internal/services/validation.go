package services

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Vietnamese mobile format: leading zero plus nine digits.
var phonePattern = regexp.MustCompile(`^0\d{9}$`)

var emailValidator = validator.New()

// IsValidPhoneNumber reports whether s is a well-formed local phone number.
func IsValidPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}

// IsValidEmail reports whether s is a plausible email address.
func IsValidEmail(s string) bool {
	return emailValidator.Var(s, "required,email") == nil
}

// formatBirthday normalizes a birthday to yyyy-MM-dd for the gateways.
// Empty input yields nil (the gateways accept null); unparseable input is
// passed through untouched rather than dropped.
func formatBirthday(s string) *string {
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			formatted := t.Format("2006-01-02")
			return &formatted
		}
	}
	return &s
}
