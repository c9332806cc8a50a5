package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Indian mobile or landline numbers: optional +91/0 prefix, then 10 digits.
var phoneRe = regexp.MustCompile(`^(?:\+91|0)?[0-9]{10}$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPhone accepts 10 digits with an optional +91 or 0 prefix. Spaces and
// dashes are ignored.
func IsValidPhone(phone string) bool {
	phone = strings.NewReplacer(" ", "", "-", "").Replace(phone)
	return phoneRe.MatchString(phone)
}

// IsValidPassword requires at least 8 characters with a letter and a digit.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// Blank reports whether s is empty after trimming.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
