package validation

import (
	"regexp"
	"strings"
)

// Field rules shared by the lifecycle engine and the employee service.
var (
	// EmailPattern is applied after lowercasing.
	EmailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

	// MobileLength is the exact digit count stored for Indian mobile numbers.
	MobileLength = 10

	// ExitReasonMinLength is the minimum length of a deployment exit reason.
	ExitReasonMinLength = 5
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizeEmail lowercases and trims an email address. Uniqueness
// comparisons are always done on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether the normalized address matches EmailPattern.
func IsValidEmail(email string) bool {
	return EmailPattern.MatchString(NormalizeEmail(email))
}

// NormalizeMobile strips every non-digit character. The result is only
// storable when it has exactly MobileLength digits.
func NormalizeMobile(mobile string) string {
	return nonDigits.ReplaceAllString(mobile, "")
}

// IsValidMobile reports whether the input normalizes to a 10-digit number.
func IsValidMobile(mobile string) bool {
	return len(NormalizeMobile(mobile)) == MobileLength
}

// FilterEmails trims each entry and drops blanks, preserving order.
func FilterEmails(emails []string) []string {
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		if trimmed := strings.TrimSpace(e); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
