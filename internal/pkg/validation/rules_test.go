package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "anita@example.com", NormalizeEmail("  Anita@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"anita@example.com",
		"Anita.K+hr@sub.example.co.in",
		" padded@example.org ",
	}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{
		"",
		"no-at-sign.example.com",
		"missing@tld",
		"two@@example.com",
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestNormalizeMobile(t *testing.T) {
	assert.Equal(t, "9876543210", NormalizeMobile("98765 43210"))
	assert.Equal(t, "9876543210", NormalizeMobile("(987) 654-3210"))
	assert.Equal(t, "919876543210", NormalizeMobile("+91 9876543210"))
}

func TestIsValidMobile(t *testing.T) {
	assert.True(t, IsValidMobile("9876543210"))
	assert.True(t, IsValidMobile("98765-43210"))
	assert.False(t, IsValidMobile("12345"))
	assert.False(t, IsValidMobile("+91 9876543210")) // 12 digits after stripping
	assert.False(t, IsValidMobile(""))
}

func TestFilterEmails(t *testing.T) {
	in := []string{" a@x.com ", "", "  ", "b@y.com"}
	assert.Equal(t, []string{"a@x.com", "b@y.com"}, FilterEmails(in))
	assert.Empty(t, FilterEmails(nil))
}
