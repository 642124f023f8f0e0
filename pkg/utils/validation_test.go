package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSubjectID(t *testing.T) {
	assert.NoError(t, ValidateSubjectID("MIG-001"))
	assert.Error(t, ValidateSubjectID(""))
	assert.Error(t, ValidateSubjectID(strings.Repeat("a", 256)))
}

func TestValidateOTPFormat(t *testing.T) {
	assert.NoError(t, ValidateOTPFormat("123456", 6))
	assert.NoError(t, ValidateOTPFormat("000000", 6))

	assert.Error(t, ValidateOTPFormat("", 6), "empty code should be rejected")
	assert.Error(t, ValidateOTPFormat("12345", 6), "short code should be rejected")
	assert.Error(t, ValidateOTPFormat("1234567", 6), "long code should be rejected")
	assert.Error(t, ValidateOTPFormat("12a456", 6), "non-digit code should be rejected")
}

func TestValidatePhone(t *testing.T) {
	validPhones := []string{
		"+919900112233",
		"9900112233",
		"+12025550123",
	}
	for _, phone := range validPhones {
		assert.NoError(t, ValidatePhone(phone), "Phone %s should be valid", phone)
	}

	invalidPhones := []string{
		"",
		"abc",
		"+91 99001 12233",
		"123",
	}
	for _, phone := range invalidPhones {
		assert.Error(t, ValidatePhone(phone), "Phone %s should be invalid", phone)
	}
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "hello", SanitizeString("hel\x00lo"))
}

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("Title", "Vaccination"))
	assert.Error(t, ValidateRequired("Title", ""))
	assert.Error(t, ValidateRequired("Title", "   "))
}
