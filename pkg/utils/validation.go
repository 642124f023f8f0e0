package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidateSubjectID validates migrant (subject) ID format
func ValidateSubjectID(subjectID string) error {
	if subjectID == "" {
		return fmt.Errorf("subject ID cannot be empty")
	}
	if len(subjectID) > 255 {
		return fmt.Errorf("subject ID too long (max 255 characters)")
	}
	return nil
}

// ValidateRequesterID validates doctor (requester) ID format
func ValidateRequesterID(requesterID string) error {
	if requesterID == "" {
		return fmt.Errorf("requester ID cannot be empty")
	}
	if len(requesterID) > 255 {
		return fmt.Errorf("requester ID too long (max 255 characters)")
	}
	return nil
}

// ValidateRequestID validates access request ID format
func ValidateRequestID(requestID string) error {
	if requestID == "" {
		return fmt.Errorf("request ID cannot be empty")
	}
	if len(requestID) > 255 {
		return fmt.Errorf("request ID too long (max 255 characters)")
	}
	return nil
}

// ValidateGrantID validates access grant ID format
func ValidateGrantID(grantID string) error {
	if grantID == "" {
		return fmt.Errorf("grant ID cannot be empty")
	}
	if len(grantID) > 255 {
		return fmt.Errorf("grant ID too long (max 255 characters)")
	}
	return nil
}

// ValidateOTPFormat validates that a submitted code is all digits of the expected length
func ValidateOTPFormat(code string, length int) error {
	if code == "" {
		return fmt.Errorf("code cannot be empty")
	}
	if len(code) != length {
		return fmt.Errorf("code must be %d digits", length)
	}
	for _, ch := range code {
		if ch < '0' || ch > '9' {
			return fmt.Errorf("code must contain only digits")
		}
	}
	return nil
}

// ValidatePhone validates phone number format
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone cannot be empty")
	}

	phoneRegex := regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("invalid phone format")
	}

	return nil
}

// SanitizeString removes dangerous characters from user input
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")
	// Trim whitespace
	input = strings.TrimSpace(input)
	return input
}

// ValidateRequired validates that a field is not empty
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateMaxLength validates maximum string length
func ValidateMaxLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%s exceeds maximum length of %d characters", fieldName, maxLength)
	}
	return nil
}
