package utils

import (
	"github.com/google/uuid"
)

// GenerateID generates a new UUID string
func GenerateID() string {
	return uuid.New().String()
}

// GenerateRequestID generates a unique access request ID
func GenerateRequestID() string {
	return "REQ-" + uuid.New().String()
}

// GenerateGrantID generates a unique access grant ID
func GenerateGrantID() string {
	return "GRANT-" + uuid.New().String()
}

// GenerateRecordID generates a unique health record ID
func GenerateRecordID() string {
	return "REC-" + uuid.New().String()
}

// GenerateAuditID generates a unique status audit ID
func GenerateAuditID() string {
	return "AUDIT-" + uuid.New().String()
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
