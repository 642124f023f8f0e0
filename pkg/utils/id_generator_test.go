package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRequestID_UniqueAndPrefixed(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateRequestID()

		assert.True(t, strings.HasPrefix(id, "REQ-"))
		assert.True(t, IsValidUUID(strings.TrimPrefix(id, "REQ-")))

		assert.False(t, ids[id], "ID should be unique")
		ids[id] = true
	}

	assert.Equal(t, 100, len(ids))
}

func TestGeneratePrefixes(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateGrantID(), "GRANT-"))
	assert.True(t, strings.HasPrefix(GenerateRecordID(), "REC-"))
	assert.True(t, strings.HasPrefix(GenerateAuditID(), "AUDIT-"))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID(GenerateID()))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}
