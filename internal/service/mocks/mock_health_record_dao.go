package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/swasthya/migrant-access-api/internal/models"
)

// MockHealthRecordDAO is a mock implementation of service.HealthRecordStore
type MockHealthRecordDAO struct {
	mock.Mock
}

func (m *MockHealthRecordDAO) Create(ctx context.Context, record *models.HealthRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHealthRecordDAO) ListBySubject(ctx context.Context, subjectID string) ([]models.HealthRecord, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HealthRecord), args.Error(1)
}
