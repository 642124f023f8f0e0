package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// MockStatusAuditDAO is a mock implementation of service.StatusAuditStore
type MockStatusAuditDAO struct {
	mock.Mock
}

func (m *MockStatusAuditDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, audit *models.AccessStatusAudit) error {
	args := m.Called(ctx, tx, audit)
	return args.Error(0)
}

func (m *MockStatusAuditDAO) Create(ctx context.Context, audit *models.AccessStatusAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockStatusAuditDAO) GetByRequestID(ctx context.Context, requestID string) ([]models.AccessStatusAudit, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AccessStatusAudit), args.Error(1)
}
