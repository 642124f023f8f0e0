package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// MockOneTimeCodeDAO is a mock implementation of service.OneTimeCodeStore
type MockOneTimeCodeDAO struct {
	mock.Mock
}

func (m *MockOneTimeCodeDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, code *models.OneTimeCode) error {
	args := m.Called(ctx, tx, code)
	return args.Error(0)
}

func (m *MockOneTimeCodeDAO) GetByRequestID(ctx context.Context, requestID string) (*models.OneTimeCode, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OneTimeCode), args.Error(1)
}

func (m *MockOneTimeCodeDAO) IncrementAttempts(ctx context.Context, requestID string) (int, error) {
	args := m.Called(ctx, requestID)
	return args.Int(0), args.Error(1)
}

func (m *MockOneTimeCodeDAO) ConsumeWithTx(ctx context.Context, tx *database.Transaction, requestID string) (bool, error) {
	args := m.Called(ctx, tx, requestID)
	return args.Bool(0), args.Error(1)
}
