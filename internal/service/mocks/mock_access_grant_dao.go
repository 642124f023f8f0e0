package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// MockAccessGrantDAO is a mock implementation of service.AccessGrantStore
type MockAccessGrantDAO struct {
	mock.Mock
}

func (m *MockAccessGrantDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, grant *models.AccessGrant) error {
	args := m.Called(ctx, tx, grant)
	return args.Error(0)
}

func (m *MockAccessGrantDAO) GetByID(ctx context.Context, grantID string) (*models.AccessGrant, error) {
	args := m.Called(ctx, grantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessGrant), args.Error(1)
}
