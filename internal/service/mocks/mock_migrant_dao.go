package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/swasthya/migrant-access-api/internal/models"
)

// MockMigrantDAO is a mock implementation of service.MigrantStore
type MockMigrantDAO struct {
	mock.Mock
}

func (m *MockMigrantDAO) GetByID(ctx context.Context, migrantID string) (*models.Migrant, error) {
	args := m.Called(ctx, migrantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Migrant), args.Error(1)
}

func (m *MockMigrantDAO) Exists(ctx context.Context, migrantID string) (bool, error) {
	args := m.Called(ctx, migrantID)
	return args.Bool(0), args.Error(1)
}
