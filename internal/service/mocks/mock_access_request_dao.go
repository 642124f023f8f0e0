package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/swasthya/migrant-access-api/internal/database"
	"github.com/swasthya/migrant-access-api/internal/models"
)

// MockAccessRequestDAO is a mock implementation of service.AccessRequestStore
type MockAccessRequestDAO struct {
	mock.Mock
}

func (m *MockAccessRequestDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, request *models.AccessRequest) (bool, error) {
	args := m.Called(ctx, tx, request)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessRequestDAO) GetByID(ctx context.Context, requestID string) (*models.AccessRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessRequest), args.Error(1)
}

func (m *MockAccessRequestDAO) GetPendingByPair(ctx context.Context, subjectID, requesterID string) (*models.AccessRequest, error) {
	args := m.Called(ctx, subjectID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessRequest), args.Error(1)
}

func (m *MockAccessRequestDAO) UpdateStatusIfCurrent(ctx context.Context, requestID, fromStatus, toStatus string) (bool, error) {
	args := m.Called(ctx, requestID, fromStatus, toStatus)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessRequestDAO) UpdateStatusIfCurrentWithTx(ctx context.Context, tx *database.Transaction, requestID, fromStatus, toStatus string) (bool, error) {
	args := m.Called(ctx, tx, requestID, fromStatus, toStatus)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessRequestDAO) ExpireStaleWithTx(ctx context.Context, tx *database.Transaction, nowMillis int64) ([]string, error) {
	args := m.Called(ctx, tx, nowMillis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
