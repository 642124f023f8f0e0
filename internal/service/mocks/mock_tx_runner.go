package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/swasthya/migrant-access-api/internal/database"
)

// MockTxRunner is a mock implementation of service.TxRunner. It runs the
// transaction function with a nil transaction so the mocked DAOs can be
// asserted without a database; the returned error follows the function's
// result unless an expectation overrides it.
type MockTxRunner struct {
	mock.Mock
}

func (m *MockTxRunner) WithTransaction(ctx context.Context, fn func(*database.Transaction) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(nil)
}
