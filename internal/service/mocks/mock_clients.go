package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCodeDeliverer is a mock implementation of service.CodeDeliverer
type MockCodeDeliverer struct {
	mock.Mock
}

func (m *MockCodeDeliverer) Deliver(ctx context.Context, destination, code, requestID string) error {
	args := m.Called(ctx, destination, code, requestID)
	return args.Error(0)
}

// MockSummarizer is a mock implementation of service.Summarizer
type MockSummarizer struct {
	mock.Mock
}

func (m *MockSummarizer) IsEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSummarizer) Summarize(ctx context.Context, recordText string) (string, error) {
	args := m.Called(ctx, recordText)
	return args.String(0), args.Error(1)
}
