package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockNotificationProvider is a mock implementation of the NotificationProvider interface.
type MockNotificationProvider struct {
	mock.Mock
}

// Logout provides a mock function for the push-identity deregistration.
func (m *MockNotificationProvider) Logout(ctx context.Context, externalID string) error {
	args := m.Called(ctx, externalID)
	return args.Error(0)
}
