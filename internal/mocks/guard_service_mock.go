package mocks

import (
	"context"

	"github.com/bigredconnect/sessiond/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockSessionGuard is a mock implementation of the SessionGuard interface.
type MockSessionGuard struct {
	mock.Mock
}

func (m *MockSessionGuard) RecordActivity(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockSessionGuard) Evaluate(ctx context.Context, hasActiveBooking bool) models.Decision {
	args := m.Called(ctx, hasActiveBooking)
	return args.Get(0).(models.Decision)
}

func (m *MockSessionGuard) IsLoggedIn(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockSessionGuard) Snapshot(ctx context.Context, hasActiveBooking bool) *models.SessionSnapshot {
	args := m.Called(ctx, hasActiveBooking)
	snap, _ := args.Get(0).(*models.SessionSnapshot)
	return snap
}

// MockLogoutSequencer is a mock implementation of the LogoutSequencer interface.
type MockLogoutSequencer struct {
	mock.Mock
}

func (m *MockLogoutSequencer) ForceLogout(ctx context.Context, reason string) string {
	args := m.Called(ctx, reason)
	return args.String(0)
}
