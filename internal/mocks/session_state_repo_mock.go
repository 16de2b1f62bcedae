package mocks

import (
	"context"
	"time"

	"github.com/bigredconnect/sessiond/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockSessionStateRepository is a mock implementation of the SessionStateRepository interface.
type MockSessionStateRepository struct {
	mock.Mock
}

// Touch provides a mock function for recording an activity timestamp.
func (m *MockSessionStateRepository) Touch(ctx context.Context, at time.Time) error {
	args := m.Called(ctx, at)
	return args.Error(0)
}

// CreateWindow provides a mock function for the lazy window creation.
func (m *MockSessionStateRepository) CreateWindow(ctx context.Context, createdAt, expiresAt time.Time) error {
	args := m.Called(ctx, createdAt, expiresAt)
	return args.Error(0)
}

// Read provides a mock function for reading the stored record.
func (m *MockSessionStateRepository) Read(ctx context.Context) (*models.SessionRecord, error) {
	args := m.Called(ctx)
	rec, _ := args.Get(0).(*models.SessionRecord)
	return rec, args.Error(1)
}

// Clear provides a mock function for removing the session window.
func (m *MockSessionStateRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
