package mocks

import (
	"context"

	"github.com/bigredconnect/sessiond/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock implementation of the ProfileRepository interface.
type MockProfileRepository struct {
	mock.Mock
}

// Get provides a mock function for reading the stored rider profile.
func (m *MockProfileRepository) Get(ctx context.Context) (*models.RiderProfile, error) {
	args := m.Called(ctx)
	profile, _ := args.Get(0).(*models.RiderProfile)
	return profile, args.Error(1)
}

// Clear provides a mock function for wiping the profile and legacy keys.
func (m *MockProfileRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
