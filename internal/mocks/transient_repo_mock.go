package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTransientRepository is a mock implementation of the TransientRepository interface.
type MockTransientRepository struct {
	mock.Mock
}

// Put provides a mock function for storing a scratch value.
func (m *MockTransientRepository) Put(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Clear provides a mock function for wiping the scratch namespace.
func (m *MockTransientRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
