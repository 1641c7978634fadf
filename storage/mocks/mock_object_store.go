package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock ObjectStore interface
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStore) PutRedirect(ctx context.Context, key, nativeURL string) error {
	args := m.Called(ctx, key, nativeURL)
	return args.Error(0)
}
