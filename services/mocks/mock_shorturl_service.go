package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cdn-short-url/types"
)

// MockShortURLService is a mock ShortURLService interface
type MockShortURLService struct {
	mock.Mock
}

func (m *MockShortURLService) GenerateShortURL(ctx context.Context, nativeURL string) (types.ShortURL, error) {
	args := m.Called(ctx, nativeURL)
	return args.Get(0).(types.ShortURL), args.Error(1)
}
