package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockFactSource struct {
	mock.Mock
}

func (m *MockFactSource) FetchFact(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
