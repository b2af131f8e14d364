package mocks

import (
	"context"

	"catfacts/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockFactService struct {
	mock.Mock
}

func (m *MockFactService) FetchAndStore(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockFactService) History(ctx context.Context, query string) ([]model.Fact, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Fact), args.Error(1)
}
