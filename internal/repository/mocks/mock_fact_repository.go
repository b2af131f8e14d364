package mocks

import (
	"context"

	"catfacts/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockFactRepository struct {
	mock.Mock
}

func (m *MockFactRepository) Insert(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}

func (m *MockFactRepository) Query(ctx context.Context, filter string) ([]model.Fact, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Fact), args.Error(1)
}
