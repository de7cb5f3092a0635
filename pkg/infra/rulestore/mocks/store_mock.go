package mocks

import (
	"context"

	"github.com/NeuralTrust/AgeLock/pkg/infra/rulestore"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) (rulestore.Supplement, error) {
	args := m.Called(ctx)
	sup, _ := args.Get(0).(rulestore.Supplement) //nolint:errcheck
	return sup, args.Error(1)
}

func (m *MockStore) Add(ctx context.Context, list rulestore.List, domain string) (bool, error) {
	args := m.Called(ctx, list, domain)
	return args.Bool(0), args.Error(1)
}
