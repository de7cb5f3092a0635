package mocks

import (
	"context"

	"github.com/NeuralTrust/AgeLock/pkg/infra/rulestore"
	"github.com/stretchr/testify/mock"
)

type MockReloader struct {
	mock.Mock
}

func (m *MockReloader) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockDomainAdder struct {
	mock.Mock
}

func (m *MockDomainAdder) Add(ctx context.Context, list rulestore.List, domain string) (bool, error) {
	args := m.Called(ctx, list, domain)
	return args.Bool(0), args.Error(1)
}
