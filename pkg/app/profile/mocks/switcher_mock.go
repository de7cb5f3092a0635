package mocks

import (
	"context"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/stretchr/testify/mock"
)

type MockSwitcher struct {
	mock.Mock
}

func (m *MockSwitcher) Current() policy.AgeProfile {
	args := m.Called()
	return args.Get(0).(policy.AgeProfile)
}

func (m *MockSwitcher) Switch(ctx context.Context, p policy.AgeProfile) (policy.AgeProfile, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(policy.AgeProfile), args.Error(1)
}

func (m *MockSwitcher) Restore(ctx context.Context) policy.AgeProfile {
	args := m.Called(ctx)
	return args.Get(0).(policy.AgeProfile)
}
