package mocks

import (
	"time"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/stretchr/testify/mock"
)

type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) ObserveDecision(rule string, verdict policy.Verdict, profile policy.AgeProfile, elapsed time.Duration) {
	m.Called(rule, verdict, profile, elapsed)
}

func (m *MockObserver) ObserveRulePanic(rule string) {
	m.Called(rule)
}
