package rulestore

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker_Execute(t *testing.T) {
	breaker := NewCircuitBreaker("success-test", 30*time.Second, 3)
	assert.NoError(t, breaker.Execute(func() error { return nil }))

	err := breaker.Execute(func() error { return errors.New("test error") })
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "breaker (success-test)")
	assert.Contains(t, err.Error(), "test error")
}

func TestCircuitBreaker_ReadyToTrip(t *testing.T) {
	breaker := NewCircuitBreaker("ready-to-trip-test", 30*time.Second, 2)
	wrapper, _ := breaker.(*circuitBreakerWrapper) //nolint:errcheck

	assert.Error(t, breaker.Execute(func() error { return errors.New("failure 1") }))
	assert.Equal(t, gobreaker.StateClosed, wrapper.breaker.State())

	assert.Error(t, breaker.Execute(func() error { return errors.New("failure 2") }))
	assert.Equal(t, gobreaker.StateOpen, wrapper.breaker.State())

	err := breaker.Execute(func() error { return nil })
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestCircuitBreaker_Recovery(t *testing.T) {
	breaker := NewCircuitBreaker("recovery-test", 50*time.Millisecond, 1)

	assert.Error(t, breaker.Execute(func() error { return errors.New("trigger failure") }))
	time.Sleep(100 * time.Millisecond)
	assert.NoError(t, breaker.Execute(func() error { return nil }))
}
