package subscriber_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/infra/cache/event"
	"github.com/NeuralTrust/AgeLock/pkg/infra/cache/subscriber"
	"github.com/NeuralTrust/AgeLock/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type countingReloader struct {
	calls int
	err   error
}

func (r *countingReloader) Reload(context.Context) error {
	r.calls++
	return r.err
}

func TestProfileChangedEventSubscriber(t *testing.T) {
	tests := []struct {
		name  string
		event event.ProfileChangedEvent
		want  policy.AgeProfile
	}{
		{name: "applies remote profile", event: event.ProfileChangedEvent{Origin: "other", Profile: "teenagers"}, want: policy.Teenagers},
		{name: "unknown profile becomes children", event: event.ProfileChangedEvent{Origin: "other", Profile: "robots"}, want: policy.Children},
		{name: "own event ignored", event: event.ProfileChangedEvent{Origin: "self", Profile: "children"}, want: policy.Adults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holder := profile.NewHolder(policy.Adults)
			sub := subscriber.NewProfileChangedEventSubscriber(quietLogger(), "self", holder)

			assert.NoError(t, sub.OnEvent(context.Background(), tt.event))
			assert.Equal(t, tt.want, holder.Current())
		})
	}
}

func TestReloadRulesEventSubscriber(t *testing.T) {
	reloader := &countingReloader{}
	sub := subscriber.NewReloadRulesEventSubscriber(quietLogger(), "self", reloader)

	assert.NoError(t, sub.OnEvent(context.Background(), event.ReloadRulesEvent{Origin: "self"}))
	assert.Equal(t, 0, reloader.calls)

	assert.NoError(t, sub.OnEvent(context.Background(), event.ReloadRulesEvent{Origin: "other"}))
	assert.Equal(t, 1, reloader.calls)

	reloader.err = errors.New("store down")
	assert.Error(t, sub.OnEvent(context.Background(), event.ReloadRulesEvent{Origin: "other"}))
}
