package subscriber

import (
	"context"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	infraCache "github.com/NeuralTrust/AgeLock/pkg/infra/cache"
	"github.com/NeuralTrust/AgeLock/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type ProfileSetter interface {
	Set(p policy.AgeProfile) policy.AgeProfile
}

type ProfileChangedEventSubscriber struct {
	logger   *logrus.Logger
	instance string
	holder   ProfileSetter
}

func NewProfileChangedEventSubscriber(
	logger *logrus.Logger,
	instance string,
	holder ProfileSetter,
) infraCache.EventSubscriber[event.ProfileChangedEvent] {
	return &ProfileChangedEventSubscriber{
		logger:   logger,
		instance: instance,
		holder:   holder,
	}
}

// OnEvent applies a profile published by another instance. Unknown values
// become Children.
func (s ProfileChangedEventSubscriber) OnEvent(_ context.Context, evt event.ProfileChangedEvent) error {
	if evt.Origin == s.instance {
		return nil
	}
	p, err := policy.ParseAgeProfile(evt.Profile)
	if err != nil {
		s.logger.WithError(err).Warn("unknown age profile in event, using children")
	}
	prev := s.holder.Set(p)
	s.logger.WithFields(logrus.Fields{
		"origin":   evt.Origin,
		"previous": prev,
		"profile":  p,
	}).Info("age profile changed")
	return nil
}
