package profile

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	infraCache "github.com/NeuralTrust/AgeLock/pkg/infra/cache"
	"github.com/NeuralTrust/AgeLock/pkg/infra/cache/event"
	domainProfile "github.com/NeuralTrust/AgeLock/pkg/profile"
	"github.com/sirupsen/logrus"
)

type Switcher interface {
	Current() policy.AgeProfile
	Switch(ctx context.Context, p policy.AgeProfile) (policy.AgeProfile, error)
	Restore(ctx context.Context) policy.AgeProfile
}

type switcher struct {
	logger    *logrus.Logger
	instance  string
	holder    *domainProfile.Holder
	cache     infraCache.Client
	publisher infraCache.EventPublisher
}

// NewSwitcher persists the active profile in cache when one is configured;
// a nil cache keeps the profile in memory only.
func NewSwitcher(
	logger *logrus.Logger,
	instance string,
	holder *domainProfile.Holder,
	cache infraCache.Client,
	publisher infraCache.EventPublisher,
) Switcher {
	return &switcher{
		logger:    logger,
		instance:  instance,
		holder:    holder,
		cache:     cache,
		publisher: publisher,
	}
}

func (s *switcher) Current() policy.AgeProfile {
	return s.holder.Current()
}

// Switch applies p locally first so decisions change immediately, then
// persists and broadcasts it. Persistence errors are returned but the local
// switch stays.
func (s *switcher) Switch(ctx context.Context, p policy.AgeProfile) (policy.AgeProfile, error) {
	p = p.Normalize()
	prev := s.holder.Set(p)
	s.logger.WithFields(logrus.Fields{
		"previous": prev,
		"profile":  p,
	}).Info("age profile changed")

	if s.cache != nil {
		if err := s.cache.Set(ctx, infraCache.ProfileKey, string(p), 0); err != nil {
			return prev, fmt.Errorf("persist age profile: %w", err)
		}
	}
	if err := s.publisher.Publish(ctx, event.ProfileChangedEvent{Origin: s.instance, Profile: string(p)}); err != nil {
		return prev, fmt.Errorf("publish age profile: %w", err)
	}
	return prev, nil
}

// Restore loads the persisted profile. Missing or unreadable values leave the
// current profile untouched.
func (s *switcher) Restore(ctx context.Context) policy.AgeProfile {
	if s.cache == nil {
		return s.holder.Current()
	}
	raw, ok, err := s.cache.Get(ctx, infraCache.ProfileKey)
	if err != nil {
		s.logger.WithError(err).Warn("failed to read persisted age profile")
		return s.holder.Current()
	}
	if !ok {
		return s.holder.Current()
	}
	p, err := policy.ParseAgeProfile(raw)
	if err != nil {
		s.logger.WithError(err).Warn("persisted age profile is invalid, using children")
	}
	s.holder.Set(p)
	return p
}
