package subscriber

import (
	"context"

	infraCache "github.com/NeuralTrust/AgeLock/pkg/infra/cache"
	"github.com/NeuralTrust/AgeLock/pkg/infra/cache/event"
	"github.com/sirupsen/logrus"
)

type Reloader interface {
	Reload(ctx context.Context) error
}

type ReloadRulesEventSubscriber struct {
	logger   *logrus.Logger
	instance string
	reloader Reloader
}

func NewReloadRulesEventSubscriber(
	logger *logrus.Logger,
	instance string,
	reloader Reloader,
) infraCache.EventSubscriber[event.ReloadRulesEvent] {
	return &ReloadRulesEventSubscriber{
		logger:   logger,
		instance: instance,
		reloader: reloader,
	}
}

func (s ReloadRulesEventSubscriber) OnEvent(ctx context.Context, evt event.ReloadRulesEvent) error {
	if evt.Origin == s.instance {
		return nil
	}
	s.logger.WithFields(logrus.Fields{
		"origin": evt.Origin,
		"reason": evt.Reason,
	}).Debug("reloading rules on remote request")
	return s.reloader.Reload(ctx)
}
