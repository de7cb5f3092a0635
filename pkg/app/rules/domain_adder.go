package rules

import (
	"context"

	infraCache "github.com/NeuralTrust/AgeLock/pkg/infra/cache"
	"github.com/NeuralTrust/AgeLock/pkg/infra/cache/event"
	"github.com/NeuralTrust/AgeLock/pkg/infra/rulestore"
	"github.com/sirupsen/logrus"
)

type DomainAdder interface {
	Add(ctx context.Context, list rulestore.List, domain string) (bool, error)
}

type domainAdder struct {
	logger    *logrus.Logger
	instance  string
	store     rulestore.Store
	reloader  Reloader
	publisher infraCache.EventPublisher
}

// NewDomainAdder persists user additions to store, reloads the local engine
// and tells other instances to reload too.
func NewDomainAdder(
	logger *logrus.Logger,
	instance string,
	store rulestore.Store,
	reloader Reloader,
	publisher infraCache.EventPublisher,
) DomainAdder {
	return &domainAdder{
		logger:    logger,
		instance:  instance,
		store:     store,
		reloader:  reloader,
		publisher: publisher,
	}
}

func (a *domainAdder) Add(ctx context.Context, list rulestore.List, domain string) (bool, error) {
	added, err := a.store.Add(ctx, list, domain)
	if err != nil || !added {
		return false, err
	}
	if err := a.reloader.Reload(ctx); err != nil {
		return true, err
	}
	ev := event.ReloadRulesEvent{Origin: a.instance, Reason: string(list) + "_domain_added"}
	if err := a.publisher.Publish(ctx, ev); err != nil {
		a.logger.WithError(err).Warn("failed to publish rules reload event")
	}
	return true, nil
}
