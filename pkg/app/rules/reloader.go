package rules

import (
	"context"
	"fmt"

	"github.com/NeuralTrust/AgeLock/pkg/infra/prometheus"
	"github.com/NeuralTrust/AgeLock/pkg/infra/rulestore"
	domainRules "github.com/NeuralTrust/AgeLock/pkg/rules"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Loader receives a freshly compiled registry. *engine.Engine satisfies it.
type Loader interface {
	Load(reg *domainRules.Registry) error
}

type Reloader interface {
	Reload(ctx context.Context) error
}

type reloader struct {
	logger *logrus.Logger
	base   domainRules.RuleSet
	stores []rulestore.Store
	loader Loader
	group  singleflight.Group
}

// NewReloader merges the supplementary lists of every store into base on
// each Reload. Stores that fail are skipped.
func NewReloader(
	logger *logrus.Logger,
	base domainRules.RuleSet,
	loader Loader,
	stores ...rulestore.Store,
) Reloader {
	return &reloader{
		logger: logger,
		base:   base.Clone(),
		stores: stores,
		loader: loader,
	}
}

// Reload is deduplicated: concurrent callers share one in-flight reload.
func (r *reloader) Reload(ctx context.Context) error {
	_, err, _ := r.group.Do("reload", func() (interface{}, error) {
		return nil, r.reload(ctx)
	})
	return err
}

func (r *reloader) reload(ctx context.Context) error {
	sup := r.supplement(ctx)
	rs := r.base.Merge(sup.AdDomains, sup.MaliciousDomains)

	reg, err := domainRules.Compile(rs)
	if err != nil {
		prometheus.RulesReloadTotal.WithLabelValues("invalid").Inc()
		r.logger.WithError(err).Error("merged rule set rejected, keeping current rules")
		return fmt.Errorf("compile merged rules: %w", err)
	}
	if err := r.loader.Load(reg); err != nil {
		prometheus.RulesReloadTotal.WithLabelValues("failed").Inc()
		r.logger.WithError(err).Error("failed to load merged rules, keeping current rules")
		return err
	}

	prometheus.RulesReloadTotal.WithLabelValues("success").Inc()
	prometheus.RulesActive.WithLabelValues(string(rulestore.AdList)).Set(float64(len(sup.AdDomains)))
	prometheus.RulesActive.WithLabelValues(string(rulestore.MaliciousList)).Set(float64(len(sup.MaliciousDomains)))
	r.logger.WithFields(logrus.Fields{
		"ad_domains":        len(sup.AdDomains),
		"malicious_domains": len(sup.MaliciousDomains),
	}).Info("supplementary rules merged")
	return nil
}

func (r *reloader) supplement(ctx context.Context) rulestore.Supplement {
	var sup rulestore.Supplement
	for _, s := range r.stores {
		loaded, err := s.Load(ctx)
		if err != nil {
			r.logger.WithError(err).Warn("supplementary rule store partially unreadable, skipping bad lists")
		}
		sup = sup.Union(loaded)
	}
	return sup
}
