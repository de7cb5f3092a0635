package prometheus_test

import (
	"testing"
	"time"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	agelockprom "github.com/NeuralTrust/AgeLock/pkg/infra/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDecisionObserver(t *testing.T) {
	agelockprom.Initialize(agelockprom.DefaultMetricsConfig())
	obs := agelockprom.NewDecisionObserver()
	v := policy.Cancel("Known malicious site", policy.CategoryMalicious)

	counter := agelockprom.DecisionsTotal.WithLabelValues("malicious_domain", "cancel", "malicious", "children")
	before := testutil.ToFloat64(counter)
	obs.ObserveDecision("malicious_domain", v, policy.Children, 40*time.Microsecond)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))

	panics := agelockprom.RulePanics.WithLabelValues("boom")
	before = testutil.ToFloat64(panics)
	obs.ObserveRulePanic("boom")
	assert.Equal(t, before+1, testutil.ToFloat64(panics))
}

func TestObserveTextFilter(t *testing.T) {
	counter := agelockprom.TextFilterTotal.WithLabelValues("text", "true", "violence", "children")
	before := testutil.ToFloat64(counter)
	agelockprom.ObserveTextFilter("text", policy.TextFilterResult{Blocked: true, Category: "violence"}, policy.Children)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestGatherer(t *testing.T) {
	agelockprom.Initialize(agelockprom.DefaultMetricsConfig())
	agelockprom.RulesReloadTotal.WithLabelValues("success").Inc()
	families, err := agelockprom.Gatherer().Gather()
	assert.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "agelock_rules_reload_total")
}
