package prometheus

import (
	"sync"
	"time"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Decisions run in microseconds, HTTP requests in milliseconds.
	decisionBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 5000,
	}
	latencyBuckets = []float64{
		1, 5, 10,
		25, 50, 100,
		250, 500, 1000,
	}

	DecisionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "agelock_decisions_total",
			Help: "Total number of request decisions by rule and action",
		},
		[]string{"rule", "action", "category", "profile"},
	)

	DecisionLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agelock_decision_latency_us",
			Help:    "Decision latency in microseconds",
			Buckets: decisionBuckets,
		},
		[]string{"action"},
	)

	RulePanics = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "agelock_rule_panics_total",
			Help: "Rules that failed and were skipped",
		},
		[]string{"rule"},
	)

	TextFilterTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "agelock_text_filter_total",
			Help: "Text and URL content filter results",
		},
		[]string{"kind", "blocked", "category", "profile"},
	)

	RulesReloadTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "agelock_rules_reload_total",
			Help: "Rule reloads by result",
		},
		[]string{"result"},
	)

	RulesActive = promauto.With(registerer).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "agelock_supplementary_rules",
			Help: "Number of supplementary rules merged into the active registry",
		},
		[]string{"list"},
	)

	HTTPRequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "agelock_http_requests_total",
			Help: "Total number of API requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agelock_http_latency_ms",
			Help:    "API request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route"},
	)
)

type MetricsConfig struct {
	EnableDecisions bool // per-decision counters and latency
	EnableHTTP      bool // API request metrics
	EnableProfile   bool // profile label on decision counters
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableDecisions: true,
		EnableHTTP:      true,
		EnableProfile:   true,
	}
}

var (
	Config   = DefaultMetricsConfig()
	initOnce sync.Once
)

func Initialize(cfg MetricsConfig) {
	Config = cfg
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	})

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

// Gatherer exposes the private registry to the /metrics handler.
func Gatherer() prometheus.Gatherer {
	return registry
}

// DecisionObserver feeds engine decisions into the counters above.
type DecisionObserver struct{}

func NewDecisionObserver() *DecisionObserver {
	return &DecisionObserver{}
}

func (DecisionObserver) ObserveDecision(rule string, v policy.Verdict, profile policy.AgeProfile, elapsed time.Duration) {
	if !Config.EnableDecisions {
		return
	}
	p := string(profile)
	if !Config.EnableProfile {
		p = ""
	}
	DecisionsTotal.WithLabelValues(rule, string(v.Action), string(v.Category), p).Inc()
	DecisionLatency.WithLabelValues(string(v.Action)).Observe(float64(elapsed.Microseconds()))
}

func (DecisionObserver) ObserveRulePanic(rule string) {
	RulePanics.WithLabelValues(rule).Inc()
}

func ObserveTextFilter(kind string, r policy.TextFilterResult, profile policy.AgeProfile) {
	blocked := "false"
	if r.Blocked {
		blocked = "true"
	}
	TextFilterTotal.WithLabelValues(kind, blocked, r.Category, string(profile)).Inc()
}
