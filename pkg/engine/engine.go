package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/NeuralTrust/AgeLock/pkg/classifier"
	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/rules"
	"github.com/NeuralTrust/AgeLock/pkg/safesearch"
	"github.com/NeuralTrust/AgeLock/pkg/textfilter"
	"github.com/sirupsen/logrus"
)

const defaultRule = "default"

// Options are the parental-control switches that shape a decision.
type Options struct {
	StrictMode         bool
	SafeSearch         bool
	ContentFiltering   bool
	SocialMediaEnabled bool
	GamingEnabled      bool
	RestrictedPlatform bool
	BlockedCategories  map[string]bool
	Thresholds         textfilter.Thresholds
}

// DefaultOptions mirrors the out-of-the-box browser configuration.
func DefaultOptions() Options {
	return Options{
		SafeSearch:         true,
		ContentFiltering:   true,
		GamingEnabled:      true,
		RestrictedPlatform: true,
	}
}

// Observer receives one call per decision. Implementations must be safe for
// concurrent use.
type Observer interface {
	ObserveDecision(rule string, verdict policy.Verdict, profile policy.AgeProfile, elapsed time.Duration)
	ObserveRulePanic(rule string)
}

type state struct {
	registry   *rules.Registry
	classifier *classifier.Classifier
	rewriter   *safesearch.Rewriter
	scorer     *textfilter.Scorer
	opts       Options
}

// Engine evaluates an ordered list of named rules, first match wins. All
// rule tables live in one immutable snapshot that Load swaps atomically, so
// Decide takes no locks and performs no I/O.
type Engine struct {
	logger   *logrus.Logger
	observer Observer
	rules    []Rule
	state    atomic.Pointer[state]
}

type Option func(*Engine)

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observer = o
	}
}

// New builds an engine over reg. A nil registry falls back to the built-in
// minimal rule set. An error is returned only for invalid options.
func New(logger *logrus.Logger, reg *rules.Registry, opts Options, options ...Option) (*Engine, error) {
	e := &Engine{
		logger: logger,
		rules:  Precedence(),
	}
	for _, o := range options {
		o(e)
	}
	if reg == nil {
		logger.Warn("no rule registry supplied, using built-in minimal rules")
		reg = rules.MustCompile(rules.Minimal())
	}
	st, err := buildState(reg, opts)
	if err != nil {
		return nil, err
	}
	e.state.Store(st)
	return e, nil
}

func buildState(reg *rules.Registry, opts Options) (*state, error) {
	reg = reg.WithBlockedCategories(opts.BlockedCategories)
	rs := reg.RuleSet()
	scorer, err := textfilter.New(rs.Text, opts.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("build text scorer: %w", err)
	}
	return &state{
		registry:   reg,
		classifier: classifier.New(reg),
		rewriter:   safesearch.New(rs.SafeSearch, opts.SafeSearch),
		scorer:     scorer,
		opts:       opts,
	}, nil
}

// Load swaps in a new registry. On error the current snapshot stays active.
func (e *Engine) Load(reg *rules.Registry) error {
	if reg == nil {
		return fmt.Errorf("%w: nil registry", rules.ErrInvalidRuleSet)
	}
	err := e.update(func(cur *state) (*state, error) {
		return buildState(reg, cur.opts)
	})
	if err != nil {
		return err
	}
	e.logger.WithFields(logrus.Fields{
		"rules":   reg.Name,
		"version": reg.Version,
	}).Info("rule registry loaded")
	return nil
}

// update replaces the snapshot with build(current). It retries when another
// writer swapped the snapshot in between.
func (e *Engine) update(build func(cur *state) (*state, error)) error {
	for {
		cur := e.state.Load()
		next, err := build(cur)
		if err != nil {
			return err
		}
		if e.state.CompareAndSwap(cur, next) {
			return nil
		}
	}
}

func (e *Engine) Options() Options {
	return e.state.Load().opts
}

func (e *Engine) Registry() *rules.Registry {
	return e.state.Load().registry
}

func (e *Engine) Classifier() *classifier.Classifier {
	return e.state.Load().classifier
}

// Decide returns the verdict of the first matching rule. It never fails: a
// rule that panics is logged and skipped.
func (e *Engine) Decide(req policy.RequestDescriptor, profile policy.AgeProfile) policy.Verdict {
	start := time.Now()
	st := e.state.Load()
	ev := newEvaluation(req, profile.Normalize(), st)
	if ev.view == nil && !st.classifier.IsInternalScheme(req.URL) {
		e.logger.WithField("url", req.URL).Debug("unparseable request url")
	}

	verdict := policy.Allow("no rule matched")
	verdict.Rule = defaultRule
	for _, r := range e.rules {
		if v, ok := e.run(r, ev); ok {
			verdict = v
			verdict.Rule = r.Name
			break
		}
	}
	e.record(req, ev.profile, verdict, time.Since(start))
	return verdict
}

func (e *Engine) run(r Rule, ev *evaluation) (v policy.Verdict, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.WithFields(logrus.Fields{
				"rule":  r.Name,
				"url":   ev.req.URL,
				"panic": rec,
			}).Error("policy rule failed, skipping")
			if e.observer != nil {
				e.observer.ObserveRulePanic(r.Name)
			}
			v, ok = policy.Verdict{}, false
		}
	}()
	return r.Eval(ev)
}

func (e *Engine) record(req policy.RequestDescriptor, profile policy.AgeProfile, v policy.Verdict, elapsed time.Duration) {
	if e.observer != nil {
		e.observer.ObserveDecision(v.Rule, v, profile, elapsed)
	}
	entry := e.logger.WithFields(logrus.Fields{
		"url":           req.URL,
		"rule":          v.Rule,
		"category":      v.Category,
		"profile":       profile,
		"resource_type": req.ResourceType,
	})
	switch v.Action {
	case policy.ActionAllow:
		entry.Debug(v.Reason)
	case policy.ActionRedirect:
		entry.WithField("redirect_url", v.RedirectURL).Info(v.Reason)
	default:
		entry.Info(v.Reason)
	}
}

// FilterText scores free text with the active vocabulary and thresholds.
func (e *Engine) FilterText(text string, profile policy.AgeProfile) policy.TextFilterResult {
	return e.state.Load().scorer.FilterText(text, profile)
}

func (e *Engine) FilterURL(raw string, profile policy.AgeProfile) policy.TextFilterResult {
	return e.state.Load().scorer.FilterURL(raw, profile)
}

// EnforceSafeSearch rewrites raw with the active SafeSearch table.
func (e *Engine) EnforceSafeSearch(raw string) string {
	return e.state.Load().rewriter.Enforce(raw)
}
