package textfilter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/matcher"
	"github.com/NeuralTrust/AgeLock/pkg/rules"
)

var ErrInvalidThreshold = errors.New("invalid threshold")

// matchesForFullScore is the match count at which a category saturates.
const matchesForFullScore = 3

type term struct {
	word string
	re   *regexp.Regexp
}

type category struct {
	name  string
	terms []term
}

// Scorer scores free text against the category vocabulary. It is immutable
// and safe for concurrent use.
type Scorer struct {
	vocabulary  []category
	educational []string
	thresholds  Thresholds

	gamblingDomains  *matcher.Set
	childSafeDomains *matcher.Set
	childSafeList    []string
	gamblingKeywords []string
	alternatives     int
}

// New compiles the vocabulary and applies threshold overrides on top of the
// table in tr.
func New(tr rules.TextRules, overrides Thresholds) (*Scorer, error) {
	base, err := FromRules(tr.Thresholds)
	if err != nil {
		return nil, err
	}
	thresholds := base.Merge(overrides)
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	s := &Scorer{
		thresholds:       thresholds,
		gamblingDomains:  matcher.NewSet(tr.URLFilter.GamblingDomains...),
		childSafeDomains: matcher.NewSet(tr.URLFilter.ChildSafeDomains...),
		childSafeList:    append([]string(nil), tr.URLFilter.ChildSafeDomains...),
		alternatives:     tr.URLFilter.Alternatives,
	}
	for _, kw := range tr.URLFilter.GamblingHostKeywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			s.gamblingKeywords = append(s.gamblingKeywords, kw)
		}
	}
	for _, e := range tr.Educational {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			s.educational = append(s.educational, e)
		}
	}
	for _, ct := range tr.Vocabulary {
		cat := category{name: ct.Category}
		for _, w := range ct.Terms {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(w) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("compile term %q: %w", w, err)
			}
			cat.terms = append(cat.terms, term{word: w, re: re})
		}
		s.vocabulary = append(s.vocabulary, cat)
	}
	return s, nil
}

func (s *Scorer) Thresholds() Thresholds {
	return s.thresholds.Clone()
}

// FilterText scores text for profile. Unknown profiles are scored as
// children.
func (s *Scorer) FilterText(text string, profile policy.AgeProfile) policy.TextFilterResult {
	profile = profile.Normalize()
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" || s.isEducational(normalized) {
		return policy.TextFilterResult{}
	}

	var (
		best      string
		bestScore float64
		bestTerms []string
	)
	// Strict comparison keeps the earliest category on ties.
	for _, cat := range s.vocabulary {
		matched := cat.match(normalized)
		score := scoreFor(len(matched))
		if score > bestScore {
			best, bestScore, bestTerms = cat.name, score, matched
		}
	}
	if best == "" {
		return policy.TextFilterResult{}
	}

	result := policy.TextFilterResult{Category: best, Score: bestScore}
	if bestScore > s.thresholds.Lookup(profile, best) {
		result.Blocked = true
		result.Explanation = &policy.Explanation{
			Category:      best,
			Score:         bestScore,
			Reason:        fmt.Sprintf("This content contains terms related to %s that are not appropriate for %s.", best, profile),
			MatchingTerms: bestTerms,
		}
	}
	return result
}

// isEducational matches a whole-word educational term at the start, the end
// or inside the text.
func (s *Scorer) isEducational(text string) bool {
	for _, e := range s.educational {
		if text == e ||
			strings.HasPrefix(text, e+" ") ||
			strings.HasSuffix(text, " "+e) ||
			strings.Contains(text, " "+e+" ") {
			return true
		}
	}
	return false
}

func (c category) match(text string) []string {
	var out []string
	for _, t := range c.terms {
		if t.re.MatchString(text) {
			out = append(out, t.word)
		}
	}
	return out
}

func scoreFor(matches int) float64 {
	if matches == 0 {
		return 0
	}
	score := float64(matches) / matchesForFullScore
	if score > 1 {
		return 1
	}
	return score
}
