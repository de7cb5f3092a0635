package classifier

import "strings"

// GamblingTier is the confidence of a gambling match.
type GamblingTier int

const (
	NotGambling GamblingTier = iota
	// GamblingLow is a known gambling brand without gambling context in the
	// path or query. It is never blocked, since brand names overlap common
	// words.
	GamblingLow
	// GamblingHigh is a gambling TLD, a brand with gambling context, or
	// gambling context plus gambling phrasing.
	GamblingHigh
)

func (g GamblingTier) String() string {
	switch g {
	case GamblingLow:
		return "low"
	case GamblingHigh:
		return "high"
	}
	return "none"
}

// IsGamblingSite is true only for high-confidence matches.
func (c *Classifier) IsGamblingSite(raw string) bool {
	return c.Gambling(raw) == GamblingHigh
}

func (c *Classifier) Gambling(raw string) GamblingTier {
	t, ok := Parse(raw)
	if !ok {
		return NotGambling
	}
	return c.gambling(t)
}

func (c *Classifier) gambling(t *Target) GamblingTier {
	if c.gamblingSafe(t) {
		return NotGambling
	}
	if c.reg.GamblingTLDs.MatchHost(t.Host) {
		return GamblingHigh
	}
	context := c.gamblingContext(t)
	if c.reg.GamblingDomains.MatchHost(t.Host) {
		if context {
			return GamblingHigh
		}
		return GamblingLow
	}
	if !context {
		return NotGambling
	}
	for _, re := range c.reg.GamblingPatterns {
		if re.MatchString(t.Text) {
			return GamblingHigh
		}
	}
	return NotGambling
}

// gamblingSafe runs before every other gambling signal.
func (c *Classifier) gamblingSafe(t *Target) bool {
	if c.reg.GamblingSafeDomains.Match(t.Host, t.Path) {
		return true
	}
	for _, kw := range c.reg.GamblingSafeKeywords {
		if strings.Contains(t.Host, kw) || strings.Contains(t.Path, kw) {
			return true
		}
	}
	return false
}

// gamblingContext checks path fragments and, for entries written as
// "?name=", the presence of that query parameter anywhere in the query.
func (c *Classifier) gamblingContext(t *Target) bool {
	for _, ctx := range c.reg.GamblingContexts {
		if strings.HasPrefix(ctx, "?") {
			name := strings.TrimSuffix(strings.TrimPrefix(ctx, "?"), "=")
			if _, ok := t.Query[name]; ok {
				return true
			}
			continue
		}
		if strings.Contains(t.Path, ctx) {
			return true
		}
	}
	return false
}
