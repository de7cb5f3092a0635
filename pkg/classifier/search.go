package classifier

import "github.com/NeuralTrust/AgeLock/pkg/matcher"

func (c *Classifier) IsSearchEngine(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.isSearchEngine(t)
}

func (c *Classifier) isSearchEngine(t *Target) bool {
	return c.reg.SearchEngines.MatchHost(t.Host)
}

// IsSearchEngineResource matches search CDNs, or any resource whose referrer
// is itself a search engine. Trust is one hop: a referrer that is only a
// search resource does not qualify.
func (c *Classifier) IsSearchEngineResource(raw, referrer string) bool {
	t, ok := Parse(raw)
	return ok && c.isSearchResource(t, referrer)
}

func (c *Classifier) isSearchResource(t *Target, referrer string) bool {
	if c.reg.SearchResources.MatchHost(t.Host) {
		return true
	}
	return c.referredBySearch(referrer)
}

func (c *Classifier) referredBySearch(referrer string) bool {
	if referrer == "" {
		return false
	}
	ref, ok := matcher.ParseURL(referrer)
	return ok && c.reg.SearchEngines.MatchHost(ref.Hostname())
}

// IsWhitelisted reports strict-mode approval: a whitelist entry matches host
// and path, or the URL belongs to a search engine or its CDNs.
func (c *Classifier) IsWhitelisted(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.isWhitelisted(t)
}

func (c *Classifier) isWhitelisted(t *Target) bool {
	return c.reg.Whitelist.Match(t.Host, t.Path) ||
		c.isSearchEngine(t) ||
		c.reg.StrictModeResources.MatchHost(t.Host)
}
