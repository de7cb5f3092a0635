package classifier

import "github.com/NeuralTrust/AgeLock/pkg/rules"

// IsExplicitURL matches the URL's host, path and query against the explicit
// groups and then the category patterns. Groups whose blocked-category
// toggle is off are skipped. The returned category is empty on no match.
func (c *Classifier) IsExplicitURL(raw string) (string, bool) {
	t, ok := Parse(raw)
	if !ok {
		return "", false
	}
	return c.explicitURL(t)
}

func (c *Classifier) explicitURL(t *Target) (string, bool) {
	if category, ok := c.matchGroups(c.reg.Explicit, t.Text); ok {
		return category, true
	}
	return c.matchGroups(c.reg.CategoryPatterns, t.Text)
}

// HasExplicitContent applies the explicit groups to free text.
func (c *Classifier) HasExplicitContent(text string) (string, bool) {
	return c.matchGroups(c.reg.Explicit, normalizeText(text))
}

func (c *Classifier) matchGroups(groups []rules.CompiledGroup, text string) (string, bool) {
	if text == "" {
		return "", false
	}
	for _, g := range groups {
		if !c.reg.CategoryBlocked(g.Toggle) {
			continue
		}
		if g.Pattern.MatchString(text) {
			return g.Category, true
		}
	}
	return "", false
}
