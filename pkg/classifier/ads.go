package classifier

import (
	"strings"

	"github.com/NeuralTrust/AgeLock/pkg/matcher"
)

// IsAdOrTracker combines the ad-network list, ad path and file patterns, ad
// subdomains, tracking parameters and ad-keyword parameter names.
func (c *Classifier) IsAdOrTracker(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.isAdOrTracker(t)
}

func (c *Classifier) isAdOrTracker(t *Target) bool {
	if c.isVideo(t) {
		return false
	}
	if c.reg.AdDomains.Match(t.Host, t.Path) {
		return true
	}
	return c.hasAdSignal(t)
}

// hasAdSignal is the pattern part of isAdOrTracker without the domain list.
func (c *Classifier) hasAdSignal(t *Target) bool {
	for _, re := range c.reg.AdPaths {
		if re.MatchString(t.Path) {
			return true
		}
	}
	if c.reg.AdFile != nil && c.reg.AdFile.MatchString(t.Path) {
		return true
	}
	if labels := t.Labels(); len(labels) > 2 {
		if _, ok := c.reg.AdSubdomains[labels[0]]; ok {
			return true
		}
	}
	for key := range t.Query {
		if c.isTrackingParam(key) || c.isAdParam(key) {
			return true
		}
	}
	return false
}

// isTrackingParam handles both prefix entries (utm_) and exact entries
// written with a trailing "=" (gclid=).
func (c *Classifier) isTrackingParam(key string) bool {
	for _, p := range c.reg.TrackingParams {
		if name, exact := strings.CutSuffix(p, "="); exact {
			if key == name {
				return true
			}
			continue
		}
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func (c *Classifier) isAdParam(key string) bool {
	for _, kw := range c.reg.AdQueryKeys {
		if strings.Contains(key, kw) {
			return true
		}
	}
	for _, tok := range strings.FieldsFunc(key, isParamSeparator) {
		if _, ok := c.reg.AdQueryTokens[tok]; ok {
			return true
		}
	}
	return false
}

func isParamSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || r == '[' || r == ']'
}

// IsTrackingURL flags hosts or paths built from tracking vocabulary. Video
// URLs and kid-friendly domains are exempt.
func (c *Classifier) IsTrackingURL(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.isTracking(t, false)
}

func (c *Classifier) isTracking(t *Target, broad bool) bool {
	if c.isVideo(t) || c.reg.KidDomains.MatchHost(t.Host) {
		return false
	}
	for _, tok := range strings.Fields(normalizeText(t.Host + " " + t.Path)) {
		if _, ok := c.reg.TrackingWords[tok]; ok {
			return true
		}
		if !broad {
			continue
		}
		if _, ok := c.reg.ThirdPartyWords[tok]; ok {
			return true
		}
	}
	return false
}

// IsThirdPartyTracker requires a cross-origin referrer: the referrer host
// differs from the request host and is not a parent domain of it.
func (c *Classifier) IsThirdPartyTracker(raw, referrer string) bool {
	t, ok := Parse(raw)
	return ok && c.isThirdPartyTracker(t, referrer)
}

func (c *Classifier) isThirdPartyTracker(t *Target, referrer string) bool {
	if referrer == "" || c.isVideo(t) {
		return false
	}
	ref, ok := matcher.ParseURL(referrer)
	if !ok {
		return false
	}
	refHost := ref.Hostname()
	if refHost == t.Host || strings.HasSuffix(t.Host, "."+refHost) {
		return false
	}
	return c.isTracking(t, true) || c.isAdOrTracker(t)
}
