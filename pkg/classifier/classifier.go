// Package classifier holds the heuristic predicates the policy engine
// composes. Every predicate is total: input that cannot be parsed yields the
// predicate's safe value, which is false for all blocking predicates.
package classifier

import (
	"net"
	"net/url"
	"path"
	"strings"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/matcher"
	"github.com/NeuralTrust/AgeLock/pkg/rules"
)

type Classifier struct {
	reg *rules.Registry
}

func New(reg *rules.Registry) *Classifier {
	if reg == nil {
		reg = rules.MustCompile(rules.Minimal())
	}
	return &Classifier{reg: reg}
}

func (c *Classifier) Registry() *rules.Registry {
	return c.reg
}

// Target is a request URL parsed once and shared by every predicate.
type Target struct {
	Raw   string
	URL   *url.URL
	Host  string
	Path  string
	Query url.Values
	// RawQuery is lowercased and unescaped where possible.
	RawQuery string
	// Text is host, path and query lowercased with every run of
	// non-alphanumerics collapsed to one space.
	Text string
}

// Parse returns false for input without a scheme and host.
func Parse(raw string) (*Target, bool) {
	u, ok := matcher.ParseURL(raw)
	if !ok {
		return nil, false
	}
	p := strings.ToLower(u.Path)
	if p == "" {
		p = "/"
	}
	rq := strings.ToLower(u.RawQuery)
	if unescaped, err := url.QueryUnescape(rq); err == nil {
		rq = unescaped
	}
	t := &Target{
		Raw:      raw,
		URL:      u,
		Host:     u.Hostname(),
		Path:     p,
		Query:    lowerKeys(u.Query()),
		RawQuery: rq,
	}
	t.Text = normalizeText(t.Host + " " + t.Path + " " + t.RawQuery)
	return t, true
}

// Labels splits the host on dots.
func (t *Target) Labels() []string {
	return strings.Split(t.Host, ".")
}

// Ext is the lowercase extension of the last path segment.
func (t *Target) Ext() string {
	return path.Ext(t.Path)
}

// HostPath is host followed by path, the form whitelist entries are
// written in.
func (t *Target) HostPath() string {
	return t.Host + t.Path
}

// Scheme returns the lowercase scheme of raw without requiring a host, so it
// works for data: and blob: URLs.
func Scheme(raw string) string {
	raw = strings.TrimSpace(raw)
	i := strings.IndexByte(raw, ':')
	if i <= 0 {
		return ""
	}
	scheme := strings.ToLower(raw[:i])
	for _, r := range scheme {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return ""
		}
	}
	return scheme
}

// IsInternalScheme matches data, blob, browser and extension URLs.
func (c *Classifier) IsInternalScheme(raw string) bool {
	_, ok := c.reg.InternalSchemes[Scheme(raw)]
	return ok
}

func (c *Classifier) IsInfrastructure(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.isInfrastructure(t)
}

func (c *Classifier) isInfrastructure(t *Target) bool {
	return c.reg.Infrastructure.MatchHost(t.Host)
}

func (c *Classifier) IsMaliciousDomain(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.isMalicious(t)
}

func (c *Classifier) isMalicious(t *Target) bool {
	return c.reg.Malicious.Match(t.Host, t.Path)
}

func (c *Classifier) IsSocialMedia(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.reg.SocialMedia.MatchHost(t.Host)
}

func (c *Classifier) IsGamingSite(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.reg.Gaming.MatchHost(t.Host)
}

// IsContentFarm matches low-quality content hosts. Video URLs are exempt.
func (c *Classifier) IsContentFarm(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.isContentFarm(t)
}

func (c *Classifier) isContentFarm(t *Target) bool {
	if c.isVideo(t) {
		return false
	}
	for _, re := range c.reg.ContentFarms {
		if re.MatchString(t.Host) {
			return true
		}
	}
	return false
}

// IsRestrictedPlatform reports hosts that children are redirected away from.
func (c *Classifier) IsRestrictedPlatform(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.isRestrictedPlatform(t)
}

func (c *Classifier) isRestrictedPlatform(t *Target) bool {
	return !c.isKidsPlatform(t) && c.reg.PlatformDomains.MatchHost(t.Host)
}

// IsKidsPlatform reports the kids-safe equivalent of the restricted platform.
func (c *Classifier) IsKidsPlatform(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.isKidsPlatform(t)
}

func (c *Classifier) isKidsPlatform(t *Target) bool {
	return c.reg.KidsDomains.MatchHost(t.Host)
}

// IsSuspiciousURL flags literal IP hosts, long hex-prefixed hosts and
// phishing-style paths.
func (c *Classifier) IsSuspiciousURL(raw string) bool {
	t, ok := Parse(raw)
	return ok && c.isSuspicious(t)
}

func (c *Classifier) isSuspicious(t *Target) bool {
	// Literal IPv4 and IPv6 hosts.
	if net.ParseIP(t.Host) != nil {
		return true
	}
	for _, re := range c.reg.SuspiciousHosts {
		if re.MatchString(t.Host) {
			return true
		}
	}
	for _, re := range c.reg.SuspiciousPaths {
		if re.MatchString(t.Path) {
			return true
		}
	}
	return false
}

// IsKidFriendlyResource is an allow-bias signal only.
func (c *Classifier) IsKidFriendlyResource(raw string, rt policy.ResourceType) bool {
	t, ok := Parse(raw)
	return ok && c.isKidFriendly(t, rt)
}

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {}, ".svg": {}, ".bmp": {}, ".ico": {},
}

func (c *Classifier) isKidFriendly(t *Target, rt policy.ResourceType) bool {
	if c.reg.KidDomains.Match(t.Host, t.Path) {
		return true
	}
	_, imageExt := imageExtensions[t.Ext()]
	if (rt == policy.Image || imageExt) && c.reg.KidImageHosts.MatchHost(t.Host) {
		return true
	}
	for _, p := range c.reg.KidPaths {
		if strings.Contains(t.Path, p) {
			return true
		}
	}
	return hasToken(t.Text, c.reg.KidKeywords)
}

func lowerKeys(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		key := strings.ToLower(k)
		for _, val := range vals {
			out[key] = append(out[key], strings.ToLower(val))
		}
	}
	return out
}

func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := true
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	return strings.TrimSpace(b.String())
}

func hasToken(text string, words map[string]struct{}) bool {
	if len(words) == 0 {
		return false
	}
	for _, tok := range strings.Fields(text) {
		if _, ok := words[tok]; ok {
			return true
		}
	}
	return false
}
