package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/NeuralTrust/AgeLock/pkg/matcher"
)

// Registry holds the compiled form of a RuleSet. All fields are read-only
// after Compile returns, so a Registry is safe for concurrent use.
type Registry struct {
	Name    string
	Version string

	InternalSchemes map[string]struct{}
	Infrastructure  *matcher.Set
	Whitelist       *matcher.Set

	SearchEngines       *matcher.Set
	SearchResources     *matcher.Set
	StrictModeResources *matcher.Set

	AdDomains      *matcher.Set
	AdPaths        []*regexp.Regexp
	AdFile         *regexp.Regexp
	AdQueryKeys    []string
	AdQueryTokens  map[string]struct{}
	TrackingParams []string
	AdSubdomains   map[string]struct{}

	Malicious *matcher.Set

	VideoExtensions []string
	VideoPaths      []*regexp.Regexp
	VideoDomains    *matcher.Set
	VideoParams     []string

	GamblingSafeKeywords []string
	GamblingSafeDomains  *matcher.Set
	GamblingTLDs         *matcher.Set
	GamblingDomains      *matcher.Set
	GamblingContexts     []string
	GamblingPatterns     []*regexp.Regexp

	Explicit          []CompiledGroup
	CategoryPatterns  []CompiledGroup
	BlockedCategories map[string]bool

	KidDomains    *matcher.Set
	KidImageHosts *matcher.Set
	KidPaths      []string
	KidKeywords   map[string]struct{}

	SuspiciousHosts []*regexp.Regexp
	SuspiciousPaths []*regexp.Regexp

	TrackingWords   map[string]struct{}
	ThirdPartyWords map[string]struct{}

	ContentFarms []*regexp.Regexp
	SocialMedia  *matcher.Set
	Gaming       *matcher.Set

	PlatformDomains *matcher.Set
	KidsDomains     *matcher.Set
	KidsRedirect    string

	source RuleSet
}

type CompiledGroup struct {
	Category string
	Toggle   string
	Pattern  *regexp.Regexp
}

// Compile builds a Registry. Every regular expression is compiled here and
// nowhere else.
func Compile(rs RuleSet) (*Registry, error) {
	c := compiler{}
	r := &Registry{
		Name:    rs.Name,
		Version: rs.Version,

		InternalSchemes: lowerSet(rs.InternalSchemes),
		Infrastructure:  matcher.NewSet(rs.Infrastructure...),
		Whitelist:       matcher.NewSet(rs.Whitelist...),

		SearchEngines:       matcher.NewSet(rs.Search.Engines...),
		SearchResources:     matcher.NewSet(rs.Search.Resources...),
		StrictModeResources: matcher.NewSet(rs.Search.StrictModeResources...),

		AdDomains:      matcher.NewSet(rs.Ads.Domains...),
		AdPaths:        c.all("ads.path_patterns", rs.Ads.PathPatterns),
		AdFile:         c.optional("ads.file_pattern", rs.Ads.FilePattern),
		AdQueryKeys:    lowerList(rs.Ads.QueryKeywords),
		AdQueryTokens:  lowerSet(rs.Ads.QueryTokens),
		TrackingParams: lowerList(rs.Ads.TrackingParams),
		AdSubdomains:   lowerSet(rs.Ads.Subdomains),

		Malicious: matcher.NewSet(rs.Malicious...),

		VideoExtensions: lowerList(rs.Video.Extensions),
		VideoPaths:      c.all("video.path_patterns", rs.Video.PathPatterns),
		VideoDomains:    matcher.NewSet(rs.Video.Domains...),
		VideoParams:     lowerList(rs.Video.Params),

		GamblingSafeKeywords: lowerList(rs.Gambling.SafeKeywords),
		GamblingSafeDomains:  matcher.NewSet(rs.Gambling.SafeDomains...),
		GamblingTLDs:         matcher.NewSet(rs.Gambling.TLDs...),
		GamblingDomains:      matcher.NewSet(rs.Gambling.Domains...),
		GamblingContexts:     lowerList(rs.Gambling.Contexts),
		GamblingPatterns:     c.all("gambling.patterns", rs.Gambling.Patterns),

		Explicit:          c.groups("explicit", rs.Explicit),
		CategoryPatterns:  c.groups("category_patterns", rs.CategoryPatterns),
		BlockedCategories: copyToggles(rs.BlockedCategories),

		KidDomains:    matcher.NewSet(rs.KidFriendly.Domains...),
		KidImageHosts: matcher.NewSet(rs.KidFriendly.ImageHosts...),
		KidPaths:      lowerList(rs.KidFriendly.Paths),
		KidKeywords:   lowerSet(rs.KidFriendly.Keywords),

		SuspiciousHosts: c.all("suspicious.host_patterns", rs.Suspicious.HostPatterns),
		SuspiciousPaths: c.all("suspicious.path_patterns", rs.Suspicious.PathPatterns),

		TrackingWords:   lowerSet(rs.Tracking.Words),
		ThirdPartyWords: lowerSet(rs.Tracking.ThirdPartyWords),

		ContentFarms: c.all("content_farms", rs.ContentFarms),
		SocialMedia:  matcher.NewSet(rs.SocialMedia...),
		Gaming:       matcher.NewSet(rs.Gaming...),

		PlatformDomains: matcher.NewSet(rs.RestrictedPlatform.Domains...),
		KidsDomains:     matcher.NewSet(rs.RestrictedPlatform.KidsDomains...),
		KidsRedirect:    strings.TrimSpace(rs.RestrictedPlatform.KidsRedirect),

		source: rs.Clone(),
	}
	if c.err != nil {
		return nil, c.err
	}
	if r.KidsRedirect != "" {
		if _, ok := matcher.ParseURL(r.KidsRedirect); !ok {
			return nil, fmt.Errorf("%w: restricted_platform.kids_redirect %q is not an absolute URL", ErrInvalidRuleSet, r.KidsRedirect)
		}
	}
	return r, nil
}

// MustCompile panics on error. Intended for tests and the built-in set.
func MustCompile(rs RuleSet) *Registry {
	r, err := Compile(rs)
	if err != nil {
		panic(err)
	}
	return r
}

// RuleSet returns the data the registry was compiled from.
func (r *Registry) RuleSet() RuleSet {
	return r.source.Clone()
}

// CategoryBlocked reports whether a blocked-category toggle is on. Unknown
// toggles are treated as on.
func (r *Registry) CategoryBlocked(toggle string) bool {
	if toggle == "" {
		return true
	}
	on, ok := r.BlockedCategories[strings.ToLower(toggle)]
	return !ok || on
}

// WithBlockedCategories returns a shallow copy with toggles overridden.
func (r *Registry) WithBlockedCategories(overrides map[string]bool) *Registry {
	if len(overrides) == 0 {
		return r
	}
	cp := *r
	cp.BlockedCategories = copyToggles(r.BlockedCategories)
	for k, v := range overrides {
		cp.BlockedCategories[strings.ToLower(k)] = v
	}
	return &cp
}

type compiler struct {
	err error
}

func (c *compiler) compile(field, expr string) *regexp.Regexp {
	if c.err != nil {
		return nil
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		c.err = fmt.Errorf("%w: %s: %v", ErrInvalidRuleSet, field, err)
		return nil
	}
	return re
}

func (c *compiler) optional(field, expr string) *regexp.Regexp {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	return c.compile(field, expr)
}

func (c *compiler) all(field string, exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for i, expr := range exprs {
		if re := c.compile(fmt.Sprintf("%s[%d]", field, i), expr); re != nil {
			out = append(out, re)
		}
	}
	return out
}

func (c *compiler) groups(field string, groups []PatternGroup) []CompiledGroup {
	out := make([]CompiledGroup, 0, len(groups))
	for i, g := range groups {
		if g.Category == "" {
			if c.err == nil {
				c.err = fmt.Errorf("%w: %s[%d]: missing category", ErrInvalidRuleSet, field, i)
			}
			continue
		}
		re := c.compile(fmt.Sprintf("%s[%d]", field, i), g.Pattern)
		if re == nil {
			continue
		}
		toggle := g.Toggle
		if toggle == "" {
			toggle = g.Category
		}
		out = append(out, CompiledGroup{Category: g.Category, Toggle: strings.ToLower(toggle), Pattern: re})
	}
	return out
}

func lowerList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func lowerSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, s := range lowerList(in) {
		out[s] = struct{}{}
	}
	return out
}

func copyToggles(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = v
	}
	return out
}
