package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var ErrInvalidRuleSet = errors.New("invalid rule set")

//go:embed defaults.yaml
var defaultsYAML []byte

// RuleSet is the data form of every list and pattern the classifiers use.
// It is immutable once compiled into a Registry.
type RuleSet struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`

	InternalSchemes []string `yaml:"internal_schemes" json:"internal_schemes"`
	Infrastructure  []string `yaml:"infrastructure" json:"infrastructure"`
	Whitelist       []string `yaml:"whitelist" json:"whitelist"`

	Search    SearchRules   `yaml:"search" json:"search"`
	Ads       AdRules       `yaml:"ads" json:"ads"`
	Malicious []string      `yaml:"malicious" json:"malicious"`
	Video     VideoRules    `yaml:"video" json:"video"`
	Gambling  GamblingRules `yaml:"gambling" json:"gambling"`

	Explicit          []PatternGroup  `yaml:"explicit" json:"explicit"`
	CategoryPatterns  []PatternGroup  `yaml:"category_patterns" json:"category_patterns"`
	BlockedCategories map[string]bool `yaml:"blocked_categories" json:"blocked_categories"`

	KidFriendly        KidFriendlyRules        `yaml:"kid_friendly" json:"kid_friendly"`
	Suspicious         SuspiciousRules         `yaml:"suspicious" json:"suspicious"`
	Tracking           TrackingRules           `yaml:"tracking" json:"tracking"`
	ContentFarms       []string                `yaml:"content_farms" json:"content_farms"`
	SocialMedia        []string                `yaml:"social_media" json:"social_media"`
	Gaming             []string                `yaml:"gaming" json:"gaming"`
	RestrictedPlatform RestrictedPlatformRules `yaml:"restricted_platform" json:"restricted_platform"`

	SafeSearch []SafeSearchEngine `yaml:"safesearch" json:"safesearch"`
	Text       TextRules          `yaml:"text" json:"text"`
}

type SearchRules struct {
	Engines             []string `yaml:"engines" json:"engines"`
	Resources           []string `yaml:"resources" json:"resources"`
	StrictModeResources []string `yaml:"strict_mode_resources" json:"strict_mode_resources"`
}

type AdRules struct {
	Domains        []string `yaml:"domains" json:"domains"`
	PathPatterns   []string `yaml:"path_patterns" json:"path_patterns"`
	FilePattern    string   `yaml:"file_pattern" json:"file_pattern"`
	QueryKeywords  []string `yaml:"query_keywords" json:"query_keywords"`
	QueryTokens    []string `yaml:"query_tokens" json:"query_tokens"`
	TrackingParams []string `yaml:"tracking_params" json:"tracking_params"`
	Subdomains     []string `yaml:"subdomains" json:"subdomains"`
}

type VideoRules struct {
	Extensions   []string `yaml:"extensions" json:"extensions"`
	PathPatterns []string `yaml:"path_patterns" json:"path_patterns"`
	Domains      []string `yaml:"domains" json:"domains"`
	Params       []string `yaml:"params" json:"params"`
}

type GamblingRules struct {
	SafeKeywords []string `yaml:"safe_keywords" json:"safe_keywords"`
	SafeDomains  []string `yaml:"safe_domains" json:"safe_domains"`
	TLDs         []string `yaml:"tlds" json:"tlds"`
	Domains      []string `yaml:"domains" json:"domains"`
	Contexts     []string `yaml:"contexts" json:"contexts"`
	Patterns     []string `yaml:"patterns" json:"patterns"`
}

// PatternGroup is one regular expression tagged with the category it reports
// and the blocked-category toggle that enables it.
type PatternGroup struct {
	Category string `yaml:"category" json:"category"`
	Toggle   string `yaml:"toggle,omitempty" json:"toggle,omitempty"`
	Pattern  string `yaml:"pattern" json:"pattern"`
}

type KidFriendlyRules struct {
	Domains    []string `yaml:"domains" json:"domains"`
	ImageHosts []string `yaml:"image_hosts" json:"image_hosts"`
	Paths      []string `yaml:"paths" json:"paths"`
	Keywords   []string `yaml:"keywords" json:"keywords"`
}

type SuspiciousRules struct {
	HostPatterns []string `yaml:"host_patterns" json:"host_patterns"`
	PathPatterns []string `yaml:"path_patterns" json:"path_patterns"`
}

type TrackingRules struct {
	Words           []string `yaml:"words" json:"words"`
	ThirdPartyWords []string `yaml:"third_party_words" json:"third_party_words"`
}

type RestrictedPlatformRules struct {
	Domains      []string `yaml:"domains" json:"domains"`
	KidsDomains  []string `yaml:"kids_domains" json:"kids_domains"`
	KidsRedirect string   `yaml:"kids_redirect" json:"kids_redirect"`
}

type SafeSearchEngine struct {
	Name        string            `yaml:"name" json:"name"`
	Hosts       []string          `yaml:"hosts" json:"hosts"`
	Param       string            `yaml:"param" json:"param"`
	Value       string            `yaml:"value" json:"value"`
	Extra       map[string]string `yaml:"extra,omitempty" json:"extra,omitempty"`
	ImageFilter string            `yaml:"image_filter,omitempty" json:"image_filter,omitempty"`
}

type TextRules struct {
	Vocabulary  []CategoryTerms               `yaml:"vocabulary" json:"vocabulary"`
	Educational []string                      `yaml:"educational" json:"educational"`
	Thresholds  map[string]map[string]float64 `yaml:"thresholds" json:"thresholds"`
	URLFilter   URLFilterRules                `yaml:"url_filter" json:"url_filter"`
}

// CategoryTerms keeps vocabulary order, which decides score ties.
type CategoryTerms struct {
	Category string   `yaml:"category" json:"category"`
	Terms    []string `yaml:"terms" json:"terms"`
}

type URLFilterRules struct {
	GamblingDomains      []string `yaml:"gambling_domains" json:"gambling_domains"`
	ChildSafeDomains     []string `yaml:"child_safe_domains" json:"child_safe_domains"`
	GamblingHostKeywords []string `yaml:"gambling_host_keywords" json:"gambling_host_keywords"`
	Alternatives         int      `yaml:"alternatives" json:"alternatives"`
}

var (
	defaultOnce sync.Once
	defaultSet  RuleSet
	defaultErr  error
)

// Default returns the embedded rule pack. When the pack cannot be decoded the
// built-in minimal set is returned together with the decode error.
func Default() (RuleSet, error) {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = Parse(defaultsYAML)
	})
	if defaultErr != nil {
		return Minimal(), defaultErr
	}
	return defaultSet.Clone(), nil
}

// Parse decodes a YAML rule pack and checks that it compiles.
func Parse(data []byte) (RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}
	if err := rs.Validate(); err != nil {
		return RuleSet{}, err
	}
	return rs, nil
}

// Validate compiles every pattern once and reports the first failure.
func (rs RuleSet) Validate() error {
	if strings.TrimSpace(rs.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRuleSet)
	}
	_, err := Compile(rs)
	return err
}

// Merge returns a copy of rs with the supplementary ad and malicious domains
// added. Duplicates are removed when the registry is compiled.
func (rs RuleSet) Merge(adDomains, maliciousDomains []string) RuleSet {
	out := rs.Clone()
	out.Ads.Domains = union(out.Ads.Domains, adDomains)
	out.Malicious = union(out.Malicious, maliciousDomains)
	return out
}

// Clone copies the list fields that Merge and config overrides modify.
func (rs RuleSet) Clone() RuleSet {
	out := rs
	out.Ads.Domains = append([]string(nil), rs.Ads.Domains...)
	out.Malicious = append([]string(nil), rs.Malicious...)
	out.BlockedCategories = make(map[string]bool, len(rs.BlockedCategories))
	for k, v := range rs.BlockedCategories {
		out.BlockedCategories[k] = v
	}
	out.Text.Thresholds = make(map[string]map[string]float64, len(rs.Text.Thresholds))
	for profile, table := range rs.Text.Thresholds {
		row := make(map[string]float64, len(table))
		for category, v := range table {
			row[category] = v
		}
		out.Text.Thresholds[profile] = row
	}
	return out
}

func union(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, d := range list {
			key := strings.ToLower(strings.TrimSpace(d))
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}
