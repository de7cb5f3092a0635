package textfilter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/matcher"
)

// FilterURL applies the navigation-level content checks: gambling domains
// for minors, the approved-site list for children, the path and query scored
// as text, and gambling words in the host name. Malformed URLs pass.
func (s *Scorer) FilterURL(raw string, profile policy.AgeProfile) policy.TextFilterResult {
	profile = profile.Normalize()
	u, ok := matcher.ParseURL(raw)
	if !ok {
		return policy.TextFilterResult{}
	}
	host := u.Hostname()

	if profile.IsMinor() && s.gamblingDomains.MatchHost(host) {
		return s.block(profile, string(policy.CategoryGambling),
			fmt.Sprintf("This website contains gambling or betting content that is not appropriate for %s.", profile))
	}
	if profile == policy.Children && !s.childSafeDomains.MatchHost(host) {
		return s.block(profile, string(policy.CategoryRestricted),
			"This website is not on the approved list for children.")
	}

	pathAndQuery := u.Path
	if u.RawQuery != "" {
		q := u.RawQuery
		if unescaped, err := url.QueryUnescape(q); err == nil {
			q = unescaped
		}
		pathAndQuery += "?" + q
	}
	if pathAndQuery != "" {
		if result := s.FilterText(pathAndQuery, profile); result.Blocked {
			return result
		}
	}

	if profile.IsMinor() {
		for _, kw := range s.gamblingKeywords {
			if strings.Contains(host, kw) {
				return s.block(profile, string(policy.CategoryGambling),
					fmt.Sprintf("This website may contain gambling or betting content that is not appropriate for %s.", profile))
			}
		}
	}
	return policy.TextFilterResult{}
}

func (s *Scorer) block(profile policy.AgeProfile, category, reason string) policy.TextFilterResult {
	exp := &policy.Explanation{Category: category, Score: 1, Reason: reason}
	if profile == policy.Children || category == string(policy.CategoryRestricted) {
		exp.SafeAlternatives = s.safeAlternatives()
	}
	return policy.TextFilterResult{Blocked: true, Category: category, Score: 1, Explanation: exp}
}

func (s *Scorer) safeAlternatives() []string {
	n := s.alternatives
	if n <= 0 || n > len(s.childSafeList) {
		n = len(s.childSafeList)
	}
	return append([]string(nil), s.childSafeList[:n]...)
}
