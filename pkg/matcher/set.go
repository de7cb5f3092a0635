package matcher

import (
	"sort"
	"strings"
)

// Set is an immutable collection of compiled domain patterns. Domain
// patterns without a path are indexed by suffix so lookups cost one map
// probe per host label.
type Set struct {
	domains  map[string]struct{}
	others   []Pattern
	patterns []string
}

// NewSet compiles patterns, dropping duplicates and unusable entries.
func NewSet(patterns ...string) *Set {
	s := &Set{domains: make(map[string]struct{})}
	seen := make(map[string]struct{}, len(patterns))
	for _, raw := range patterns {
		p, ok := Compile(raw)
		if !ok {
			continue
		}
		if _, dup := seen[p.raw]; dup {
			continue
		}
		seen[p.raw] = struct{}{}
		s.patterns = append(s.patterns, p.raw)
		if p.kind == kindDomain && p.path == "" {
			s.domains[p.host] = struct{}{}
			continue
		}
		s.others = append(s.others, p)
	}
	sort.Strings(s.patterns)
	return s
}

// Union returns a new set holding the patterns of s and extra.
func (s *Set) Union(extra ...string) *Set {
	if s == nil {
		return NewSet(extra...)
	}
	all := make([]string, 0, len(s.patterns)+len(extra))
	all = append(all, s.patterns...)
	all = append(all, extra...)
	return NewSet(all...)
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Patterns returns the normalized, sorted, deduplicated pattern list.
func (s *Set) Patterns() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.patterns))
	copy(out, s.patterns)
	return out
}

func (s *Set) Contains(pattern string) bool {
	if s == nil {
		return false
	}
	p, ok := Compile(pattern)
	if !ok {
		return false
	}
	i := sort.SearchStrings(s.patterns, p.raw)
	return i < len(s.patterns) && s.patterns[i] == p.raw
}

// MatchHost ignores path-constrained patterns.
func (s *Set) MatchHost(hostname string) bool {
	if s == nil {
		return false
	}
	host, ok := NormalizeHost(hostname)
	if !ok {
		return false
	}
	if s.matchDomain(host) {
		return true
	}
	for _, p := range s.others {
		if !p.HasPath() && p.MatchHost(host) {
			return true
		}
	}
	return false
}

// Match checks host and path against every pattern.
func (s *Set) Match(hostname, path string) bool {
	if s == nil {
		return false
	}
	host, ok := NormalizeHost(hostname)
	if !ok {
		return false
	}
	if s.matchDomain(host) {
		return true
	}
	for _, p := range s.others {
		if p.Match(host, path) {
			return true
		}
	}
	return false
}

// MatchURL parses raw and matches its host and path. Malformed URLs never
// match.
func (s *Set) MatchURL(raw string) bool {
	u, ok := ParseURL(raw)
	if !ok {
		return false
	}
	return s.Match(u.Hostname(), u.EscapedPath())
}

func (s *Set) matchDomain(host string) bool {
	for h := host; h != ""; {
		if _, ok := s.domains[h]; ok {
			return true
		}
		i := strings.IndexByte(h, '.')
		if i < 0 {
			return false
		}
		h = h[i+1:]
	}
	return false
}
