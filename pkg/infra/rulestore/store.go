package rulestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeuralTrust/AgeLock/pkg/matcher"
)

var (
	ErrCorruptList   = errors.New("corrupt supplementary rule list")
	ErrInvalidDomain = errors.New("invalid domain pattern")
	ErrUnknownList   = errors.New("unknown rule list")
)

// List names one of the user-writable supplementary lists.
type List string

const (
	AdList        List = "ads"
	MaliciousList List = "malicious"
)

func (l List) Valid() bool {
	return l == AdList || l == MaliciousList
}

// Supplement holds the user additions that are merged into the built-in ad
// and malicious lists.
type Supplement struct {
	AdDomains        []string `json:"ad_domains"`
	MaliciousDomains []string `json:"malicious_domains"`
}

func (s Supplement) Len() int {
	return len(s.AdDomains) + len(s.MaliciousDomains)
}

// Union merges other into s, dropping duplicates and keeping first-seen order.
func (s Supplement) Union(other Supplement) Supplement {
	return Supplement{
		AdDomains:        union(s.AdDomains, other.AdDomains),
		MaliciousDomains: union(s.MaliciousDomains, other.MaliciousDomains),
	}
}

type Store interface {
	// Load returns every readable list. A list that cannot be read or parsed
	// is left empty and reported in the error; the other list is still
	// returned.
	Load(ctx context.Context) (Supplement, error)
	// Add appends domain to list and reports whether it was new.
	Add(ctx context.Context, list List, domain string) (bool, error)
}

// canonical validates a user-supplied pattern and returns its stored form.
func canonical(domain string) (string, error) {
	p, ok := matcher.Compile(domain)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	return p.String(), nil
}

func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, d := range list {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}
