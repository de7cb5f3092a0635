package policy

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownProfile = errors.New("unknown age profile")

// AgeProfile selects thresholds and whitelists for every decision.
type AgeProfile string

const (
	Children  AgeProfile = "children"
	Teenagers AgeProfile = "teenagers"
	Adults    AgeProfile = "adults"
)

// Profiles lists the known profiles from most to least restrictive.
var Profiles = []AgeProfile{Children, Teenagers, Adults}

func ParseAgeProfile(s string) (AgeProfile, error) {
	switch AgeProfile(strings.ToLower(strings.TrimSpace(s))) {
	case Children:
		return Children, nil
	case Teenagers:
		return Teenagers, nil
	case Adults:
		return Adults, nil
	}
	return Children, fmt.Errorf("%w: %q", ErrUnknownProfile, s)
}

// Normalize maps unknown values to Children, the most restrictive profile.
func (p AgeProfile) Normalize() AgeProfile {
	normalized, err := ParseAgeProfile(string(p))
	if err != nil {
		return Children
	}
	return normalized
}

func (p AgeProfile) Valid() bool {
	_, err := ParseAgeProfile(string(p))
	return err == nil
}

// IsMinor reports whether gambling and platform restrictions apply.
func (p AgeProfile) IsMinor() bool {
	n := p.Normalize()
	return n == Children || n == Teenagers
}
