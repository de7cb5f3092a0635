package profile

import (
	"sync/atomic"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
)

// Accessor is the single read point for the active age profile.
type Accessor interface {
	Current() policy.AgeProfile
}

// Holder is a single-writer, many-reader age profile. The zero value reads
// as Children.
type Holder struct {
	v atomic.Value
}

func NewHolder(initial policy.AgeProfile) *Holder {
	h := &Holder{}
	h.Set(initial)
	return h
}

// Current returns one snapshot of the profile. Callers deciding a request
// must read it once and pass the value along.
func (h *Holder) Current() policy.AgeProfile {
	p, ok := h.v.Load().(policy.AgeProfile)
	if !ok {
		return policy.Children
	}
	return p
}

// Set stores p, normalizing unknown values to Children. It returns the
// previous profile.
func (h *Holder) Set(p policy.AgeProfile) policy.AgeProfile {
	prev, ok := h.v.Swap(p.Normalize()).(policy.AgeProfile)
	if !ok {
		return policy.Children
	}
	return prev
}

// SetString parses s before storing. On a parse error the holder falls back
// to Children and the error is returned.
func (h *Holder) SetString(s string) (policy.AgeProfile, error) {
	p, err := policy.ParseAgeProfile(s)
	h.Set(p)
	return p, err
}
