package textfilter

import (
	"fmt"
	"strings"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/mitchellh/mapstructure"
)

// Thresholds maps profile and category to the score a text must exceed to
// be blocked.
type Thresholds map[policy.AgeProfile]map[string]float64

// FromRules converts the string-keyed table of a rule pack.
func FromRules(table map[string]map[string]float64) (Thresholds, error) {
	out := make(Thresholds, len(table))
	for name, row := range table {
		profile, err := policy.ParseAgeProfile(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, err)
		}
		cp := make(map[string]float64, len(row))
		for category, v := range row {
			cp[strings.ToLower(category)] = v
		}
		out[profile] = cp
	}
	return out, nil
}

// Decode reads an override table from loosely typed configuration, such as
// the raw map viper returns for policy.thresholds.
func Decode(raw interface{}) (Thresholds, error) {
	if raw == nil {
		return nil, nil
	}
	var table map[string]map[string]float64
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &table,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, err)
	}
	out, err := FromRules(table)
	if err != nil {
		return nil, err
	}
	return out, out.Validate()
}

func (t Thresholds) Validate() error {
	for profile, row := range t {
		for category, v := range row {
			if v < 0 || v > 1 {
				return fmt.Errorf("%w: %s/%s = %v, want a value in [0,1]", ErrInvalidThreshold, profile, category, v)
			}
		}
	}
	return nil
}

// Merge returns a copy of t with every cell present in overrides replaced.
func (t Thresholds) Merge(overrides Thresholds) Thresholds {
	out := t.Clone()
	for profile, row := range overrides {
		if out[profile] == nil {
			out[profile] = make(map[string]float64, len(row))
		}
		for category, v := range row {
			out[profile][strings.ToLower(category)] = v
		}
	}
	return out
}

func (t Thresholds) Clone() Thresholds {
	out := make(Thresholds, len(t))
	for profile, row := range t {
		cp := make(map[string]float64, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out[profile] = cp
	}
	return out
}

// Lookup falls back to the children row and then to zero, so a missing cell
// is never more permissive than the strictest configured value.
func (t Thresholds) Lookup(profile policy.AgeProfile, category string) float64 {
	if v, ok := t[profile.Normalize()][category]; ok {
		return v
	}
	if v, ok := t[policy.Children][category]; ok {
		return v
	}
	return 0
}
