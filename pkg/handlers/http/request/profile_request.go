package request

import "github.com/NeuralTrust/AgeLock/pkg/domain/policy"

type SetProfileRequest struct {
	Profile string `json:"profile"`
}

// Validate rejects unknown profiles. Explicit switches must name a real
// profile instead of silently falling back to children.
func (r *SetProfileRequest) Validate() error {
	_, err := policy.ParseAgeProfile(r.Profile)
	return err
}
