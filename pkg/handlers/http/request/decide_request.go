package request

import (
	"errors"
	"strings"

	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
)

const maxBatchSize = 256

type DecideRequest struct {
	URL          string `json:"url"`
	ResourceType string `json:"resource_type"`
	Referrer     string `json:"referrer"`
}

func (r *DecideRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return errors.New("url is required")
	}
	if _, err := policy.ParseResourceType(r.ResourceType); err != nil {
		return err
	}
	return nil
}

// Descriptor must only be called after Validate.
func (r *DecideRequest) Descriptor() policy.RequestDescriptor {
	rt, _ := policy.ParseResourceType(r.ResourceType) //nolint:errcheck
	return policy.RequestDescriptor{
		URL:          strings.TrimSpace(r.URL),
		ResourceType: rt,
		Referrer:     r.Referrer,
	}
}

type DecideBatchRequest struct {
	Requests []DecideRequest `json:"requests"`
}

func (r *DecideBatchRequest) Validate() error {
	if len(r.Requests) == 0 {
		return errors.New("requests must not be empty")
	}
	if len(r.Requests) > maxBatchSize {
		return errors.New("too many requests in batch")
	}
	for i := range r.Requests {
		if err := r.Requests[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
