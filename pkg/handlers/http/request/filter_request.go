package request

import (
	"errors"
	"strings"
)

type FilterTextRequest struct {
	Text string `json:"text"`
}

// Validate accepts empty text, which never blocks.
func (r *FilterTextRequest) Validate() error {
	return nil
}

type FilterURLRequest struct {
	URL string `json:"url"`
}

func (r *FilterURLRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return errors.New("url is required")
	}
	return nil
}

type ClassifyRequest struct {
	URL          string `json:"url"`
	ResourceType string `json:"resource_type"`
	Referrer     string `json:"referrer"`
}

func (r *ClassifyRequest) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return errors.New("url is required")
	}
	return nil
}
