package policy

import (
	"fmt"
	"strings"
)

type ResourceType string

const (
	MainFrame  ResourceType = "mainFrame"
	SubFrame   ResourceType = "subFrame"
	Image      ResourceType = "image"
	Script     ResourceType = "script"
	Stylesheet ResourceType = "stylesheet"
	Font       ResourceType = "font"
	Media      ResourceType = "media"
	XHR        ResourceType = "xhr"
	Fetch      ResourceType = "fetch"
	Other      ResourceType = "other"
)

var resourceTypes = map[string]ResourceType{
	"mainframe":  MainFrame,
	"main_frame": MainFrame,
	"subframe":   SubFrame,
	"sub_frame":  SubFrame,
	"image":      Image,
	"script":     Script,
	"stylesheet": Stylesheet,
	"font":       Font,
	"media":      Media,
	"xhr":        XHR,
	"fetch":      Fetch,
	"other":      Other,
}

// ParseResourceType accepts both camelCase and snake_case spellings.
// Unknown values map to Other.
func ParseResourceType(s string) (ResourceType, error) {
	if s == "" {
		return Other, nil
	}
	rt, ok := resourceTypes[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Other, fmt.Errorf("unknown resource type %q", s)
	}
	return rt, nil
}

// IsNavigation reports top-level or framed document loads.
func (r ResourceType) IsNavigation() bool {
	return r == MainFrame || r == SubFrame
}

// IsPassive reports resource types allowed by the fast path unless a
// gambling or malicious-domain check fires.
func (r ResourceType) IsPassive() bool {
	switch r {
	case Image, Stylesheet, Font, Media, Script, XHR, Fetch:
		return true
	}
	return false
}

// RequestDescriptor is one intercepted request. It has no identity beyond
// its fields.
type RequestDescriptor struct {
	URL          string       `json:"url"`
	ResourceType ResourceType `json:"resource_type"`
	Referrer     string       `json:"referrer,omitempty"`
}
