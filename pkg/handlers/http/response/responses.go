package response

import "github.com/NeuralTrust/AgeLock/pkg/domain/policy"

type DecisionResponse struct {
	RequestID string            `json:"request_id,omitempty"`
	Profile   policy.AgeProfile `json:"profile"`
	Verdict   policy.Verdict    `json:"verdict"`
}

type BatchItem struct {
	ID      string         `json:"id"`
	URL     string         `json:"url"`
	Verdict policy.Verdict `json:"verdict"`
}

type BatchDecisionResponse struct {
	RequestID string            `json:"request_id,omitempty"`
	Profile   policy.AgeProfile `json:"profile"`
	Results   []BatchItem       `json:"results"`
}

type FilterResponse struct {
	Profile policy.AgeProfile       `json:"profile"`
	Result  policy.TextFilterResult `json:"result"`
}

type ClassificationResponse struct {
	URL                string `json:"url"`
	Valid              bool   `json:"valid"`
	InternalScheme     bool   `json:"internal_scheme"`
	Infrastructure     bool   `json:"infrastructure"`
	Gambling           string `json:"gambling"`
	SearchEngine       bool   `json:"search_engine"`
	SearchResource     bool   `json:"search_resource"`
	Whitelisted        bool   `json:"whitelisted"`
	Video              bool   `json:"video"`
	ExplicitCategory   string `json:"explicit_category,omitempty"`
	Malicious          bool   `json:"malicious"`
	AdOrTracker        bool   `json:"ad_or_tracker"`
	Tracking           bool   `json:"tracking"`
	ThirdPartyTracker  bool   `json:"third_party_tracker"`
	Suspicious         bool   `json:"suspicious"`
	ContentFarm        bool   `json:"content_farm"`
	SocialMedia        bool   `json:"social_media"`
	Gaming             bool   `json:"gaming"`
	RestrictedPlatform bool   `json:"restricted_platform"`
	KidsPlatform       bool   `json:"kids_platform"`
	KidFriendly        bool   `json:"kid_friendly"`
	SafeSearchURL      string `json:"safe_search_url,omitempty"`
}

type ProfileResponse struct {
	Profile  policy.AgeProfile `json:"profile"`
	Previous policy.AgeProfile `json:"previous,omitempty"`
}

type AddDomainResponse struct {
	List   string `json:"list"`
	Domain string `json:"domain"`
	Added  bool   `json:"added"`
}
