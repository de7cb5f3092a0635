package policy

// TextFilterResult is returned by the text filter boundary and is JSON
// serializable as-is.
type TextFilterResult struct {
	Blocked     bool         `json:"blocked"`
	Category    string       `json:"category,omitempty"`
	Score       float64      `json:"score"`
	Explanation *Explanation `json:"explanation,omitempty"`
}

type Explanation struct {
	Category         string   `json:"category"`
	Score            float64  `json:"score"`
	Reason           string   `json:"reason"`
	MatchingTerms    []string `json:"matchingTerms,omitempty"`
	SafeAlternatives []string `json:"safeAlternatives,omitempty"`
}
