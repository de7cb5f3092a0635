package event

// ReloadRulesEvent asks every instance to re-read the supplementary lists.
type ReloadRulesEvent struct {
	Origin string `json:"origin"`
	Reason string `json:"reason"`
}

func (e ReloadRulesEvent) Type() string {
	return ReloadRulesEventType
}
