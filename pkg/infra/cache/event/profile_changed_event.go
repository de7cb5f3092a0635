package event

// ProfileChangedEvent tells every instance to switch the active age profile.
type ProfileChangedEvent struct {
	Origin  string `json:"origin"`
	Profile string `json:"profile"`
}

func (e ProfileChangedEvent) Type() string {
	return ProfileChangedEventType
}
