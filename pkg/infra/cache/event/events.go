package event

import "reflect"

type Event interface {
	Type() string
}

var (
	ProfileChangedEventType = "ProfileChangedEvent"
	ReloadRulesEventType    = "ReloadRulesEvent"
)

var Registry = map[string]reflect.Type{
	ProfileChangedEventType: reflect.TypeOf(ProfileChangedEvent{}),
	ReloadRulesEventType:    reflect.TypeOf(ReloadRulesEvent{}),
}
