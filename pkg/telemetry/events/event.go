package events

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Event is a validated usage event. The zero value is not a valid event;
// use NewEvent.
type Event struct {
	name  EventName
	value string
}

// NewEvent validates name and value against the taxonomy and returns the event.
func NewEvent(name, value string) (Event, error) {
	if err := validate(name, value); err != nil {
		return Event{}, err
	}
	return Event{name: EventName(name), value: value}, nil
}

func (e Event) Name() EventName {
	return e.name
}

func (e Event) Value() string {
	return e.value
}

func (e Event) String() string {
	return fmt.Sprintf("Event(event_name=%s, event_value=%s)", e.name, e.value)
}

// ToJSON returns the event as an ordered mapping of event_name then event_value.
func (e Event) ToJSON() *orderedmap.OrderedMap[string, string] {
	m := orderedmap.New[string, string]()
	m.Set("event_name", string(e.name))
	m.Set("event_value", e.value)
	return m
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToJSON())
}
