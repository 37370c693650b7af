package events

import (
	"errors"
	"fmt"
	"slices"
)

// EventName identifies a category of usage event.
type EventName string

const (
	EventUsedFeature  EventName = "UsedFeature"
	EventDeploy       EventName = "Deploy"
	EventBuildRuntime EventName = "BuildRuntime"
)

// eventNames lists every known event name in declaration order.
var eventNames = []EventName{
	EventUsedFeature,
	EventDeploy,
	EventBuildRuntime,
}

// acceptedValues maps an event name to the values it may carry.
// A name missing from this map accepts no value at all.
var acceptedValues = map[EventName][]string{
	EventUsedFeature: {
		"ESBuild",
		"Accelerate",
		"LocalTest",
		"CDK",
	},
	EventDeploy: {
		"CreateChangeSetStart",
		"CreateChangeSetInProgress",
		"CreateChangeSetFailed",
		"CreateChangeSetSuccess",
	},
}

// EventNames returns all known event names.
func EventNames() []EventName {
	return slices.Clone(eventNames)
}

// AcceptedValues returns the values accepted for the given event name.
// It returns an empty slice for names that have no registered values.
func AcceptedValues(name EventName) []string {
	return slices.Clone(acceptedValues[name])
}

// IsKnown reports whether s is exactly one of the event names.
func IsKnown(s string) bool {
	return slices.Contains(eventNames, EventName(s))
}

// ErrTaxonomy is matched by every *TaxonomyError.
var ErrTaxonomy = errors.New("invalid telemetry event")

// TaxonomyError is returned when an event name or value is not part of the taxonomy.
type TaxonomyError struct {
	Name        string
	Value       string
	UnknownName bool
}

var _ error = &TaxonomyError{}

func (e *TaxonomyError) Error() string {
	if e.UnknownName {
		return fmt.Sprintf("event %q does not exist", e.Name)
	}
	return fmt.Sprintf("event %q does not accept value %q", e.Name, e.Value)
}

func (e *TaxonomyError) Is(target error) bool {
	return target == ErrTaxonomy
}

func validate(name, value string) error {
	if !IsKnown(name) {
		return &TaxonomyError{Name: name, Value: value, UnknownName: true}
	}
	if !slices.Contains(acceptedValues[EventName(name)], value) {
		return &TaxonomyError{Name: name, Value: value}
	}
	return nil
}
