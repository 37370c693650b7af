// Package events holds the closed taxonomy of usage events and the queue
// that accumulates them until the next flush.
//
// Events are validated once, when they are created, so everything held by a
// Tracker is known to be well formed.
package events

import (
	"github.com/stackctl/stackctl/pkg/concurrent"
)

// Tracker is an append-only, insertion-ordered queue of events.
// It is safe for concurrent use.
type Tracker struct {
	events *concurrent.Slice[Event]
}

func NewTracker() *Tracker {
	return &Tracker{events: concurrent.NewSlice[Event]()}
}

// Track validates the event and appends it to the queue. Invalid events are
// reported with a *TaxonomyError and never stored.
//
//	func deployStart() error {
//		if err := events.TrackEvent("Deploy", "CreateChangeSetStart"); err != nil {
//			return err
//		}
//		...
//	}
func (t *Tracker) Track(name, value string) error {
	event, err := NewEvent(name, value)
	if err != nil {
		return err
	}
	t.events.Append(event)
	return nil
}

// Tracked returns a copy of the queued events in the order they were tracked.
func (t *Tracker) Tracked() []Event {
	return t.events.All()
}

// Drain returns the queued events and empties the queue in one step.
func (t *Tracker) Drain() []Event {
	return t.events.Drain()
}

func (t *Tracker) Len() int {
	return t.events.Length()
}

// Clear empties the queue. It is meant to run once per flush.
func (t *Tracker) Clear() {
	t.events.Clear()
}

var defaultTracker = NewTracker()

// Default returns the process-wide tracker.
func Default() *Tracker {
	return defaultTracker
}

// TrackEvent records an event on the process-wide tracker.
func TrackEvent(name, value string) error {
	return defaultTracker.Track(name, value)
}

// TrackedEvents returns the events recorded on the process-wide tracker.
func TrackedEvents() []Event {
	return defaultTracker.Tracked()
}

// ClearTracked empties the process-wide tracker.
func ClearTracked() {
	defaultTracker.Clear()
}
