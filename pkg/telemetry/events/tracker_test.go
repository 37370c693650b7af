package events

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEvent(t *testing.T, name, value string) Event {
	t.Helper()
	event, err := NewEvent(name, value)
	require.NoError(t, err)
	return event
}

func TestTracker_PreservesOrder(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	calls := [][2]string{
		{"Deploy", "CreateChangeSetStart"},
		{"UsedFeature", "ESBuild"},
		{"Deploy", "CreateChangeSetInProgress"},
		{"UsedFeature", "ESBuild"},
		{"Deploy", "CreateChangeSetSuccess"},
	}

	var want []Event
	for _, call := range calls {
		require.NoError(t, tracker.Track(call[0], call[1]))
		want = append(want, mustEvent(t, call[0], call[1]))
	}

	assert.Equal(t, want, tracker.Tracked())
	assert.Equal(t, len(calls), tracker.Len())

	// Reading does not consume.
	assert.Equal(t, want, tracker.Tracked())
}

func TestTracker_InvalidEventNotStored(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	require.NoError(t, tracker.Track("UsedFeature", "CDK"))

	err := tracker.Track("BuildRuntime", "python3.12")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaxonomy)

	err = tracker.Track("Nope", "CDK")
	var taxErr *TaxonomyError
	require.ErrorAs(t, err, &taxErr)
	assert.True(t, taxErr.UnknownName)

	assert.Equal(t, []Event{mustEvent(t, "UsedFeature", "CDK")}, tracker.Tracked())
}

func TestTracker_Clear(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, 1, 50} {
		tracker := NewTracker()
		for range size {
			require.NoError(t, tracker.Track("UsedFeature", "Accelerate"))
		}

		tracker.Clear()

		assert.Empty(t, tracker.Tracked())
		assert.Equal(t, 0, tracker.Len())
	}
}

func TestTracker_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	require.NoError(t, tracker.Track("UsedFeature", "CDK"))

	snapshot := tracker.Tracked()
	snapshot[0] = mustEvent(t, "UsedFeature", "ESBuild")

	assert.Equal(t, []Event{mustEvent(t, "UsedFeature", "CDK")}, tracker.Tracked())
}

func TestTracker_Drain(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	require.NoError(t, tracker.Track("UsedFeature", "CDK"))
	require.NoError(t, tracker.Track("UsedFeature", "LocalTest"))

	drained := tracker.Drain()

	assert.Equal(t, []Event{
		mustEvent(t, "UsedFeature", "CDK"),
		mustEvent(t, "UsedFeature", "LocalTest"),
	}, drained)
	assert.Equal(t, 0, tracker.Len())
}

func TestTracker_ConcurrentTrack(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			assert.NoError(t, tracker.Track("UsedFeature", "ESBuild"))
		})
	}
	wg.Wait()

	assert.Equal(t, 100, tracker.Len())
}

func TestDefaultTracker(t *testing.T) {
	ClearTracked()
	t.Cleanup(ClearTracked)

	require.NoError(t, TrackEvent("Deploy", "CreateChangeSetFailed"))
	require.Error(t, TrackEvent("Deploy", "CreateChangeSetExploded"))

	assert.Equal(t, []Event{mustEvent(t, "Deploy", "CreateChangeSetFailed")}, TrackedEvents())
	assert.Same(t, Default(), Default())

	ClearTracked()
	assert.Empty(t, TrackedEvents())
}

func TestTrackEvent_CallerSeesTaxonomyError(t *testing.T) {
	ClearTracked()
	t.Cleanup(ClearTracked)

	deploy := func(value string) error {
		if err := TrackEvent("Deploy", value); err != nil {
			return fmt.Errorf("deploy: %w", err)
		}
		return nil
	}

	require.NoError(t, deploy("CreateChangeSetStart"))

	err := deploy("CreateChangeSetStarted")
	require.ErrorIs(t, err, ErrTaxonomy)

	var taxErr *TaxonomyError
	require.ErrorAs(t, err, &taxErr)
	assert.Equal(t, "CreateChangeSetStarted", taxErr.Value)
	assert.False(t, taxErr.UnknownName)

	assert.Equal(t, []Event{mustEvent(t, "Deploy", "CreateChangeSetStart")}, TrackedEvents())
}
