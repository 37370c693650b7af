package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_AllAcceptedValues(t *testing.T) {
	t.Parallel()

	for _, name := range EventNames() {
		for _, value := range AcceptedValues(name) {
			event, err := NewEvent(string(name), value)
			require.NoError(t, err)

			assert.Equal(t, name, event.Name())
			assert.Equal(t, value, event.Value())

			data, err := json.Marshal(event)
			require.NoError(t, err)
			assert.JSONEq(t, `{"event_name":"`+string(name)+`","event_value":"`+value+`"}`, string(data))
		}
	}
}

func TestEvent_ToJSONOrder(t *testing.T) {
	t.Parallel()

	event, err := NewEvent("Deploy", "CreateChangeSetSuccess")
	require.NoError(t, err)

	m := event.ToJSON()
	var keys []string
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"event_name", "event_value"}, keys)

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Equal(t, `{"event_name":"Deploy","event_value":"CreateChangeSetSuccess"}`, string(data))
}

func TestEvent_Equality(t *testing.T) {
	t.Parallel()

	a, err := NewEvent("UsedFeature", "CDK")
	require.NoError(t, err)
	b, err := NewEvent("UsedFeature", "CDK")
	require.NoError(t, err)
	c, err := NewEvent("UsedFeature", "ESBuild")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.False(t, a == c)
}

func TestEvent_String(t *testing.T) {
	t.Parallel()

	event, err := NewEvent("UsedFeature", "LocalTest")
	require.NoError(t, err)

	assert.Equal(t, "Event(event_name=UsedFeature, event_value=LocalTest)", event.String())
}
