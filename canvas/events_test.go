package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventEmitter_ListenersCalledInOrder(t *testing.T) {
	emitter := NewEventEmitter()
	var order []string
	emitter.On(func(e Event) { order = append(order, "first") })
	emitter.On(func(e Event) { order = append(order, "second") })

	emitter.Emit(NodeSelectedEvent("map_1"))

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 2, emitter.ListenerCount())
}

func TestEventEmitter_NoListenersIsFine(t *testing.T) {
	emitter := NewEventEmitter()

	assert.NotPanics(t, func() {
		emitter.Emit(GraphClearedEvent("rev"))
	})
}

func TestEventConstructors_CarryData(t *testing.T) {
	e := JoinCompletedEvent(JoinSuccess, 3)
	require.Equal(t, EventJoinCompleted, e.Type)
	assert.Equal(t, "success", e.Data["status"])
	assert.Equal(t, 3, e.Data["edges_created"])
	assert.False(t, e.Timestamp.IsZero())

	e = NodeDeletedEvent("map_1", 2)
	assert.Equal(t, "map_1", e.Data["node_id"])
	assert.Equal(t, 2, e.Data["removed_edges"])

	e = GuidedStartedEvent(2, 1, 1)
	assert.Equal(t, 2, e.Data["inputs"])
}
