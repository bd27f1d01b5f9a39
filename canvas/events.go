package canvas

import (
	"sync"
	"time"
)

// EventType represents the type of editor event.
type EventType string

const (
	// Graph document events
	EventGraphReplaced EventType = "graph_replaced"
	EventGraphCleared  EventType = "graph_cleared"
	EventNodeAdded     EventType = "node_added"
	EventNodeSelected  EventType = "node_selected"
	EventNodeDeleted   EventType = "node_deleted"
	EventEdgeCreated   EventType = "edge_created"

	// Smart join events
	EventJoinCompleted EventType = "join_completed"

	// Guided workflow events
	EventGuidedStarted   EventType = "guided_started"
	EventGuidedStep      EventType = "guided_step"
	EventGuidedCompleted EventType = "guided_completed"
	EventGuidedCancelled EventType = "guided_cancelled"
)

// Event represents an observable editor event with typed data.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// EventEmitter manages event listeners and dispatches events.
// Listeners are called synchronously in registration order; this is also
// how external triggers (the run-smart-join signal) reach the editor.
type EventEmitter struct {
	mu        sync.RWMutex
	listeners []func(Event)
}

// NewEventEmitter creates a new EventEmitter.
func NewEventEmitter() *EventEmitter {
	return &EventEmitter{
		listeners: make([]func(Event), 0),
	}
}

// On registers a listener function to receive events.
func (e *EventEmitter) On(listener func(Event)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, listener)
}

// Emit dispatches an event to all registered listeners.
func (e *EventEmitter) Emit(event Event) {
	e.mu.RLock()
	listeners := make([]func(Event), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// ListenerCount returns the number of registered listeners.
func (e *EventEmitter) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}

// Helper constructors for creating typed events

// GraphReplacedEvent creates a graph_replaced event.
func GraphReplacedEvent(revision string, nodeCount, edgeCount int) Event {
	return Event{
		Type:      EventGraphReplaced,
		Timestamp: time.Now(),
		Data: map[string]any{
			"revision":   revision,
			"node_count": nodeCount,
			"edge_count": edgeCount,
		},
	}
}

// NodeAddedEvent creates a node_added event.
func NodeAddedEvent(nodeID, componentType string) Event {
	return Event{
		Type:      EventNodeAdded,
		Timestamp: time.Now(),
		Data: map[string]any{
			"node_id": nodeID,
			"type":    componentType,
		},
	}
}

// NodeSelectedEvent creates a node_selected event.
func NodeSelectedEvent(nodeID string) Event {
	return Event{
		Type:      EventNodeSelected,
		Timestamp: time.Now(),
		Data:      map[string]any{"node_id": nodeID},
	}
}

// NodeDeletedEvent creates a node_deleted event.
func NodeDeletedEvent(nodeID string, removedEdges int) Event {
	return Event{
		Type:      EventNodeDeleted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"node_id":       nodeID,
			"removed_edges": removedEdges,
		},
	}
}

// EdgeCreatedEvent creates an edge_created event.
func EdgeCreatedEvent(from, to, port string) Event {
	return Event{
		Type:      EventEdgeCreated,
		Timestamp: time.Now(),
		Data: map[string]any{
			"from": from,
			"to":   to,
			"port": port,
		},
	}
}

// JoinCompletedEvent creates a join_completed event.
func JoinCompletedEvent(status JoinStatus, edgesCreated int) Event {
	return Event{
		Type:      EventJoinCompleted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"status":        string(status),
			"edges_created": edgesCreated,
		},
	}
}

// GuidedStartedEvent creates a guided_started event.
func GuidedStartedEvent(inputs, transforms, outputs int) Event {
	return Event{
		Type:      EventGuidedStarted,
		Timestamp: time.Now(),
		Data: map[string]any{
			"inputs":     inputs,
			"transforms": transforms,
			"outputs":    outputs,
		},
	}
}

// GuidedStepEvent creates a guided_step event.
func GuidedStepEvent(step int) Event {
	return Event{
		Type:      EventGuidedStep,
		Timestamp: time.Now(),
		Data:      map[string]any{"step": step},
	}
}

// GuidedCompletedEvent creates a guided_completed event.
func GuidedCompletedEvent(edgesCreated int) Event {
	return Event{
		Type:      EventGuidedCompleted,
		Timestamp: time.Now(),
		Data:      map[string]any{"edges_created": edgesCreated},
	}
}

// GuidedCancelledEvent creates a guided_cancelled event.
func GuidedCancelledEvent() Event {
	return Event{
		Type:      EventGuidedCancelled,
		Timestamp: time.Now(),
		Data:      map[string]any{},
	}
}

// GraphClearedEvent creates a graph_cleared event.
func GraphClearedEvent(revision string) Event {
	return Event{
		Type:      EventGraphCleared,
		Timestamp: time.Now(),
		Data:      map[string]any{"revision": revision},
	}
}
