package canvas

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

// Editor owns the current graph document and applies every mutation as one
// atomic replace. Reads hand out snapshots, so no caller ever observes a
// half-applied commit. All editor events flow through a single emitter.
type Editor struct {
	mu       sync.RWMutex
	graph    *flowgraph.Graph
	revision string
	selected string
	guided   *GuidedJoin

	registry *ComponentRegistry
	emitter  *EventEmitter
}

// NewEditor creates an editor over the given document. A nil graph starts
// an empty document; a nil registry uses the embedded component catalog.
func NewEditor(g *flowgraph.Graph, reg *ComponentRegistry) *Editor {
	if g == nil {
		g = &flowgraph.Graph{}
	}
	if reg == nil {
		reg = DefaultRegistry()
	}
	return &Editor{
		graph:    g.Clone(),
		revision: uuid.NewString(),
		registry: reg,
		emitter:  NewEventEmitter(),
	}
}

// Events returns the editor's event emitter for listener registration.
func (ed *Editor) Events() *EventEmitter {
	return ed.emitter
}

// Registry returns the component registry the editor classifies with.
func (ed *Editor) Registry() *ComponentRegistry {
	return ed.registry
}

// Graph returns a snapshot of the current document.
func (ed *Editor) Graph() *flowgraph.Graph {
	ed.mu.RLock()
	defer ed.mu.RUnlock()
	return ed.graph.Clone()
}

// Revision returns the id stamped on the last commit.
func (ed *Editor) Revision() string {
	ed.mu.RLock()
	defer ed.mu.RUnlock()
	return ed.revision
}

// Replace commits a new document atomically and stamps a fresh revision.
func (ed *Editor) Replace(g *flowgraph.Graph) {
	ed.mu.Lock()
	ed.graph = g.Clone()
	ed.revision = uuid.NewString()
	rev := ed.revision
	nodes, edges := len(ed.graph.Nodes), len(ed.graph.Edges)
	ed.mu.Unlock()

	ed.emitter.Emit(GraphReplacedEvent(rev, nodes, edges))
}

// Clear resets the document to an empty graph in one commit.
func (ed *Editor) Clear() {
	ed.mu.Lock()
	name := ed.graph.Name
	ed.graph = &flowgraph.Graph{Name: name}
	ed.revision = uuid.NewString()
	ed.selected = ""
	ed.guided = nil
	rev := ed.revision
	ed.mu.Unlock()

	ed.emitter.Emit(GraphClearedEvent(rev))
}

// AddNode places a new component on the canvas. Node ids follow the
// <key>_<n> convention with the lowest unused suffix for the component key.
func (ed *Editor) AddNode(componentType string, at flowgraph.Position) *flowgraph.Node {
	key := NormalizeTypeKey(componentType)

	ed.mu.Lock()
	suffix := 1
	for {
		id := fmt.Sprintf("%s_%d", key, suffix)
		if ed.graph.NodeByID(id) == nil {
			break
		}
		suffix++
	}
	node := &flowgraph.Node{
		ID:           fmt.Sprintf("%s_%d", key, suffix),
		Type:         key,
		OriginalType: componentType,
		Position:     at,
		Active:       true,
	}
	ed.graph.Nodes = append(ed.graph.Nodes, node)
	ed.revision = uuid.NewString()
	snapshot := *node
	ed.mu.Unlock()

	ed.emitter.Emit(NodeAddedEvent(snapshot.ID, componentType))
	return &snapshot
}

// SelectNode marks a node as the current selection.
func (ed *Editor) SelectNode(id string) error {
	ed.mu.Lock()
	if ed.graph.NodeByID(id) == nil {
		ed.mu.Unlock()
		return fmt.Errorf("no node %q", id)
	}
	ed.selected = id
	ed.mu.Unlock()

	ed.emitter.Emit(NodeSelectedEvent(id))
	return nil
}

// Selected returns the currently selected node id, or empty.
func (ed *Editor) Selected() string {
	ed.mu.RLock()
	defer ed.mu.RUnlock()
	return ed.selected
}

// DeleteNode removes a node and every edge touching it in one commit.
func (ed *Editor) DeleteNode(id string) error {
	ed.mu.Lock()
	if ed.graph.NodeByID(id) == nil {
		ed.mu.Unlock()
		return fmt.Errorf("no node %q", id)
	}
	before := len(ed.graph.Edges)
	ed.graph = ed.graph.WithoutNode(id)
	removed := before - len(ed.graph.Edges)
	ed.revision = uuid.NewString()
	if ed.selected == id {
		ed.selected = ""
	}
	ed.mu.Unlock()

	ed.emitter.Emit(NodeDeletedEvent(id, removed))
	return nil
}

// RunSmartJoin runs the ambiguity detector and auto-connector over the
// current document. On success the new edge set is committed; on ambiguity
// the guided workflow is initialized and kept on the editor until it
// completes or is cancelled.
func (ed *Editor) RunSmartJoin() *JoinResult {
	result := SmartJoin(ed.Graph(), ed.registry)

	switch result.Status {
	case JoinSuccess:
		ed.Replace(result.Graph)
		for _, e := range result.EdgesCreated {
			ed.emitter.Emit(EdgeCreatedEvent(e.From, e.To, e.Port))
		}
	case JoinAmbiguous:
		ed.mu.Lock()
		ed.guided = result.Guided
		ed.mu.Unlock()
		ed.emitter.Emit(GuidedStartedEvent(
			len(result.Guided.InputNodes),
			len(result.Guided.TransformNodes),
			len(result.Guided.OutputNodes),
		))
	}

	ed.emitter.Emit(JoinCompletedEvent(result.Status, len(result.EdgesCreated)))
	return result
}

// Guided returns the active guided workflow, or nil.
func (ed *Editor) Guided() *GuidedJoin {
	ed.mu.RLock()
	defer ed.mu.RUnlock()
	return ed.guided
}

// GuidedAdvance advances the active guided workflow one step.
func (ed *Editor) GuidedAdvance() (bool, error) {
	ed.mu.RLock()
	gj := ed.guided
	ed.mu.RUnlock()
	if gj == nil {
		return false, fmt.Errorf("no guided join in progress")
	}
	ok := gj.Advance()
	if ok {
		ed.emitter.Emit(GuidedStepEvent(gj.Step))
	}
	return ok, nil
}

// GuidedComplete finishes the active guided workflow, committing its
// connections, and discards the workflow state.
func (ed *Editor) GuidedComplete() (*JoinResult, error) {
	ed.mu.RLock()
	gj := ed.guided
	ed.mu.RUnlock()
	if gj == nil {
		return nil, fmt.Errorf("no guided join in progress")
	}

	result := gj.Complete(ed.Graph(), ed.registry)
	if result.Status == JoinSuccess {
		ed.Replace(result.Graph)
		for _, e := range result.EdgesCreated {
			ed.emitter.Emit(EdgeCreatedEvent(e.From, e.To, e.Port))
		}
	}
	if result.Status == JoinSuccess || result.Status == JoinNoNewConnections {
		ed.mu.Lock()
		ed.guided = nil
		ed.mu.Unlock()
		ed.emitter.Emit(GuidedCompletedEvent(len(result.EdgesCreated)))
	}
	return result, nil
}

// GuidedCancel discards the active guided workflow with no graph mutation.
func (ed *Editor) GuidedCancel() {
	ed.mu.Lock()
	had := ed.guided != nil
	ed.guided = nil
	ed.mu.Unlock()
	if had {
		ed.emitter.Emit(GuidedCancelledEvent())
	}
}

// Release finishes a manual connection drag against the current document,
// committing the resulting edge when the drop is valid. The returned state
// is always idle.
func (ed *Editor) Release(s DragState, target *Anchor) (DragState, *flowgraph.Edge) {
	g := ed.Graph()
	next, edge := s.Release(target, g)
	if edge != nil {
		g.Edges = append(g.Edges, edge)
		ed.Replace(g)
		ed.emitter.Emit(EdgeCreatedEvent(edge.From, edge.To, edge.Port))
	}
	return next, edge
}

// Layout derives the current collision-free display positions.
func (ed *Editor) Layout() map[string]flowgraph.Position {
	return ResolveOverlaps(ed.Graph())
}
