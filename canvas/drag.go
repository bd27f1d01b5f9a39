package canvas

import "github.com/phanisrikanth1989/recdataprep/flowgraph"

// Anchor identifies a connection point on a node: a named port on either
// the input or the output side.
type Anchor struct {
	NodeID string `json:"node"`
	Port   string `json:"port"`
	Output bool   `json:"output"`
}

// DragState is the transient state of a pointer-driven connection drag.
// It is an explicit value threaded through the event layer: each pointer
// event maps the current state to the next, and Release additionally
// yields the edge to commit, if any. The zero value is the idle state.
type DragState struct {
	Dragging   bool               `json:"dragging"`
	SourceNode string             `json:"sourceNode,omitempty"`
	SourcePort string             `json:"sourcePort,omitempty"`
	Cursor     flowgraph.Position `json:"cursor"`
}

// Press handles a pointer press on an anchor. A drag begins only from an
// output anchor; pressing an input anchor leaves the state idle.
func (s DragState) Press(a Anchor, at flowgraph.Position) DragState {
	if !a.Output {
		return DragState{}
	}
	return DragState{
		Dragging:   true,
		SourceNode: a.NodeID,
		SourcePort: a.Port,
		Cursor:     at,
	}
}

// Move updates the cursor while dragging. No graph mutation happens during
// this phase.
func (s DragState) Move(at flowgraph.Position) DragState {
	if !s.Dragging {
		return s
	}
	s.Cursor = at
	return s
}

// Release ends the drag. When the pointer lands on an input anchor of a
// different node and no edge for that (source,target) pair exists yet, the
// edge to commit is returned; every other release — including self
// connections and duplicates — cancels silently. The next state is always
// idle.
func (s DragState) Release(target *Anchor, g *flowgraph.Graph) (DragState, *flowgraph.Edge) {
	if !s.Dragging || target == nil || target.Output {
		return DragState{}, nil
	}
	if target.NodeID == s.SourceNode {
		return DragState{}, nil
	}
	if g.HasEdge(s.SourceNode, target.NodeID) {
		return DragState{}, nil
	}
	port := s.SourcePort
	if port == "" {
		port = "main"
	}
	return DragState{}, &flowgraph.Edge{
		Port: port,
		From: s.SourceNode,
		To:   target.NodeID,
		Kind: flowgraph.KindFlow,
	}
}

// Cancel abandons a drag with no mutation.
func (s DragState) Cancel() DragState {
	return DragState{}
}
