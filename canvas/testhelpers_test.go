package canvas

import (
	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

// makeNode creates an active node of the given type at a position.
func makeNode(id, componentType string, x, y float64) *flowgraph.Node {
	return &flowgraph.Node{
		ID:       id,
		Type:     componentType,
		Position: flowgraph.Position{X: x, Y: y},
		Active:   true,
	}
}

// makeEdge creates a main-port flow edge.
func makeEdge(from, to string) *flowgraph.Edge {
	return &flowgraph.Edge{Port: "main", From: from, To: to, Kind: flowgraph.KindFlow}
}

// makeGraph builds a graph from nodes and edges.
func makeGraph(nodes []*flowgraph.Node, edges []*flowgraph.Edge) *flowgraph.Graph {
	return &flowgraph.Graph{Name: "test", Nodes: nodes, Edges: edges}
}

// chainGraph builds the canonical three-stage test flow:
// an unconnected input, transform, and output.
func chainGraph() *flowgraph.Graph {
	return makeGraph(
		[]*flowgraph.Node{
			makeNode("fileinputdelimited_1", "tFileInputDelimited", 0, 0),
			makeNode("map_2", "tMap", 200, 0),
			makeNode("fileoutputdelimited_3", "tFileOutputDelimited", 400, 0),
		},
		nil,
	)
}

// collectEvents registers a listener that appends every event to the
// returned slice pointer.
func collectEvents(emitter *EventEmitter) *[]Event {
	var events []Event
	emitter.On(func(e Event) {
		events = append(events, e)
	})
	return &events
}
