// Package flowgraph defines the graph document model for the recdataprep
// editor: nodes placed on a canvas and the directed, named-port connections
// between them.
//
// A Graph is a plain value with no behavior beyond lookup helpers; all
// editing semantics (connection inference, layout, validation) live in the
// canvas package. Graphs round-trip through a JSON flow-file format via
// Load, Save, Decode, and Encode.
//
// Usage:
//
//	g, err := flowgraph.Load("orders.flow.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(g.Name, len(g.Nodes), len(g.Edges))
package flowgraph
