package flowgraph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Decode reads a flow document from r. Every edge endpoint must reference a
// declared node; edges with a missing port or kind get the defaults
// ("main", flow).
func Decode(r io.Reader) (*Graph, error) {
	var g Graph
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&g); err != nil {
		return nil, fmt.Errorf("decoding flow document: %w", err)
	}

	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("flow document: node with empty id")
		}
		if seen[n.ID] {
			return nil, fmt.Errorf("flow document: duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range g.Edges {
		if !seen[e.From] {
			return nil, fmt.Errorf("flow document: edge references unknown node %q", e.From)
		}
		if !seen[e.To] {
			return nil, fmt.Errorf("flow document: edge references unknown node %q", e.To)
		}
		if e.Port == "" {
			e.Port = "main"
		}
		if e.Kind == "" {
			e.Kind = KindFlow
		}
	}
	return &g, nil
}

// Encode writes the graph to w as an indented flow document.
func Encode(w io.Writer, g *Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encoding flow document: %w", err)
	}
	return nil
}

// Load reads a flow document from the named file.
func Load(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening flow file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes the graph to the named file, creating or truncating it.
func Save(path string, g *Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating flow file: %w", err)
	}
	if err := Encode(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
