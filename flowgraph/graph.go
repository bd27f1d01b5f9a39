package flowgraph

// Position is a point on the editor canvas.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents a placed processing component.
type Node struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	OriginalType string   `json:"originalType,omitempty"`
	Position     Position `json:"position"`
	Active       bool     `json:"active"`
}

// TypeKey returns the identifier used for component classification:
// the original vendor type when present, otherwise the plain type.
func (n *Node) TypeKey() string {
	if n.OriginalType != "" {
		return n.OriginalType
	}
	return n.Type
}

// EdgeKind discriminates connection kinds. Only flow connections exist today.
type EdgeKind string

const KindFlow EdgeKind = "flow"

// Edge is a directed, named-port connection between two nodes.
type Edge struct {
	Port string   `json:"port"`
	From string   `json:"from"`
	To   string   `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// Graph holds the full editor document: every placed node and every connection.
// Node and edge order carries no meaning.
type Graph struct {
	Name  string  `json:"name,omitempty"`
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

// NodeByID returns the node with the given ID, or nil if not found.
func (g *Graph) NodeByID(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// EdgesFrom returns all edges originating from the given node ID.
func (g *Graph) EdgesFrom(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.From == id {
			result = append(result, e)
		}
	}
	return result
}

// EdgesTo returns all edges targeting the given node ID.
func (g *Graph) EdgesTo(id string) []*Edge {
	var result []*Edge
	for _, e := range g.Edges {
		if e.To == id {
			result = append(result, e)
		}
	}
	return result
}

// HasEdge reports whether any edge connects from -> to, regardless of port.
func (g *Graph) HasEdge(from, to string) bool {
	for _, e := range g.Edges {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the graph. Callers that hand a graph across
// a commit boundary clone first so the committed document never aliases
// working state.
func (g *Graph) Clone() *Graph {
	c := &Graph{Name: g.Name}
	if g.Nodes != nil {
		c.Nodes = make([]*Node, len(g.Nodes))
		for i, n := range g.Nodes {
			cn := *n
			c.Nodes[i] = &cn
		}
	}
	if g.Edges != nil {
		c.Edges = make([]*Edge, len(g.Edges))
		for i, e := range g.Edges {
			ce := *e
			c.Edges[i] = &ce
		}
	}
	return c
}

// WithoutNode returns a copy of the graph with the named node removed along
// with every edge that references it.
func (g *Graph) WithoutNode(id string) *Graph {
	c := &Graph{Name: g.Name}
	for _, n := range g.Nodes {
		if n.ID == id {
			continue
		}
		cn := *n
		c.Nodes = append(c.Nodes, &cn)
	}
	for _, e := range g.Edges {
		if e.From == id || e.To == id {
			continue
		}
		ce := *e
		c.Edges = append(c.Edges, &ce)
	}
	return c
}
