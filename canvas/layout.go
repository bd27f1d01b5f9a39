package canvas

import "github.com/phanisrikanth1989/recdataprep/flowgraph"

// Fixed node footprint on the canvas and the minimum vertical gap kept
// between nodes the layout pass separates.
const (
	NodeWidth      = 160.0
	NodeHeight     = 64.0
	MinVerticalGap = 24.0
)

// ResolveOverlaps derives non-overlapping display positions for the graph's
// nodes. Stored node positions are never touched; the returned map is
// recomputed per render and holds an entry for every node.
//
// The pass is a single sweep over all unordered node pairs: when two
// bounding boxes overlap on both axes, the node whose stored position sits
// lower is pushed down until its top clears the other box's bottom plus
// MinVerticalGap. Three-way pileups may keep residual overlap after one
// sweep; callers wanting more separation run the pass again on the next
// render.
func ResolveOverlaps(g *flowgraph.Graph) map[string]flowgraph.Position {
	derived := make(map[string]flowgraph.Position, len(g.Nodes))
	for _, n := range g.Nodes {
		derived[n.ID] = n.Position
	}

	for i := 0; i < len(g.Nodes); i++ {
		for j := i + 1; j < len(g.Nodes); j++ {
			a, b := g.Nodes[i], g.Nodes[j]
			pa, pb := derived[a.ID], derived[b.ID]
			if !boxesOverlap(pa, pb) {
				continue
			}
			// The node stored lower on the canvas moves; ties push the
			// later node so identical positions still separate.
			if a.Position.Y > b.Position.Y {
				pa.Y = pb.Y + NodeHeight + MinVerticalGap
				derived[a.ID] = pa
			} else {
				pb.Y = pa.Y + NodeHeight + MinVerticalGap
				derived[b.ID] = pb
			}
		}
	}
	return derived
}

// boxesOverlap reports whether two node bounding boxes of the fixed
// footprint intersect on both axes.
func boxesOverlap(a, b flowgraph.Position) bool {
	return a.X < b.X+NodeWidth && b.X < a.X+NodeWidth &&
		a.Y < b.Y+NodeHeight && b.Y < a.Y+NodeHeight
}
