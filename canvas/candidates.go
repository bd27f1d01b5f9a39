package canvas

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

// Candidate is a node with no outgoing connection, paired with its
// classification. Candidates are what Smart Join chains together.
type Candidate struct {
	Node     *flowgraph.Node
	Category Category
	Ports    Ports
}

// idSuffixRe captures the numeric suffix of ids like "tMap_3".
var idSuffixRe = regexp.MustCompile(`_(\d+)$`)

// idSuffix extracts the trailing numeric suffix of a node id, defaulting
// to 0 when the id has none.
func idSuffix(id string) int {
	m := idSuffixRe.FindStringSubmatch(id)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Candidates returns the nodes with no outgoing edge, ordered by category
// priority (Input, Transform, Output) and then by ascending numeric id
// suffix. The sort is stable: nodes with equal keys keep their relative
// order from the graph.
func Candidates(g *flowgraph.Graph, reg *ComponentRegistry) []Candidate {
	hasOutgoing := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		hasOutgoing[e.From] = true
	}

	var candidates []Candidate
	for _, n := range g.Nodes {
		if hasOutgoing[n.ID] {
			continue
		}
		c := reg.ClassifyNode(n)
		candidates = append(candidates, Candidate{
			Node:     n,
			Category: c.Category,
			Ports:    c.Ports,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := candidates[i].Category.Priority(), candidates[j].Category.Priority()
		if pi != pj {
			return pi < pj
		}
		return idSuffix(candidates[i].Node.ID) < idSuffix(candidates[j].Node.ID)
	})
	return candidates
}

// countByCategory partitions candidates and returns the per-category counts.
func countByCategory(candidates []Candidate) (inputs, transforms, outputs int) {
	for _, c := range candidates {
		switch c.Category {
		case CategoryInput:
			inputs++
		case CategoryOutput:
			outputs++
		default:
			transforms++
		}
	}
	return inputs, transforms, outputs
}
