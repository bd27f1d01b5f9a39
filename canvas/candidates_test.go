package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

func candidateIDs(candidates []Candidate) []string {
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.Node.ID
	}
	return ids
}

func TestCandidates_OnlyNodesWithoutOutgoingEdges(t *testing.T) {
	g := makeGraph(
		[]*flowgraph.Node{
			makeNode("map_1", "tMap", 0, 0),
			makeNode("map_2", "tMap", 0, 100),
			makeNode("map_3", "tMap", 0, 200),
		},
		[]*flowgraph.Edge{makeEdge("map_1", "map_2")},
	)

	candidates := Candidates(g, DefaultRegistry())

	// map_1 has an outgoing edge; map_2 only an incoming one.
	assert.Equal(t, []string{"map_2", "map_3"}, candidateIDs(candidates))
}

func TestCandidates_NumericSuffixOrdering(t *testing.T) {
	g := makeGraph(
		[]*flowgraph.Node{
			makeNode("n_3", "tMap", 0, 0),
			makeNode("n_1", "tMap", 0, 0),
			makeNode("n_2", "tMap", 0, 0),
		},
		nil,
	)

	candidates := Candidates(g, DefaultRegistry())

	assert.Equal(t, []string{"n_1", "n_2", "n_3"}, candidateIDs(candidates))
}

func TestCandidates_CategoryPrecedesSuffix(t *testing.T) {
	// The input sorts first despite the largest suffix, the output last
	// despite the smallest.
	g := makeGraph(
		[]*flowgraph.Node{
			makeNode("fileoutputdelimited_1", "tFileOutputDelimited", 0, 0),
			makeNode("map_5", "tMap", 0, 0),
			makeNode("fileinputdelimited_9", "tFileInputDelimited", 0, 0),
		},
		nil,
	)

	candidates := Candidates(g, DefaultRegistry())

	assert.Equal(t, []string{"fileinputdelimited_9", "map_5", "fileoutputdelimited_1"}, candidateIDs(candidates))
}

func TestCandidates_MissingSuffixSortsFirst(t *testing.T) {
	g := makeGraph(
		[]*flowgraph.Node{
			makeNode("map_2", "tMap", 0, 0),
			makeNode("plainmap", "tMap", 0, 0),
		},
		nil,
	)

	candidates := Candidates(g, DefaultRegistry())

	// No suffix parses as 0, which sorts before map_2.
	assert.Equal(t, []string{"plainmap", "map_2"}, candidateIDs(candidates))
}

func TestCandidates_StableForEqualKeys(t *testing.T) {
	// Same category, same (absent) suffix: graph order is preserved.
	g := makeGraph(
		[]*flowgraph.Node{
			makeNode("zeta", "tMap", 0, 0),
			makeNode("alpha", "tMap", 0, 0),
			makeNode("mid", "tMap", 0, 0),
		},
		nil,
	)

	candidates := Candidates(g, DefaultRegistry())

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, candidateIDs(candidates))
}

func TestCandidates_CarriesClassification(t *testing.T) {
	g := makeGraph(
		[]*flowgraph.Node{makeNode("fileinputdelimited_1", "tFileInputDelimited", 0, 0)},
		nil,
	)

	candidates := Candidates(g, DefaultRegistry())

	require.Len(t, candidates, 1)
	assert.Equal(t, CategoryInput, candidates[0].Category)
	assert.Equal(t, []string{"main"}, candidates[0].Ports.Outputs)
}

func TestIDSuffix(t *testing.T) {
	assert.Equal(t, 12, idSuffix("map_12"))
	assert.Equal(t, 0, idSuffix("map"))
	assert.Equal(t, 0, idSuffix("map_x"))
	assert.Equal(t, 3, idSuffix("a_1_3"))
}
