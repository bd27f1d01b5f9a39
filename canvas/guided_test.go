package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

// guidedFixture builds the canonical ambiguous flow: two inputs, two
// transforms, one output, nothing connected.
func guidedFixture() (*flowgraph.Graph, *GuidedJoin) {
	g := makeGraph(
		[]*flowgraph.Node{
			makeNode("fileinputdelimited_1", "tFileInputDelimited", 0, 0),
			makeNode("fileinputexcel_2", "tFileInputExcel", 0, 100),
			makeNode("map_3", "tMap", 200, 0),
			makeNode("join_4", "tJoin", 200, 100),
			makeNode("fileoutputdelimited_5", "tFileOutputDelimited", 400, 0),
		},
		nil,
	)
	result := SmartJoin(g, DefaultRegistry())
	return g, result.Guided
}

func TestNewGuidedJoin_PartitionsCandidates(t *testing.T) {
	_, gj := guidedFixture()
	require.NotNil(t, gj)

	assert.Equal(t, []string{"fileinputdelimited_1", "fileinputexcel_2"}, gj.InputNodes)
	assert.Equal(t, []string{"map_3", "join_4"}, gj.TransformNodes)
	assert.Equal(t, []string{"fileoutputdelimited_5"}, gj.OutputNodes)
	assert.Equal(t, StepInputMapping, gj.Step)
}

func TestNewGuidedJoin_PrefillsSoleOutput(t *testing.T) {
	_, gj := guidedFixture()

	assert.Equal(t, "fileoutputdelimited_5", gj.FinalOutput)
}

func TestGuidedJoin_AdvanceBlockedUntilInputsMapped(t *testing.T) {
	_, gj := guidedFixture()

	ok := gj.Advance()

	assert.False(t, ok)
	assert.Equal(t, StepInputMapping, gj.Step)
	require.Len(t, gj.Errors, 2)
	assert.Contains(t, gj.Errors[0], "fileinputdelimited_1")
}

func TestGuidedJoin_AssignInputValidatesCandidates(t *testing.T) {
	_, gj := guidedFixture()

	assert.Error(t, gj.AssignInput("nope", "map_3"))
	assert.Error(t, gj.AssignInput("fileinputdelimited_1", "nope"))
	assert.NoError(t, gj.AssignInput("fileinputdelimited_1", "map_3"))
}

func TestGuidedJoin_FullWorkflow(t *testing.T) {
	g, gj := guidedFixture()

	require.NoError(t, gj.AssignInput("fileinputdelimited_1", "map_3"))
	require.NoError(t, gj.AssignInput("fileinputexcel_2", "join_4"))
	require.True(t, gj.Advance())
	assert.Equal(t, StepFanInSelection, gj.Step)

	require.NoError(t, gj.SetFanIn([]string{"map_3"}, "join_4"))
	require.True(t, gj.Advance())
	assert.Equal(t, StepFinalOutput, gj.Step)

	result := gj.Complete(g, DefaultRegistry())

	require.Equal(t, JoinSuccess, result.Status)
	assert.True(t, result.Graph.HasEdge("fileinputdelimited_1", "map_3"))
	assert.True(t, result.Graph.HasEdge("fileinputexcel_2", "join_4"))
	assert.True(t, result.Graph.HasEdge("map_3", "join_4"))
	assert.True(t, result.Graph.HasEdge("join_4", "fileoutputdelimited_5"))
	// The source document is untouched until the editor commits.
	assert.Empty(t, g.Edges)
}

func TestGuidedJoin_FanInStepRequiresDownstream(t *testing.T) {
	_, gj := guidedFixture()
	require.NoError(t, gj.AssignInput("fileinputdelimited_1", "map_3"))
	require.NoError(t, gj.AssignInput("fileinputexcel_2", "join_4"))
	require.True(t, gj.Advance())

	ok := gj.Advance()

	assert.False(t, ok)
	assert.Equal(t, StepFanInSelection, gj.Step)
	assert.NotEmpty(t, gj.Errors)
}

func TestGuidedJoin_FanInRejectsSelfFeed(t *testing.T) {
	_, gj := guidedFixture()

	err := gj.SetFanIn([]string{"join_4"}, "join_4")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot feed itself")
}

func TestGuidedJoin_SingleTransformSkipsFanIn(t *testing.T) {
	g := makeGraph(
		[]*flowgraph.Node{
			makeNode("fileinputdelimited_1", "tFileInputDelimited", 0, 0),
			makeNode("fileinputexcel_2", "tFileInputExcel", 0, 100),
			makeNode("map_3", "tMap", 200, 0),
			makeNode("fileoutputdelimited_4", "tFileOutputDelimited", 400, 0),
		},
		nil,
	)
	result := SmartJoin(g, DefaultRegistry())
	require.Equal(t, JoinAmbiguous, result.Status)
	gj := result.Guided

	require.NoError(t, gj.AssignInput("fileinputdelimited_1", "map_3"))
	require.NoError(t, gj.AssignInput("fileinputexcel_2", "map_3"))
	require.True(t, gj.Advance())

	assert.Equal(t, StepFinalOutput, gj.Step)
}

func TestGuidedJoin_CompletionAppliesEdgeRules(t *testing.T) {
	g, gj := guidedFixture()
	// Pre-connect one mapping; completion must not duplicate it.
	g.Edges = append(g.Edges, makeEdge("fileinputdelimited_1", "map_3"))

	require.NoError(t, gj.AssignInput("fileinputdelimited_1", "map_3"))
	require.NoError(t, gj.AssignInput("fileinputexcel_2", "join_4"))
	require.True(t, gj.Advance())
	require.NoError(t, gj.SetFanIn([]string{"map_3"}, "join_4"))
	require.True(t, gj.Advance())

	result := gj.Complete(g, DefaultRegistry())

	require.Equal(t, JoinSuccess, result.Status)
	count := 0
	for _, e := range result.Graph.Edges {
		if e.From == "fileinputdelimited_1" && e.To == "map_3" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGuidedJoin_NoTransforms_InputsFeedOutputDirectly(t *testing.T) {
	g := makeGraph(
		[]*flowgraph.Node{
			makeNode("fileinputdelimited_1", "tFileInputDelimited", 0, 0),
			makeNode("fileinputexcel_2", "tFileInputExcel", 0, 100),
			makeNode("fileoutputdelimited_3", "tFileOutputDelimited", 400, 0),
		},
		nil,
	)
	result := SmartJoin(g, DefaultRegistry())
	require.Equal(t, JoinAmbiguous, result.Status)
	gj := result.Guided

	// No transforms: step one passes vacuously and fan-in is skipped.
	require.True(t, gj.Advance())
	assert.Equal(t, StepFinalOutput, gj.Step)

	done := gj.Complete(g, DefaultRegistry())

	require.Equal(t, JoinSuccess, done.Status)
	assert.True(t, done.Graph.HasEdge("fileinputdelimited_1", "fileoutputdelimited_3"))
	assert.True(t, done.Graph.HasEdge("fileinputexcel_2", "fileoutputdelimited_3"))
}

func TestGuidedJoin_Back(t *testing.T) {
	_, gj := guidedFixture()
	require.NoError(t, gj.AssignInput("fileinputdelimited_1", "map_3"))
	require.NoError(t, gj.AssignInput("fileinputexcel_2", "join_4"))
	require.True(t, gj.Advance())

	gj.Back()

	assert.Equal(t, StepInputMapping, gj.Step)
	// Collected answers survive re-entry.
	assert.Len(t, gj.InputMappings, 2)
}
