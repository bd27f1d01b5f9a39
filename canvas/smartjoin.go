package canvas

import "github.com/phanisrikanth1989/recdataprep/flowgraph"

// maxAutoCandidates is the largest candidate set the auto-connector will
// chain without switching to the guided workflow.
const maxAutoCandidates = 5

// JoinStatus classifies the outcome of a Smart Join invocation.
type JoinStatus string

const (
	// JoinSuccess means at least one new connection was created.
	JoinSuccess JoinStatus = "success"

	// JoinNoNewConnections means the run was valid but every candidate
	// pair was already connected or skipped by the edge rules. Not an
	// error; callers surface it as feedback.
	JoinNoNewConnections JoinStatus = "no_new_connections"

	// JoinInsufficientCandidates means the automatic path's precondition
	// failed: fewer than two unconnected nodes, or no input or output
	// among them to anchor the chain. The graph is unchanged.
	JoinInsufficientCandidates JoinStatus = "insufficient_candidates"

	// JoinAmbiguous means the topology is too ambiguous to connect
	// automatically; the result carries a guided join for the caller to
	// drive instead.
	JoinAmbiguous JoinStatus = "ambiguous"
)

// JoinResult is the outcome of a Smart Join invocation.
type JoinResult struct {
	Status JoinStatus

	// EdgesCreated lists the new connections, in chain order. Empty
	// unless Status is JoinSuccess.
	EdgesCreated []*flowgraph.Edge

	// Graph is the updated document. It equals the input graph (same
	// edge set) for every status except JoinSuccess.
	Graph *flowgraph.Graph

	// Guided is the initialized guided workflow when Status is
	// JoinAmbiguous, nil otherwise.
	Guided *GuidedJoin
}

// Ambiguous reports whether a candidate set is too ambiguous for automatic
// connection: more than five candidates, or more than one input, or more
// than one output.
func Ambiguous(candidates []Candidate) bool {
	inputs, _, outputs := countByCategory(candidates)
	return len(candidates) > maxAutoCandidates || inputs > 1 || outputs > 1
}

// SmartJoin classifies the unconnected nodes of g and either chains them
// automatically or hands back a guided workflow. The input graph is never
// mutated; on success the result carries a new graph whose edge set is the
// old one plus the created connections.
func SmartJoin(g *flowgraph.Graph, reg *ComponentRegistry) *JoinResult {
	candidates := Candidates(g, reg)

	if Ambiguous(candidates) {
		return &JoinResult{
			Status: JoinAmbiguous,
			Graph:  g,
			Guided: NewGuidedJoin(candidates),
		}
	}

	// The automatic path needs at least two candidates and a chain
	// endpoint to anchor on. A transform-only set has no head or tail to
	// infer from and is reported as insufficient rather than guessed at.
	inputs, _, outputs := countByCategory(candidates)
	if len(candidates) < 2 || (inputs == 0 && outputs == 0) {
		return &JoinResult{Status: JoinInsufficientCandidates, Graph: g}
	}

	created := connectChain(candidates, g)
	if len(created) == 0 {
		return &JoinResult{Status: JoinNoNewConnections, Graph: g}
	}

	next := g.Clone()
	next.Edges = append(next.Edges, created...)
	return &JoinResult{Status: JoinSuccess, EdgesCreated: created, Graph: next}
}

// connectChain builds the linear chain over consecutive candidate pairs,
// applying the edge validity rules: nothing feeds an input node, an output
// node originates nothing, and existing (from,to) pairs are not duplicated.
func connectChain(candidates []Candidate, g *flowgraph.Graph) []*flowgraph.Edge {
	var created []*flowgraph.Edge
	for i := 0; i+1 < len(candidates); i++ {
		source, target := candidates[i], candidates[i+1]
		if target.Category == CategoryInput {
			continue
		}
		if source.Category == CategoryOutput {
			continue
		}
		if g.HasEdge(source.Node.ID, target.Node.ID) {
			continue
		}
		created = append(created, &flowgraph.Edge{
			Port: "main",
			From: source.Node.ID,
			To:   target.Node.ID,
			Kind: flowgraph.KindFlow,
		})
	}
	return created
}
