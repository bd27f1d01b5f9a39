package canvas

import (
	"fmt"

	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

// Guided join steps. The workflow moves forward only; Back re-enters the
// previous step without discarding collected answers.
const (
	StepInputMapping   = 1
	StepFanInSelection = 2
	StepFinalOutput    = 3
)

// GuidedJoin is the stepped manual workflow used when the candidate
// topology is too ambiguous for automatic connection. It accumulates the
// user's routing decisions and translates them into connections on
// completion. The value is transient: completion or cancellation discards
// it, and it never touches the graph until Complete.
type GuidedJoin struct {
	InputNodes     []string `json:"inputNodes"`
	TransformNodes []string `json:"transformNodes"`
	OutputNodes    []string `json:"outputNodes"`

	// InputMappings assigns each input candidate the transform it feeds.
	InputMappings map[string]string `json:"inputMappings"`

	// FanInUpstream and FanInDownstream record the step-two selection:
	// zero or more upstream transforms all feeding one downstream
	// transform.
	FanInUpstream   []string `json:"fanInUpstream,omitempty"`
	FanInDownstream string   `json:"fanInDownstream,omitempty"`

	// FinalOutput is the terminal node receiving the chain's output.
	FinalOutput string `json:"finalOutput,omitempty"`

	// Step is the current workflow step, 1..3.
	Step int `json:"step"`

	// Errors collects validation messages from the last failed Advance.
	Errors []string `json:"errors,omitempty"`
}

// NewGuidedJoin initializes the workflow from an ordered candidate set.
// When exactly one output candidate exists the final output is pre-filled.
func NewGuidedJoin(candidates []Candidate) *GuidedJoin {
	gj := &GuidedJoin{
		InputMappings: make(map[string]string),
		Step:          StepInputMapping,
	}
	for _, c := range candidates {
		switch c.Category {
		case CategoryInput:
			gj.InputNodes = append(gj.InputNodes, c.Node.ID)
		case CategoryOutput:
			gj.OutputNodes = append(gj.OutputNodes, c.Node.ID)
		default:
			gj.TransformNodes = append(gj.TransformNodes, c.Node.ID)
		}
	}
	if len(gj.OutputNodes) == 1 {
		gj.FinalOutput = gj.OutputNodes[0]
	}
	return gj
}

// AssignInput records that the given input candidate feeds the given
// transform candidate.
func (gj *GuidedJoin) AssignInput(input, transform string) error {
	if !contains(gj.InputNodes, input) {
		return fmt.Errorf("%q is not an input candidate", input)
	}
	if !contains(gj.TransformNodes, transform) {
		return fmt.Errorf("%q is not a transform candidate", transform)
	}
	gj.InputMappings[input] = transform
	return nil
}

// SetFanIn records the step-two selection: every upstream transform feeds
// the downstream transform.
func (gj *GuidedJoin) SetFanIn(upstream []string, downstream string) error {
	if downstream != "" && !contains(gj.TransformNodes, downstream) {
		return fmt.Errorf("%q is not a transform candidate", downstream)
	}
	for _, u := range upstream {
		if !contains(gj.TransformNodes, u) {
			return fmt.Errorf("%q is not a transform candidate", u)
		}
		if u == downstream {
			return fmt.Errorf("%q cannot feed itself", u)
		}
	}
	gj.FanInUpstream = append([]string(nil), upstream...)
	gj.FanInDownstream = downstream
	return nil
}

// SetFinalOutput records the terminal node for step three.
func (gj *GuidedJoin) SetFinalOutput(id string) {
	gj.FinalOutput = id
}

// Advance validates the current step and moves to the next. On validation
// failure it appends messages to Errors and stays put, returning false.
// The fan-in step is skipped when at most one transform candidate exists.
func (gj *GuidedJoin) Advance() bool {
	gj.Errors = nil
	switch gj.Step {
	case StepInputMapping:
		for _, input := range gj.InputNodes {
			if _, ok := gj.InputMappings[input]; !ok && len(gj.TransformNodes) > 0 {
				gj.Errors = append(gj.Errors, fmt.Sprintf("input %s has no target assigned", input))
			}
		}
		if len(gj.Errors) > 0 {
			return false
		}
		if len(gj.TransformNodes) <= 1 {
			gj.Step = StepFinalOutput
		} else {
			gj.Step = StepFanInSelection
		}
		return true

	case StepFanInSelection:
		if len(gj.TransformNodes) > 1 && gj.FanInDownstream == "" {
			gj.Errors = append(gj.Errors, "select the transform the upstream nodes feed into")
			return false
		}
		gj.Step = StepFinalOutput
		return true

	case StepFinalOutput:
		if gj.FinalOutput == "" {
			gj.Errors = append(gj.Errors, "select the final output node")
			return false
		}
		return true
	}
	return false
}

// Back re-enters the previous step. Collected answers are kept.
func (gj *GuidedJoin) Back() {
	if gj.Step > StepInputMapping {
		gj.Step--
		if gj.Step == StepFanInSelection && len(gj.TransformNodes) <= 1 {
			gj.Step = StepInputMapping
		}
	}
	gj.Errors = nil
}

// Complete translates the collected mappings into connections under the
// same validity rules as the auto-connector and returns the updated graph.
// The workflow must be on the final step with a valid final output.
func (gj *GuidedJoin) Complete(g *flowgraph.Graph, reg *ComponentRegistry) *JoinResult {
	if gj.Step != StepFinalOutput || !gj.Advance() {
		return &JoinResult{Status: JoinInsufficientCandidates, Graph: g}
	}

	var pairs [][2]string
	for _, input := range gj.InputNodes {
		if target, ok := gj.InputMappings[input]; ok {
			pairs = append(pairs, [2]string{input, target})
		} else {
			// No transforms to route through: inputs feed the final
			// output directly.
			pairs = append(pairs, [2]string{input, gj.FinalOutput})
		}
	}
	for _, upstream := range gj.FanInUpstream {
		pairs = append(pairs, [2]string{upstream, gj.FanInDownstream})
	}
	if tail := gj.tail(); tail != "" {
		pairs = append(pairs, [2]string{tail, gj.FinalOutput})
	}

	created := connectPairs(pairs, g, reg)
	if len(created) == 0 {
		return &JoinResult{Status: JoinNoNewConnections, Graph: g}
	}

	next := g.Clone()
	next.Edges = append(next.Edges, created...)
	return &JoinResult{Status: JoinSuccess, EdgesCreated: created, Graph: next}
}

// tail returns the transform that feeds the final output: the fan-in
// downstream when selected, otherwise the sole (or last) transform
// candidate. Empty when no transforms exist.
func (gj *GuidedJoin) tail() string {
	if gj.FanInDownstream != "" {
		return gj.FanInDownstream
	}
	if len(gj.TransformNodes) > 0 {
		return gj.TransformNodes[len(gj.TransformNodes)-1]
	}
	return ""
}

// connectPairs creates edges for each (from,to) pair, applying the edge
// validity rules against the existing edge set and the pairs already
// accepted in this run.
func connectPairs(pairs [][2]string, g *flowgraph.Graph, reg *ComponentRegistry) []*flowgraph.Edge {
	var created []*flowgraph.Edge
	accepted := make(map[[2]string]bool, len(pairs))
	for _, p := range pairs {
		from, to := p[0], p[1]
		if from == to {
			continue
		}
		target := g.NodeByID(to)
		if target == nil || reg.ClassifyNode(target).Category == CategoryInput {
			continue
		}
		source := g.NodeByID(from)
		if source == nil || reg.ClassifyNode(source).Category == CategoryOutput {
			continue
		}
		if g.HasEdge(from, to) || accepted[p] {
			continue
		}
		accepted[p] = true
		created = append(created, &flowgraph.Edge{
			Port: "main",
			From: from,
			To:   to,
			Kind: flowgraph.KindFlow,
		})
	}
	return created
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
