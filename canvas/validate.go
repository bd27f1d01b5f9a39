package canvas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	// SeverityError indicates a document that the editor cannot safely operate on.
	SeverityError Severity = iota
	// SeverityWarning indicates a suspect construction the editor tolerates.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// Diagnostic represents a validation issue found in a flow document.
type Diagnostic struct {
	// Rule is the rule identifier (e.g., "edge_endpoints").
	Rule string
	// Severity is the severity level of the diagnostic.
	Severity Severity
	// Message is a human-readable description of the issue.
	Message string
	// NodeID is the related node ID (optional).
	NodeID string
	// Edge is the related edge as [from, to] (optional).
	Edge [2]string
	// Fix is a suggested fix for the issue (optional).
	Fix string
}

// LintRule is the interface for validation rules.
type LintRule interface {
	// Name returns the rule identifier.
	Name() string
	// Apply runs the rule against a document and returns any diagnostics.
	Apply(g *flowgraph.Graph, reg *ComponentRegistry) []Diagnostic
}

// BuiltInRules contains all built-in lint rules.
var BuiltInRules = []LintRule{
	&EdgeEndpointsRule{},
	&SelfLoopRule{},
	&DuplicateEdgeRule{},
	&EdgeIntoInputRule{},
	&EdgeOutOfOutputRule{},
	&InactiveNodeWiredRule{},
	&UnknownComponentRule{},
}

// Validate runs all built-in lint rules plus any extra rules against the document.
func Validate(g *flowgraph.Graph, reg *ComponentRegistry, extraRules ...LintRule) []Diagnostic {
	rules := make([]LintRule, 0, len(BuiltInRules)+len(extraRules))
	rules = append(rules, BuiltInRules...)
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(g, reg)...)
	}
	return diagnostics
}

// ValidateOrError runs validation and returns an error if any ERROR-severity diagnostics exist.
func ValidateOrError(g *flowgraph.Graph, reg *ComponentRegistry, extraRules ...LintRule) ([]Diagnostic, error) {
	diagnostics := Validate(g, reg, extraRules...)

	var errMsgs []string
	for _, d := range diagnostics {
		if d.Severity == SeverityError {
			errMsgs = append(errMsgs, fmt.Sprintf("%s: %s", d.Rule, d.Message))
		}
	}

	if len(errMsgs) > 0 {
		return diagnostics, errors.New("validation failed: " + strings.Join(errMsgs, "; "))
	}
	return diagnostics, nil
}

// ---------- Built-in Lint Rules ----------

// EdgeEndpointsRule checks that every edge references existing nodes.
type EdgeEndpointsRule struct{}

func (r *EdgeEndpointsRule) Name() string { return "edge_endpoints" }

func (r *EdgeEndpointsRule) Apply(g *flowgraph.Graph, _ *ComponentRegistry) []Diagnostic {
	var diags []Diagnostic
	for _, e := range g.Edges {
		for _, end := range []string{e.From, e.To} {
			if g.NodeByID(end) == nil {
				diags = append(diags, Diagnostic{
					Rule:     r.Name(),
					Severity: SeverityError,
					Message:  fmt.Sprintf("edge %s -> %s references missing node %q", e.From, e.To, end),
					Edge:     [2]string{e.From, e.To},
					Fix:      "remove the edge or restore the node",
				})
			}
		}
	}
	return diags
}

// SelfLoopRule checks that no edge connects a node to itself.
type SelfLoopRule struct{}

func (r *SelfLoopRule) Name() string { return "self_loop" }

func (r *SelfLoopRule) Apply(g *flowgraph.Graph, _ *ComponentRegistry) []Diagnostic {
	var diags []Diagnostic
	for _, e := range g.Edges {
		if e.From == e.To {
			diags = append(diags, Diagnostic{
				Rule:     r.Name(),
				Severity: SeverityError,
				Message:  fmt.Sprintf("node %q connects to itself", e.From),
				NodeID:   e.From,
				Edge:     [2]string{e.From, e.To},
				Fix:      "remove the self connection",
			})
		}
	}
	return diags
}

// DuplicateEdgeRule flags repeated (from,to) pairs.
type DuplicateEdgeRule struct{}

func (r *DuplicateEdgeRule) Name() string { return "duplicate_edge" }

func (r *DuplicateEdgeRule) Apply(g *flowgraph.Graph, _ *ComponentRegistry) []Diagnostic {
	seen := make(map[[2]string]bool, len(g.Edges))
	var diags []Diagnostic
	for _, e := range g.Edges {
		pair := [2]string{e.From, e.To}
		if seen[pair] {
			diags = append(diags, Diagnostic{
				Rule:     r.Name(),
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("duplicate connection %s -> %s", e.From, e.To),
				Edge:     pair,
				Fix:      "remove the duplicate connection",
			})
		}
		seen[pair] = true
	}
	return diags
}

// EdgeIntoInputRule flags connections feeding an input-category node.
// The manual protocol permits these, so they are warnings, not errors.
type EdgeIntoInputRule struct{}

func (r *EdgeIntoInputRule) Name() string { return "edge_into_input" }

func (r *EdgeIntoInputRule) Apply(g *flowgraph.Graph, reg *ComponentRegistry) []Diagnostic {
	var diags []Diagnostic
	for _, e := range g.Edges {
		target := g.NodeByID(e.To)
		if target == nil {
			continue
		}
		if reg.ClassifyNode(target).Category == CategoryInput {
			diags = append(diags, Diagnostic{
				Rule:     r.Name(),
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("input component %q has an upstream connection from %q", e.To, e.From),
				NodeID:   e.To,
				Edge:     [2]string{e.From, e.To},
			})
		}
	}
	return diags
}

// EdgeOutOfOutputRule flags connections originating from an output-category node.
type EdgeOutOfOutputRule struct{}

func (r *EdgeOutOfOutputRule) Name() string { return "edge_out_of_output" }

func (r *EdgeOutOfOutputRule) Apply(g *flowgraph.Graph, reg *ComponentRegistry) []Diagnostic {
	var diags []Diagnostic
	for _, e := range g.Edges {
		source := g.NodeByID(e.From)
		if source == nil {
			continue
		}
		if reg.ClassifyNode(source).Category == CategoryOutput {
			diags = append(diags, Diagnostic{
				Rule:     r.Name(),
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("output component %q has a downstream connection to %q", e.From, e.To),
				NodeID:   e.From,
				Edge:     [2]string{e.From, e.To},
			})
		}
	}
	return diags
}

// InactiveNodeWiredRule flags deactivated nodes that still carry connections.
type InactiveNodeWiredRule struct{}

func (r *InactiveNodeWiredRule) Name() string { return "inactive_node_wired" }

func (r *InactiveNodeWiredRule) Apply(g *flowgraph.Graph, _ *ComponentRegistry) []Diagnostic {
	var diags []Diagnostic
	for _, n := range g.Nodes {
		if n.Active {
			continue
		}
		if len(g.EdgesFrom(n.ID)) > 0 || len(g.EdgesTo(n.ID)) > 0 {
			diags = append(diags, Diagnostic{
				Rule:     r.Name(),
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("deactivated node %q still has connections", n.ID),
				NodeID:   n.ID,
				Fix:      "reactivate the node or disconnect it",
			})
		}
	}
	return diags
}

// UnknownComponentRule notes nodes whose type is absent from the catalog.
// Classification degrades to transform defaults, so this is informational.
type UnknownComponentRule struct{}

func (r *UnknownComponentRule) Name() string { return "unknown_component" }

func (r *UnknownComponentRule) Apply(g *flowgraph.Graph, reg *ComponentRegistry) []Diagnostic {
	var diags []Diagnostic
	for _, n := range g.Nodes {
		if _, ok := reg.components[NormalizeTypeKey(n.TypeKey())]; !ok {
			diags = append(diags, Diagnostic{
				Rule:     r.Name(),
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("node %q has unlisted component type %q", n.ID, n.TypeKey()),
				NodeID:   n.ID,
			})
		}
	}
	return diags
}
