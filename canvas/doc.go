// Package canvas implements the connection-inference core of the
// recdataprep editor.
//
// The centerpiece is Smart Join: given the current flow document, classify
// every node with no outgoing connection, order the resulting candidates
// (inputs, then transforms, then outputs, by numeric id suffix within each
// group), and either chain them into new connections automatically or,
// when the topology is ambiguous, hand back a GuidedJoin workflow that
// collects the user's routing decisions step by step.
//
// The package also carries the supporting editor machinery: the component
// registry and classifier, the collision-avoidance layout pass, the
// pointer-driven manual connection protocol, flow-document lint rules, the
// Editor store with its atomic commit discipline, and an HTTP surface for
// a canvas frontend.
package canvas
