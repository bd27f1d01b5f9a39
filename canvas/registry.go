package canvas

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/phanisrikanth1989/recdataprep/flowgraph"
)

//go:embed components.yaml
var componentCatalog []byte

// Ports names a component's connection anchors.
type Ports struct {
	Inputs  []string `yaml:"inputs"`
	Outputs []string `yaml:"outputs"`
}

// Classification is the result of classifying a component type: its
// category and its named ports.
type Classification struct {
	Category Category `yaml:"category"`
	Ports    Ports    `yaml:",inline"`
}

// ComponentRegistry maps normalized type keys to classifications. It is
// immutable configuration data: built once, read for the life of the process.
type ComponentRegistry struct {
	components map[string]Classification
}

// NewComponentRegistry creates a registry from an explicit component table.
// Keys are normalized before storage so callers may use raw vendor names.
func NewComponentRegistry(components map[string]Classification) *ComponentRegistry {
	r := &ComponentRegistry{components: make(map[string]Classification, len(components))}
	for key, c := range components {
		r.components[NormalizeTypeKey(key)] = c
	}
	return r
}

// ParseRegistry decodes a YAML component catalog into a registry.
func ParseRegistry(src []byte) (*ComponentRegistry, error) {
	var components map[string]Classification
	if err := yaml.Unmarshal(src, &components); err != nil {
		return nil, fmt.Errorf("decoding component catalog: %w", err)
	}
	for key, c := range components {
		if c.Category != CategoryInput && c.Category != CategoryTransform && c.Category != CategoryOutput {
			return nil, fmt.Errorf("component %q: unknown category %q", key, c.Category)
		}
	}
	return NewComponentRegistry(components), nil
}

// DefaultRegistry returns the registry built from the embedded catalog.
// The embedded catalog is validated at build time by tests, so decoding
// cannot fail here.
func DefaultRegistry() *ComponentRegistry {
	r, err := ParseRegistry(componentCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded component catalog invalid: %v", err))
	}
	return r
}

// Classify resolves a raw component type. Classification is total: unknown
// types default to Transform with a single main port in each direction.
func (r *ComponentRegistry) Classify(rawType string) Classification {
	if c, ok := r.components[NormalizeTypeKey(rawType)]; ok {
		if len(c.Ports.Inputs) == 0 && c.Category != CategoryInput {
			c.Ports.Inputs = []string{"main"}
		}
		if len(c.Ports.Outputs) == 0 && c.Category != CategoryOutput {
			c.Ports.Outputs = []string{"main"}
		}
		return c
	}
	return Classification{
		Category: CategoryTransform,
		Ports:    Ports{Inputs: []string{"main"}, Outputs: []string{"main"}},
	}
}

// ClassifyNode resolves a node via its type key (original vendor type when
// present, plain type otherwise).
func (r *ComponentRegistry) ClassifyNode(n *flowgraph.Node) Classification {
	return r.Classify(n.TypeKey())
}

// Category returns just the category for a raw component type.
func (r *ComponentRegistry) Category(rawType string) Category {
	return r.Classify(rawType).Category
}
