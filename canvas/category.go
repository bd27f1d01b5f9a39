package canvas

import "strings"

// Category classifies a component by its role in a flow. Input components
// produce data and accept no upstream connection, Output components consume
// data and originate none, Transform components do both.
type Category string

const (
	CategoryInput     Category = "input"
	CategoryTransform Category = "transform"
	CategoryOutput    Category = "output"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// Priority returns the chain-ordering rank: Input before Transform before
// Output.
func (c Category) Priority() int {
	switch c {
	case CategoryInput:
		return 0
	case CategoryTransform:
		return 1
	case CategoryOutput:
		return 2
	default:
		return 1
	}
}

// NormalizeTypeKey lowercases a raw component type and strips the single
// leading "t" of the vendor naming convention, so "tFileInputDelimited"
// and "fileinputdelimited" resolve to the same registry key.
func NormalizeTypeKey(raw string) string {
	key := strings.ToLower(raw)
	if len(key) > 1 && key[0] == 't' {
		key = key[1:]
	}
	return key
}
