package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTypeKey_StripsVendorPrefix(t *testing.T) {
	assert.Equal(t, "fileinputdelimited", NormalizeTypeKey("tFileInputDelimited"))
	assert.Equal(t, "fileinputdelimited", NormalizeTypeKey("fileinputdelimited"))
	assert.Equal(t, "map", NormalizeTypeKey("tMap"))
}

func TestNormalizeTypeKey_SingleCharacterKept(t *testing.T) {
	// A bare "t" has no characters after the prefix and stays intact.
	assert.Equal(t, "t", NormalizeTypeKey("t"))
	assert.Equal(t, "t", NormalizeTypeKey("T"))
}

func TestDefaultRegistry_EmbeddedCatalogDecodes(t *testing.T) {
	reg := DefaultRegistry()
	require.NotNil(t, reg)

	assert.Equal(t, CategoryInput, reg.Category("tFileInputDelimited"))
	assert.Equal(t, CategoryTransform, reg.Category("tMap"))
	assert.Equal(t, CategoryOutput, reg.Category("tFileOutputDelimited"))
}

func TestClassify_VendorAndPlainNamesMatch(t *testing.T) {
	reg := DefaultRegistry()

	vendor := reg.Classify("tFileInputDelimited")
	plain := reg.Classify("fileinputdelimited")

	assert.Equal(t, vendor, plain)
	assert.Equal(t, CategoryInput, vendor.Category)
}

func TestClassify_UnknownTypeDefaultsToTransform(t *testing.T) {
	reg := DefaultRegistry()

	c := reg.Classify("tCompletelyUnknownWidget")

	assert.Equal(t, CategoryTransform, c.Category)
	assert.Equal(t, []string{"main"}, c.Ports.Inputs)
	assert.Equal(t, []string{"main"}, c.Ports.Outputs)
}

func TestClassify_PortNamesFromCatalog(t *testing.T) {
	reg := DefaultRegistry()

	c := reg.Classify("tFilterRow")
	assert.Equal(t, []string{"filter", "reject"}, c.Ports.Outputs)

	c = reg.Classify("tJoin")
	assert.Equal(t, []string{"main", "lookup"}, c.Ports.Inputs)
}

func TestClassify_InputComponentsHaveNoInputPorts(t *testing.T) {
	reg := DefaultRegistry()

	c := reg.Classify("tFileInputDelimited")
	assert.Empty(t, c.Ports.Inputs)
	assert.Equal(t, []string{"main"}, c.Ports.Outputs)
}

func TestParseRegistry_RejectsUnknownCategory(t *testing.T) {
	_, err := ParseRegistry([]byte("widget:\n  category: sideways\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestNewComponentRegistry_NormalizesKeys(t *testing.T) {
	reg := NewComponentRegistry(map[string]Classification{
		"tCustomReader": {Category: CategoryInput},
	})

	assert.Equal(t, CategoryInput, reg.Category("customreader"))
	assert.Equal(t, CategoryInput, reg.Category("tCustomReader"))
}

func TestCategoryPriority_Ordering(t *testing.T) {
	assert.Less(t, CategoryInput.Priority(), CategoryTransform.Priority())
	assert.Less(t, CategoryTransform.Priority(), CategoryOutput.Priority())
}
