package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aitools-engine/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Entries, 35)

	other, ok := c.Lookup(domain.OtherCategory)
	require.True(t, ok)
	assert.Equal(t, "other", other.Slug)

	cats := c.Categories()
	require.Len(t, cats, 35)
	assert.Zero(t, cats[0].Count)
	assert.Equal(t, c.Names()[0], cats[0].Name)
}

func TestValidateRejects(t *testing.T) {
	assert.Error(t, Catalog{}.Validate())

	dup := Catalog{Entries: []Entry{
		{Name: "A", Slug: "a"},
		{Name: "A", Slug: "b"},
		{Name: domain.OtherCategory, Slug: "other"},
	}}
	assert.ErrorContains(t, dup.Validate(), "duplicate category name")

	noOther := Catalog{Entries: []Entry{{Name: "A", Slug: "a"}}}
	assert.ErrorContains(t, noOther.Validate(), domain.OtherCategory)
}

func TestLoadFile(t *testing.T) {
	c, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Len(t, c.Entries, 35)

	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `[{"name":"Chatbots","slug":"chatbots","keywords":["chat"]},{"name":"Other","slug":"other"}]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	c, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chatbots", domain.OtherCategory}, c.Names())
	assert.Equal(t, 2, c.Entries[1].DisplayOrder)
	assert.NotEmpty(t, c.Subcategories)

	require.NoError(t, os.WriteFile(path, []byte(`{bad`), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}
