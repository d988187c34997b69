package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opencanon/canondocs/spec"
)

func TestIndex(t *testing.T) {
	groups := spec.GroupRecords([]*spec.Record{
		{Name: "registry", Version: "2.0.0-rc1",
			Metadata: map[string]any{"title": "Registry", "description": "The registry spec."}},
		{Name: "registry", Version: "1.0.0"},
		{Name: "article", Version: "1.0.0"},
	})

	doc := Index(groups)

	assert.True(t, strings.HasPrefix(doc, "---\n"))
	assert.Contains(t, doc, "id: index")
	assert.Contains(t, doc, "# Specifications")
	assert.Contains(t, doc, "## [Registry](/registry/2.0.0-rc1)")
	assert.Contains(t, doc, "The registry spec.")
	assert.Contains(t, doc, "Latest version: [2.0.0-rc1](/registry/2.0.0-rc1)")
	// The latest is a prerelease, so the stable version is called out.
	assert.Contains(t, doc, "latest stable: [1.0.0](/registry/1.0.0)")
	assert.Contains(t, doc, "All versions: [2.0.0-rc1](/registry/2.0.0-rc1), [1.0.0](/registry/1.0.0)")
	assert.Contains(t, doc, "## [article](/article/1.0.0)")
}
