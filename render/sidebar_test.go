package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencanon/canondocs/spec"
)

func intPtr(i int) *int { return &i }

func sidebarGroups() []*spec.Group {
	return spec.GroupRecords([]*spec.Record{
		{Name: "registry", Version: "1.0.0", PageOrder: intPtr(2),
			Metadata: map[string]any{"title": "Registry"}},
		{Name: "registry", Version: "0.9.0"},
		{Name: "article", Version: "1.0.0",
			Metadata: map[string]any{"title": "Article"}},
	})
}

func TestSidebar_OverviewFirstThenGroupOrder(t *testing.T) {
	entries := Sidebar(sidebarGroups())

	require.Len(t, entries, 3)
	assert.Equal(t, SidebarEntry{ID: "index", Label: "Overview"}, entries[0])
	// registry carries page_order 2 and sorts before the alphabetical rest.
	assert.Equal(t, SidebarEntry{ID: "registry/1.0.0", Label: "Registry"}, entries[1])
	assert.Equal(t, SidebarEntry{ID: "article/1.0.0", Label: "Article"}, entries[2])
}

func TestSidebarJSON_RoundTrips(t *testing.T) {
	data, err := SidebarJSON(sidebarGroups())
	require.NoError(t, err)

	var entries []SidebarEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Equal(t, Sidebar(sidebarGroups()), entries)
}
