package render

import (
	"encoding/json"
	"fmt"

	"github.com/opencanon/canondocs/spec"
)

// SidebarEntry is one navigation item consumed by the site generator.
type SidebarEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Sidebar builds the navigation structure: the fixed Overview entry
// first, then each group's latest version in group order.
func Sidebar(groups []*spec.Group) []SidebarEntry {
	entries := []SidebarEntry{{ID: IndexID, Label: "Overview"}}
	for _, g := range groups {
		latest := g.Latest()
		if latest == nil {
			continue
		}
		entries = append(entries, SidebarEntry{
			ID:    DocumentID(latest),
			Label: latest.Title(),
		})
	}
	return entries
}

// SidebarJSON renders the navigation structure as the JSON artifact the
// site generator reads.
func SidebarJSON(groups []*spec.Group) ([]byte, error) {
	data, err := json.MarshalIndent(Sidebar(groups), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sidebar: %w", err)
	}
	return append(data, '\n'), nil
}
