package render

import (
	"fmt"
	"strings"

	"github.com/opencanon/canondocs/spec"
)

// IndexID is the site identifier of the index document.
const IndexID = "index"

// Index renders the overview document summarizing every specification
// group, in navigation order.
func Index(groups []*spec.Group) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString("id: " + IndexID + "\n")
	sb.WriteString("title: Specifications\n")
	sb.WriteString("sidebar_label: Overview\n")
	sb.WriteString("---\n\n")
	sb.WriteString("# Specifications\n\n")

	for _, g := range groups {
		latest := g.Latest()
		if latest == nil {
			continue
		}

		fmt.Fprintf(&sb, "## [%s](/%s)\n\n", latest.Title(), DocumentID(latest))

		if description := latest.Description(); description != "" {
			sb.WriteString(DescriptionMarkdown(description))
			sb.WriteString("\n\n")
		}

		fmt.Fprintf(&sb, "Latest version: [%s](/%s)", latest.Version, DocumentID(latest))
		if stable := g.LatestStable(); stable != nil && stable.Version != latest.Version {
			fmt.Fprintf(&sb, " · latest stable: [%s](/%s)", stable.Version, DocumentID(stable))
		}
		sb.WriteString("\n\n")

		if len(g.Records) > 1 {
			links := make([]string, len(g.Records))
			for i, r := range g.Records {
				links[i] = fmt.Sprintf("[%s](/%s)", r.Version, DocumentID(r))
			}
			fmt.Fprintf(&sb, "All versions: %s\n\n", strings.Join(links, ", "))
		}
	}

	return sb.String()
}
