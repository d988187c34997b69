package render

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencanon/canondocs/spec"
)

// frontmatter is the document header consumed by the site generator.
type frontmatter struct {
	ID              string `yaml:"id"`
	Title           string `yaml:"title"`
	SidebarLabel    string `yaml:"sidebar_label"`
	SidebarPosition *int   `yaml:"sidebar_position,omitempty"`
}

// DocumentID returns the site identifier for one record version.
func DocumentID(rec *spec.Record) string {
	return rec.Name + "/" + rec.Version
}

// Document renders one record version as a self-contained markdown
// document with frontmatter. Every section degrades to empty output when
// its inputs are absent.
func Document(rec *spec.Record, group *spec.Group, idx *spec.TypeIndex) (string, error) {
	fm := frontmatter{
		ID:              DocumentID(rec),
		Title:           rec.Title(),
		SidebarLabel:    rec.Title() + " " + rec.Version,
		SidebarPosition: rec.PageOrder,
	}
	fmData, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal frontmatter: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(fmData)
	sb.WriteString("---\n\n")

	fmt.Fprintf(&sb, "# %s\n\n", rec.Title())

	writeIdentity(&sb, rec)
	writeVersionNotice(&sb, rec, group)
	writeLineage(&sb, rec, idx)
	writeMetadata(&sb, rec)
	writeSchema(&sb, rec, idx)
	writeFields(&sb, rec, idx)
	writeExample(&sb, rec)
	writeSourceFiles(&sb, rec)

	return sb.String(), nil
}

func writeIdentity(sb *strings.Builder, rec *spec.Record) {
	fmt.Fprintf(sb, "- **Publisher:** %s\n", rec.Publisher)
	fmt.Fprintf(sb, "- **Version:** %s\n", rec.Version)
	if rec.Canon != "" {
		fmt.Fprintf(sb, "- **Canon:** %s\n", rec.Canon)
	}
	if rec.Type != "" {
		fmt.Fprintf(sb, "- **Type:** `%s`\n", rec.Type)
	}
	if len(rec.Includes) > 0 {
		refs := make([]string, len(rec.Includes))
		for i, inc := range rec.Includes {
			refs[i] = "`" + inc + "`"
		}
		fmt.Fprintf(sb, "- **Includes:** %s\n", strings.Join(refs, ", "))
	}
	sb.WriteString("\n")
}

// writeVersionNotice tells the reader where this version stands in the
// group and links the alternatives.
func writeVersionNotice(sb *strings.Builder, rec *spec.Record, group *spec.Group) {
	if group == nil || group.Latest() == nil {
		return
	}
	latest := group.Latest()

	if latest.Version == rec.Version {
		fmt.Fprintf(sb, "This is the latest version of `%s`.", rec.Name)
		if stable := group.LatestStable(); stable != nil && stable.Version != rec.Version {
			fmt.Fprintf(sb, " The latest stable version is [%s](/%s).",
				stable.Version, DocumentID(stable))
		}
		sb.WriteString("\n\n")
	} else {
		fmt.Fprintf(sb, "This is an older version of `%s`. See the latest version [%s](/%s).\n\n",
			rec.Name, latest.Version, DocumentID(latest))
	}

	var others []string
	for _, r := range group.Records {
		if r.Version == rec.Version {
			continue
		}
		others = append(others, fmt.Sprintf("[%s](/%s)", r.Version, DocumentID(r)))
	}
	if len(others) > 0 {
		fmt.Fprintf(sb, "All versions: %s\n\n", strings.Join(others, ", "))
	}
}

func writeLineage(sb *strings.Builder, rec *spec.Record, idx *spec.TypeIndex) {
	if idx == nil || rec.Type == "" {
		return
	}
	chain, circular := idx.Chain(rec)
	if len(chain) == 0 {
		return
	}
	parts := make([]string, len(chain))
	for i, ref := range chain {
		parts[i] = "`" + ref.String() + "`"
	}
	sb.WriteString("Derives from: " + strings.Join(parts, " → "))
	if circular {
		sb.WriteString(" (circular reference detected)")
	}
	sb.WriteString("\n\n")
}

func writeMetadata(sb *strings.Builder, rec *spec.Record) {
	if description := rec.Description(); description != "" {
		sb.WriteString(DescriptionMarkdown(description))
		sb.WriteString("\n\n")
	}

	keys := make([]string, 0, len(rec.Metadata))
	for k := range rec.Metadata {
		if k == "title" || k == "description" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)

	sb.WriteString("## Metadata\n\n")
	for _, k := range keys {
		fmt.Fprintf(sb, "- **%s:** %v\n", k, rec.Metadata[k])
	}
	sb.WriteString("\n")
}

func writeSchema(sb *strings.Builder, rec *spec.Record, idx *spec.TypeIndex) {
	table := SchemaTable(rec.Schema)
	if table == "" {
		return
	}
	sb.WriteString("## Schema\n\n")
	sb.WriteString(table)
	sb.WriteString("\n")

	if idx != nil {
		if derived := idx.DerivedTypes(rec); len(derived) > 0 {
			sb.WriteString("### Known derived types\n\n")
			for _, d := range derived {
				fmt.Fprintf(sb, "- [`%s`](/%s)\n", d.Ref().String(), DocumentID(d))
			}
			sb.WriteString("\n")
		}
	}
}

// writeFields renders an instance record's content fields grouped by the
// type that defines them. Fields matching no known schema render without
// provenance.
func writeFields(sb *strings.Builder, rec *spec.Record, idx *spec.TypeIndex) {
	if idx == nil || len(rec.Content) == 0 {
		return
	}
	attr := idx.Attribute(rec)

	sb.WriteString("## Fields\n\n")

	if len(attr.Core) > 0 {
		fmt.Fprintf(sb, "### From `%s`\n\n", rec.Type)
		writeFieldList(sb, attr.Core)
	}
	for _, inc := range attr.Included {
		fmt.Fprintf(sb, "### From `%s`\n\n", inc.Ref.String())
		writeFieldList(sb, inc.Fields)
	}
	if len(attr.Unattributed) > 0 {
		sb.WriteString("### Additional fields\n\n")
		writeFieldList(sb, attr.Unattributed)
	}
}

func writeFieldList(sb *strings.Builder, fields []spec.AttributedField) {
	for _, f := range fields {
		fmt.Fprintf(sb, "- **%s:** %s\n", f.Name, formatFieldValue(f.Value))
	}
	sb.WriteString("\n")
}

// formatFieldValue keeps scalars inline and folds structured values into
// a compact YAML flow rendering.
func formatFieldValue(v any) string {
	switch v.(type) {
	case string, bool, int, int64, float64, nil:
		return fmt.Sprintf("%v", v)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return "\n\n  ```yaml\n  " +
		strings.ReplaceAll(strings.TrimRight(string(data), "\n"), "\n", "\n  ") +
		"\n  ```\n"
}

func writeExample(sb *strings.Builder, rec *spec.Record) {
	example := ExampleYAML(rec.Schema)
	if example == "" {
		return
	}
	sb.WriteString("## Example\n\n")
	sb.WriteString("```yaml\n")
	sb.WriteString(example)
	sb.WriteString("```\n\n")
}

func writeSourceFiles(sb *strings.Builder, rec *spec.Record) {
	if len(rec.SourceFiles) == 0 {
		return
	}
	names := make([]string, 0, len(rec.SourceFiles))
	for name := range rec.SourceFiles {
		names = append(names, name)
	}
	sort.Strings(names)

	sb.WriteString("## Source files\n\n")
	for _, name := range names {
		fmt.Fprintf(sb, "### %s\n\n", name)
		sb.WriteString("```\n")
		content := rec.SourceFiles[name]
		sb.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("```\n\n")
	}
}
