package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opencanon/canondocs/spec"
)

// FormatType renders a field definition's type with its annotations:
// array element types, enum values, and format/pattern constraints.
func FormatType(f *spec.FieldDef) string {
	if f == nil {
		return ""
	}

	base := f.Type
	switch {
	case len(f.OneOf) > 0:
		return alternativesType("one of", f.OneOf)
	case len(f.AnyOf) > 0:
		return alternativesType("any of", f.AnyOf)
	case base == "array":
		if f.Items != nil {
			return "array of " + FormatType(f.Items)
		}
		return "array"
	}

	var annotations []string
	if len(f.Enum) > 0 {
		values := make([]string, len(f.Enum))
		for i, v := range f.Enum {
			values[i] = fmt.Sprintf("`%v`", v)
		}
		annotations = append(annotations, "enum: "+strings.Join(values, ", "))
	}
	if f.Format != "" {
		annotations = append(annotations, "format: "+f.Format)
	}
	if f.Pattern != "" {
		annotations = append(annotations, "pattern: `"+f.Pattern+"`")
	}

	if len(annotations) == 0 {
		return base
	}
	return base + " (" + strings.Join(annotations, "; ") + ")"
}

func alternativesType(label string, alts []*spec.FieldDef) string {
	parts := make([]string, len(alts))
	for i, alt := range alts {
		parts[i] = FormatType(alt)
	}
	return label + ": " + strings.Join(parts, " | ")
}

// SchemaTable renders a markdown table over a schema's fields, sorted by
// name. Empty schemas render nothing.
func SchemaTable(schema map[string]*spec.FieldDef) string {
	if len(schema) == 0 {
		return ""
	}

	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("| Property | Type | Required | Description |\n")
	sb.WriteString("|----------|------|----------|-------------|\n")
	for _, name := range names {
		f := schema[name]
		if f == nil {
			// A bare "name:" entry parses to a nil definition; render it
			// as an empty one instead of failing the record.
			f = &spec.FieldDef{}
		}
		required := "no"
		if f.Required {
			required = "yes"
		}
		description := strings.ReplaceAll(f.Description, "\n", " ")
		fmt.Fprintf(&sb, "| `%s` | %s | %s | %s |\n",
			name, FormatType(f), required, description)
	}
	return sb.String()
}
