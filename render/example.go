package render

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opencanon/canondocs/spec"
)

// Example synthesis depth limits. Recursion stops entirely at
// maxExampleDepth so self-referential schemas terminate; beyond
// requiredOnlyDepth only required object properties contribute, keeping
// output bounded.
const (
	maxExampleDepth   = 6
	requiredOnlyDepth = 3
)

// Canned literals for string formats. Fixed values keep synthesis
// byte-stable across runs.
var formatLiterals = map[string]string{
	"uri":       "https://example.com/resource",
	"email":     "user@example.com",
	"date":      "2024-01-15",
	"date-time": "2024-01-15T09:30:00Z",
}

// Example synthesizes one example value per schema field, in schema
// declaration form (field name to value).
func Example(schema map[string]*spec.FieldDef) map[string]any {
	if len(schema) == 0 {
		return nil
	}
	out := make(map[string]any, len(schema))
	for name, f := range schema {
		out[name] = exampleValue(f, 0)
	}
	return out
}

// ExampleYAML renders the synthesized example as a YAML block.
func ExampleYAML(schema map[string]*spec.FieldDef) string {
	example := Example(schema)
	if example == nil {
		return ""
	}
	data, err := yaml.Marshal(example)
	if err != nil {
		return ""
	}
	return strings.TrimRight(string(data), "\n") + "\n"
}

// exampleValue synthesizes a value for one field definition.
// Precedence: explicit example, then declared default, then a
// type-driven value.
func exampleValue(f *spec.FieldDef, depth int) any {
	if f == nil || depth > maxExampleDepth {
		return nil
	}
	if f.Example != nil {
		return f.Example
	}
	if f.Default != nil {
		return f.Default
	}
	if len(f.OneOf) > 0 {
		return exampleValue(f.OneOf[0], depth)
	}
	if len(f.AnyOf) > 0 {
		return exampleValue(f.AnyOf[0], depth)
	}

	switch f.Type {
	case "string":
		return exampleString(f)
	case "number", "integer":
		return exampleNumber(f)
	case "boolean":
		return true
	case "array":
		if f.Items == nil {
			return []any{}
		}
		return []any{exampleValue(f.Items, depth+1)}
	case "object":
		return exampleObject(f.Properties, depth+1)
	}
	return nil
}

func exampleString(f *spec.FieldDef) string {
	if len(f.Enum) > 0 {
		if s, ok := f.Enum[0].(string); ok {
			return s
		}
	}
	if literal, ok := formatLiterals[f.Format]; ok {
		return literal
	}
	return "example"
}

func exampleNumber(f *spec.FieldDef) any {
	switch {
	case f.Minimum != nil:
		return numberForType(f.Type, *f.Minimum)
	case f.Maximum != nil:
		return numberForType(f.Type, *f.Maximum)
	}
	return 1
}

func numberForType(fieldType string, v float64) any {
	if fieldType == "integer" {
		return int(v)
	}
	return v
}

func exampleObject(properties map[string]*spec.FieldDef, depth int) map[string]any {
	out := make(map[string]any)
	for name, prop := range properties {
		if depth > requiredOnlyDepth && (prop == nil || !prop.Required) {
			continue
		}
		out[name] = exampleValue(prop, depth)
	}
	return out
}
