// Package spec provides the specification record model: discovery of
// definition files on disk, parsing into records, version ordering,
// grouping, and type-hierarchy resolution.
package spec

// reservedKeys are the protocol-level top-level keys of a definition
// file. Everything else is instance content.
var reservedKeys = map[string]bool{
	"canon":      true,
	"type":       true,
	"metadata":   true,
	"includes":   true,
	"schema":     true,
	"page_order": true,
}

// Record is one version of one named specification.
type Record struct {
	// Publisher, Name and Version are derived from the record's
	// position in the source tree: publisher/name/version/canon.yaml.
	Publisher string
	Name      string
	Version   string

	// Canon is the protocol version tag from the definition file.
	Canon string

	// Type is the declared base type reference ("publisher/name@version").
	// Empty only for the meta-type record itself.
	Type string

	// Includes are composed type references, in declaration order.
	Includes []string

	// Metadata holds descriptive fields (title, description, license,
	// homepage, ...), all optional.
	Metadata map[string]any

	// Schema maps field name to definition when this record defines a type.
	Schema map[string]*FieldDef

	// Content holds every non-reserved top-level key: the record's own
	// data when it is an instance of some type.
	Content map[string]any

	// PageOrder overrides alphabetical placement in navigation when set.
	PageOrder *int

	// SourceFiles captures sibling files (filename to raw content) from
	// the record's directory for display.
	SourceFiles map[string]string

	// Dir is the absolute source directory, kept for diagnostics.
	Dir string
}

// FieldDef describes one schema field.
type FieldDef struct {
	Type        string               `yaml:"type"`
	Required    bool                 `yaml:"required"`
	Description string               `yaml:"description"`
	Format      string               `yaml:"format"`
	Pattern     string               `yaml:"pattern"`
	Enum        []any                `yaml:"enum"`
	Default     any                  `yaml:"default"`
	Example     any                  `yaml:"example"`
	Minimum     *float64             `yaml:"minimum"`
	Maximum     *float64             `yaml:"maximum"`
	Items       *FieldDef            `yaml:"items"`
	Properties  map[string]*FieldDef `yaml:"properties"`
	OneOf       []*FieldDef          `yaml:"oneOf"`
	AnyOf       []*FieldDef          `yaml:"anyOf"`
}

// IsTypeDefinition reports whether the record itself defines a type:
// either it is the meta-type (no declared type) or it derives directly
// from the meta-type.
func (r *Record) IsTypeDefinition() bool {
	if r.Type == "" {
		return true
	}
	ref, err := ParseRef(r.Type)
	if err != nil {
		return false
	}
	return ref.IsMetaType()
}

// TypeRef returns the parsed declared type reference, or false when the
// record has none (the meta-type) or it does not parse.
func (r *Record) TypeRef() (Ref, bool) {
	if r.Type == "" {
		return Ref{}, false
	}
	ref, err := ParseRef(r.Type)
	if err != nil {
		return Ref{}, false
	}
	return ref, true
}

// Ref returns the record's own reference.
func (r *Record) Ref() Ref {
	return Ref{Publisher: r.Publisher, Name: r.Name, Version: r.Version}
}

// Title returns the metadata title, falling back to the record name.
func (r *Record) Title() string {
	if t, ok := r.Metadata["title"].(string); ok && t != "" {
		return t
	}
	return r.Name
}

// Description returns the metadata description, or empty.
func (r *Record) Description() string {
	if d, ok := r.Metadata["description"].(string); ok {
		return d
	}
	return ""
}
