package spec

import "sort"

// maxChainDepth caps derives-from traversal independently of cycle
// detection.
const maxChainDepth = 5

// TypeIndex resolves type references against the full record set. It is
// rebuilt on every run and discarded after rendering.
type TypeIndex struct {
	byKey map[string]*Record
}

// NewTypeIndex builds a lookup over all ingested records, keyed by
// "name@version".
func NewTypeIndex(records []*Record) *TypeIndex {
	idx := &TypeIndex{byKey: make(map[string]*Record, len(records))}
	for _, r := range records {
		idx.byKey[r.Ref().Key()] = r
	}
	return idx
}

// Resolve returns the record a reference points at, or nil when the
// referenced type is not part of the ingested set.
func (idx *TypeIndex) Resolve(ref Ref) *Record {
	return idx.byKey[ref.Key()]
}

// Chain walks the derives-from chain starting at the record's declared
// type. It stops at the meta-type, at an unresolvable reference, at the
// depth cap, or on a repeated reference, in which case circular is true.
func (idx *TypeIndex) Chain(rec *Record) (chain []Ref, circular bool) {
	visited := map[string]bool{rec.Ref().Key(): true}

	ref, ok := rec.TypeRef()
	for hops := 0; ok && hops < maxChainDepth; hops++ {
		if visited[ref.Key()] {
			return chain, true
		}
		visited[ref.Key()] = true
		chain = append(chain, ref)

		if ref.IsMetaType() {
			return chain, false
		}
		parent := idx.Resolve(ref)
		if parent == nil {
			return chain, false
		}
		ref, ok = parent.TypeRef()
	}
	return chain, false
}

// DerivedTypes returns every type-definition record whose declared type
// points at the given record, sorted by name then version for stable
// output.
func (idx *TypeIndex) DerivedTypes(of *Record) []*Record {
	target := of.Ref().Key()
	var derived []*Record
	for _, r := range idx.byKey {
		ref, ok := r.TypeRef()
		if ok && ref.Key() == target {
			derived = append(derived, r)
		}
	}
	sort.Slice(derived, func(i, j int) bool {
		if derived[i].Name != derived[j].Name {
			return derived[i].Name < derived[j].Name
		}
		return derived[i].Version < derived[j].Version
	})
	return derived
}

// AttributedField is one instance field with its resolved provenance.
type AttributedField struct {
	Name  string
	Value any
}

// Attribution groups an instance record's content fields by the type
// whose schema defines them.
type Attribution struct {
	// Core fields come from the record's declared type.
	Core []AttributedField
	// Included maps each composed type reference (in declaration order)
	// to the fields it contributes.
	Included []IncludedFields
	// Unattributed fields match no known schema and render without
	// provenance.
	Unattributed []AttributedField
}

// IncludedFields are the fields contributed by one composed type.
type IncludedFields struct {
	Ref    Ref
	Fields []AttributedField
}

// Attribute resolves which type each of an instance record's content
// fields originates from: the declared type's schema first, then each
// included type in declaration order. Fields matching no schema are left
// unattributed.
func (idx *TypeIndex) Attribute(rec *Record) *Attribution {
	attr := &Attribution{}

	var baseSchema map[string]*FieldDef
	if ref, ok := rec.TypeRef(); ok && !ref.IsMetaType() {
		if base := idx.Resolve(ref); base != nil {
			baseSchema = base.Schema
		}
	}

	type includeEntry struct {
		ref    Ref
		schema map[string]*FieldDef
		fields *[]AttributedField
	}
	var includes []includeEntry
	for _, inc := range rec.Includes {
		ref, err := ParseRef(inc)
		if err != nil {
			continue
		}
		entry := includeEntry{ref: ref}
		if r := idx.Resolve(ref); r != nil {
			entry.schema = r.Schema
		}
		includes = append(includes, entry)
	}
	included := make([]IncludedFields, len(includes))
	for i := range includes {
		included[i].Ref = includes[i].ref
		includes[i].fields = &included[i].Fields
	}

	names := make([]string, 0, len(rec.Content))
	for name := range rec.Content {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		field := AttributedField{Name: name, Value: rec.Content[name]}
		if _, ok := baseSchema[name]; ok {
			attr.Core = append(attr.Core, field)
			continue
		}
		matched := false
		for i := range includes {
			if _, ok := includes[i].schema[name]; ok {
				*includes[i].fields = append(*includes[i].fields, field)
				matched = true
				break
			}
		}
		if !matched {
			attr.Unattributed = append(attr.Unattributed, field)
		}
	}

	for _, inc := range included {
		if len(inc.Fields) > 0 {
			attr.Included = append(attr.Included, inc)
		}
	}
	return attr
}
