package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttribute_RoundTrip(t *testing.T) {
	base := &Record{
		Publisher: "acme", Name: "article", Version: "1.0.0",
		Type: "canon/type@1.0.0",
		Schema: map[string]*FieldDef{
			"title": {Type: "string", Required: true},
		},
	}
	tagged := &Record{
		Publisher: "acme", Name: "taggable", Version: "1.0.0",
		Type: "canon/type@1.0.0",
		Schema: map[string]*FieldDef{
			"tags": {Type: "array", Items: &FieldDef{Type: "string"}},
		},
	}
	instance := &Record{
		Publisher: "acme", Name: "post", Version: "1.0.0",
		Type:     "acme/article@1.0.0",
		Includes: []string{"acme/taggable@1.0.0"},
		Content: map[string]any{
			"title": "Hello",
			"tags":  []any{"go", "docs"},
		},
	}

	idx := NewTypeIndex([]*Record{base, tagged, instance})
	attr := idx.Attribute(instance)

	require.Len(t, attr.Core, 1)
	assert.Equal(t, "title", attr.Core[0].Name)

	require.Len(t, attr.Included, 1)
	assert.Equal(t, "acme/taggable@1.0.0", attr.Included[0].Ref.String())
	require.Len(t, attr.Included[0].Fields, 1)
	assert.Equal(t, "tags", attr.Included[0].Fields[0].Name)

	assert.Empty(t, attr.Unattributed)
}

func TestAttribute_UnknownFieldLeftUnattributed(t *testing.T) {
	// Fields matching no known schema are dropped from attribution
	// silently, not rejected.
	instance := &Record{
		Name: "post", Version: "1.0.0",
		Type:    "acme/article@1.0.0",
		Content: map[string]any{"mystery": 42},
	}
	idx := NewTypeIndex([]*Record{instance})
	attr := idx.Attribute(instance)

	assert.Empty(t, attr.Core)
	assert.Empty(t, attr.Included)
	require.Len(t, attr.Unattributed, 1)
	assert.Equal(t, "mystery", attr.Unattributed[0].Name)
}

func TestAttribute_FirstIncludeWins(t *testing.T) {
	first := &Record{
		Name: "a", Version: "1.0.0", Type: "canon/type@1.0.0",
		Schema: map[string]*FieldDef{"shared": {Type: "string"}},
	}
	second := &Record{
		Name: "b", Version: "1.0.0", Type: "canon/type@1.0.0",
		Schema: map[string]*FieldDef{"shared": {Type: "string"}},
	}
	instance := &Record{
		Name: "post", Version: "1.0.0",
		Type:     "acme/missing@1.0.0",
		Includes: []string{"acme/a@1.0.0", "acme/b@1.0.0"},
		Content:  map[string]any{"shared": "x"},
	}

	idx := NewTypeIndex([]*Record{first, second, instance})
	attr := idx.Attribute(instance)

	require.Len(t, attr.Included, 1)
	assert.Equal(t, "a", attr.Included[0].Ref.Name)
}

func TestChain_TerminatesAtMetaType(t *testing.T) {
	article := &Record{
		Publisher: "acme", Name: "article", Version: "1.0.0",
		Type: "canon/type@1.0.0",
	}
	post := &Record{
		Publisher: "acme", Name: "post", Version: "1.0.0",
		Type: "acme/article@1.0.0",
	}

	idx := NewTypeIndex([]*Record{article, post})
	chain, circular := idx.Chain(post)

	require.Len(t, chain, 2)
	assert.Equal(t, "acme/article@1.0.0", chain[0].String())
	assert.Equal(t, "canon/type@1.0.0", chain[1].String())
	assert.False(t, circular)
}

func TestChain_CycleFlagged(t *testing.T) {
	a := &Record{Publisher: "acme", Name: "a", Version: "1.0.0", Type: "acme/b@1.0.0"}
	b := &Record{Publisher: "acme", Name: "b", Version: "1.0.0", Type: "acme/a@1.0.0"}

	idx := NewTypeIndex([]*Record{a, b})
	chain, circular := idx.Chain(a)

	assert.True(t, circular)
	assert.LessOrEqual(t, len(chain), maxChainDepth)
}

func TestChain_DepthCapped(t *testing.T) {
	// A linear chain longer than the cap stops without a cycle flag.
	records := []*Record{
		{Publisher: "p", Name: "t0", Version: "1.0.0", Type: "p/t1@1.0.0"},
		{Publisher: "p", Name: "t1", Version: "1.0.0", Type: "p/t2@1.0.0"},
		{Publisher: "p", Name: "t2", Version: "1.0.0", Type: "p/t3@1.0.0"},
		{Publisher: "p", Name: "t3", Version: "1.0.0", Type: "p/t4@1.0.0"},
		{Publisher: "p", Name: "t4", Version: "1.0.0", Type: "p/t5@1.0.0"},
		{Publisher: "p", Name: "t5", Version: "1.0.0", Type: "p/t6@1.0.0"},
		{Publisher: "p", Name: "t6", Version: "1.0.0", Type: "p/t7@1.0.0"},
	}
	idx := NewTypeIndex(records)
	chain, circular := idx.Chain(records[0])

	assert.False(t, circular)
	assert.Len(t, chain, maxChainDepth)
}

func TestDerivedTypes(t *testing.T) {
	article := &Record{Publisher: "acme", Name: "article", Version: "1.0.0", Type: "canon/type@1.0.0"}
	post := &Record{Publisher: "acme", Name: "post", Version: "1.0.0", Type: "acme/article@1.0.0"}
	page := &Record{Publisher: "acme", Name: "page", Version: "1.0.0", Type: "acme/article@1.0.0"}

	idx := NewTypeIndex([]*Record{article, post, page})
	derived := idx.DerivedTypes(article)

	require.Len(t, derived, 2)
	assert.Equal(t, "page", derived[0].Name)
	assert.Equal(t, "post", derived[1].Name)
}
