package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRef(t *testing.T) {
	ref, err := ParseRef("canon/type@1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "canon", ref.Publisher)
	assert.Equal(t, "type", ref.Name)
	assert.Equal(t, "1.0.0", ref.Version)
	assert.Equal(t, "canon/type@1.0.0", ref.String())
	assert.Equal(t, "type@1.0.0", ref.Key())
	assert.True(t, ref.IsMetaType())
}

func TestParseRef_Invalid(t *testing.T) {
	for _, s := range []string{"", "name@1.0.0", "pub/name", "pub/name@", "/name@1.0.0"} {
		_, err := ParseRef(s)
		assert.Error(t, err, "expected error for %q", s)
	}
}

func TestIsMetaType_AnyVersion(t *testing.T) {
	ref, err := ParseRef("canon/type@2.1.0")
	require.NoError(t, err)
	assert.True(t, ref.IsMetaType())

	other, err := ParseRef("acme/type@1.0.0")
	require.NoError(t, err)
	assert.False(t, other.IsMetaType())
}
