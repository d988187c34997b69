package spec

import (
	"fmt"
	"strings"
)

// Meta-type identity. The meta-type is the one record with no declared type;
// every derives-from chain terminates at it.
const (
	MetaTypePublisher = "canon"
	MetaTypeName      = "type"
)

// Ref is a parsed type reference of the form "publisher/name@version".
type Ref struct {
	Publisher string
	Name      string
	Version   string
}

// ParseRef parses a "publisher/name@version" reference string.
// All three parts are required.
func ParseRef(s string) (Ref, error) {
	slash := strings.Index(s, "/")
	if slash <= 0 {
		return Ref{}, fmt.Errorf("invalid type reference %q: missing publisher", s)
	}
	at := strings.LastIndex(s, "@")
	if at <= slash+1 || at == len(s)-1 {
		return Ref{}, fmt.Errorf("invalid type reference %q: missing version", s)
	}
	return Ref{
		Publisher: s[:slash],
		Name:      s[slash+1 : at],
		Version:   s[at+1:],
	}, nil
}

// String returns the canonical "publisher/name@version" form.
func (r Ref) String() string {
	return fmt.Sprintf("%s/%s@%s", r.Publisher, r.Name, r.Version)
}

// Key returns the "name@version" lookup key used by the type index.
func (r Ref) Key() string {
	return r.Name + "@" + r.Version
}

// IsMetaType reports whether the reference points at the meta-type,
// regardless of version.
func (r Ref) IsMetaType() bool {
	return r.Publisher == MetaTypePublisher && r.Name == MetaTypeName
}
