package entities

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Kind is the entity type tag.
type Kind string

// Known entity kinds.
const (
	KindItem     Kind = "item"
	KindProperty Kind = "property"
)

type kindGrammar struct {
	prefix  string
	pattern *regexp.Regexp
}

// grammars holds the serialization grammar of every known kind.
// Serializations are matched after lower-casing.
var grammars = map[Kind]kindGrammar{
	KindItem:     {prefix: "q", pattern: regexp.MustCompile(`^q[1-9][0-9]*$`)},
	KindProperty: {prefix: "p", pattern: regexp.MustCompile(`^p[1-9][0-9]*$`)},
}

// Kinds returns the known entity kinds in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(grammars))
	for k := range grammars {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// IsValid reports whether k is a known entity kind.
func (k Kind) IsValid() bool {
	_, ok := grammars[k]
	return ok
}

// EntityID identifies an entity. The zero value means "no id".
type EntityID struct {
	kind          Kind
	serialization string
}

// ParseEntityID validates serialization against the grammar of kind.
// Input is case-insensitive; the stored serialization is lower-case.
func ParseEntityID(kind Kind, serialization string) (EntityID, error) {
	g, ok := grammars[kind]
	if !ok {
		return EntityID{}, formatErrorf("unknown entity kind %q", kind)
	}

	canonical := strings.ToLower(serialization)
	if !g.pattern.MatchString(canonical) {
		return EntityID{}, formatErrorf("invalid %s id %q", kind, serialization)
	}

	return EntityID{kind: kind, serialization: canonical}, nil
}

// NewItemID parses an item id such as "Q42".
func NewItemID(serialization string) (EntityID, error) {
	return ParseEntityID(KindItem, serialization)
}

// NewPropertyID parses a property id such as "P31".
func NewPropertyID(serialization string) (EntityID, error) {
	return ParseEntityID(KindProperty, serialization)
}

// MustParseEntityID is like ParseEntityID but panics on error.
// Meant for fixtures and package-level values.
func MustParseEntityID(kind Kind, serialization string) EntityID {
	id, err := ParseEntityID(kind, serialization)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseEntityIDSerialization parses an id whose kind is inferred from its
// prefix letter.
func ParseEntityIDSerialization(serialization string) (EntityID, error) {
	canonical := strings.ToLower(serialization)
	for kind, g := range grammars {
		if strings.HasPrefix(canonical, g.prefix) {
			return ParseEntityID(kind, serialization)
		}
	}
	return EntityID{}, formatErrorf("cannot infer entity kind of %q", serialization)
}

// LegacyEntityID maps a bare numeric id to the canonical serialization of
// kind (42 for KindProperty becomes "p42").
//
// Deprecated: numeric ids are kept for old callers only; new code passes
// full serializations to ParseEntityID.
func LegacyEntityID(kind Kind, numericID int64) (EntityID, error) {
	g, ok := grammars[kind]
	if !ok {
		return EntityID{}, formatErrorf("unknown entity kind %q", kind)
	}
	if numericID < 0 {
		return EntityID{}, formatErrorf("negative numeric id %d", numericID)
	}
	return ParseEntityID(kind, g.prefix+strconv.FormatInt(numericID, 10))
}

// Kind returns the entity kind the id belongs to.
func (id EntityID) Kind() Kind {
	return id.kind
}

// Serialization returns the canonical (lower-case) serialization.
func (id EntityID) Serialization() string {
	return id.serialization
}

func (id EntityID) String() string {
	return id.serialization
}

// IsZero reports whether id is unset.
func (id EntityID) IsZero() bool {
	return id.serialization == ""
}

// Equals compares kind and serialization.
func (id EntityID) Equals(other EntityID) bool {
	return id == other
}

// NumericID returns the integer suffix of the serialization.
func (id EntityID) NumericID() (int64, error) {
	g, ok := grammars[id.kind]
	if !ok || id.IsZero() {
		return 0, formatErrorf("id %q has no numeric part", id.serialization)
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(id.serialization, g.prefix), 10, 64)
	if err != nil {
		return 0, formatErrorf("id %q has no numeric part", id.serialization)
	}
	return n, nil
}

// MarshalText implements encoding.TextMarshaler.
func (id EntityID) MarshalText() ([]byte, error) {
	return []byte(id.serialization), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, inferring the kind
// from the prefix.
func (id *EntityID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*id = EntityID{}
		return nil
	}
	parsed, err := ParseEntityIDSerialization(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
