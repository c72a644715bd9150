// Package diff computes and applies structural diffs over plain field maps.
//
// A field map holds strings, string sets ([]string) and nested field maps.
// Compute turns two maps into a tree of Add, Remove, Change, Nested and
// SetDiff operations; Apply replays such a tree onto a map.
package diff

import (
	"reflect"
	"slices"
)

// Map is a plain field map as produced by the entity serializers.
type Map map[string]any

// Diff is an ordered mapping from field key to operation.
// The zero value and nil are both valid empty diffs.
type Diff struct {
	keys []string
	ops  map[string]Op
}

// New returns an empty diff.
func New() *Diff {
	return &Diff{ops: make(map[string]Op)}
}

// Set stores a copy of op under key. Re-setting a key keeps its original
// position.
func (d *Diff) Set(key string, op Op) {
	if d.ops == nil {
		d.ops = make(map[string]Op)
	}
	if _, ok := d.ops[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.ops[key] = copyOp(op)
}

// Get returns a copy of the operation stored under key.
func (d *Diff) Get(key string) (Op, bool) {
	if d == nil {
		return nil, false
	}
	op, ok := d.ops[key]
	if !ok {
		return nil, false
	}
	return copyOp(op), true
}

// Clone returns a deep copy of d.
func (d *Diff) Clone() *Diff {
	out := New()
	if d == nil {
		return out
	}
	for _, key := range d.keys {
		out.Set(key, d.ops[key])
	}
	return out
}

// Keys returns the keys in insertion order.
func (d *Diff) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.keys)
}

// Len returns the number of top-level operations.
func (d *Diff) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// IsEmpty reports whether the diff holds no operations.
func (d *Diff) IsEmpty() bool {
	return d.Len() == 0
}

// Equal compares two diffs structurally, ignoring key order.
func (d *Diff) Equal(other *Diff) bool {
	return d.EqualFunc(other, Equal)
}

// EqualFunc is like Equal but compares leaf values with eq.
func (d *Diff) EqualFunc(other *Diff, eq func(a, b any) bool) bool {
	if d.Len() != other.Len() {
		return false
	}
	for _, key := range d.Keys() {
		a, _ := d.Get(key)
		b, ok := other.Get(key)
		if !ok || !opsEqual(a, b, eq) {
			return false
		}
	}
	return true
}

// Equal reports whether two field-map values are structurally equal.
// Sets compare order- and duplicate-insensitively, maps recursively.
func Equal(a, b any) bool {
	if am, ok := asMap(a); ok {
		bm, ok := asMap(b)
		return ok && mapsEqual(am, bm)
	}
	if as, ok := a.([]string); ok {
		bs, ok := b.([]string)
		return ok && setsEqual(as, bs)
	}
	return reflect.DeepEqual(a, b)
}

func mapsEqual(a, b Map) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

func setsEqual(a, b []string) bool {
	return len(minus(a, b)) == 0 && len(minus(b, a)) == 0
}

// minus returns the distinct elements of a that are not in b, in a's order.
func minus(a, b []string) []string {
	exclude := make(map[string]struct{}, len(b))
	for _, s := range b {
		exclude[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := exclude[s]; ok {
			continue
		}
		exclude[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func asMap(v any) (Map, bool) {
	switch m := v.(type) {
	case Map:
		return m, true
	case map[string]any:
		return Map(m), true
	default:
		return nil, false
	}
}

// Copy returns a deep copy of m.
func Copy(m Map) Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

// Cloner is implemented by leaf values with mutable state. Diffs hold and
// hand out clones of such values.
type Cloner interface {
	CloneValue() any
}

func copyValue(v any) any {
	if m, ok := asMap(v); ok {
		return Copy(m)
	}
	if s, ok := v.([]string); ok {
		return slices.Clone(s)
	}
	if c, ok := v.(Cloner); ok {
		return c.CloneValue()
	}
	return v
}

func copyOp(op Op) Op {
	switch o := op.(type) {
	case Add:
		return Add{NewValue: copyValue(o.NewValue)}
	case Remove:
		return Remove{OldValue: copyValue(o.OldValue)}
	case Change:
		return Change{OldValue: copyValue(o.OldValue), NewValue: copyValue(o.NewValue)}
	case Nested:
		return Nested{Diff: o.Diff.Clone()}
	case SetDiff:
		return SetDiff{Added: slices.Clone(o.Added), Removed: slices.Clone(o.Removed)}
	default:
		return op
	}
}
