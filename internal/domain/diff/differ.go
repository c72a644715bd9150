package diff

import (
	"slices"
)

// Compute returns the diff that turns from into to.
// Keys are visited in sorted order so equal inputs give identical trees.
func Compute(from, to Map) *Diff {
	d := New()

	for _, key := range unionKeys(from, to) {
		oldValue, inFrom := from[key]
		newValue, inTo := to[key]

		switch {
		case !inFrom:
			d.Set(key, Add{NewValue: copyValue(newValue)})
		case !inTo:
			d.Set(key, Remove{OldValue: copyValue(oldValue)})
		default:
			if op, ok := compareValues(oldValue, newValue); ok {
				d.Set(key, op)
			}
		}
	}

	return d
}

// compareValues returns the operation for a key present on both sides,
// or false when the values are equal.
func compareValues(oldValue, newValue any) (Op, bool) {
	oldMap, oldIsMap := asMap(oldValue)
	newMap, newIsMap := asMap(newValue)
	if oldIsMap && newIsMap {
		sub := Compute(oldMap, newMap)
		if sub.IsEmpty() {
			return nil, false
		}
		return Nested{Diff: sub}, true
	}

	oldSet, oldIsSet := oldValue.([]string)
	newSet, newIsSet := newValue.([]string)
	if oldIsSet && newIsSet {
		sd := SetDiff{
			Added:   minus(newSet, oldSet),
			Removed: minus(oldSet, newSet),
		}
		if sd.IsEmpty() {
			return nil, false
		}
		return sd, true
	}

	if Equal(oldValue, newValue) {
		return nil, false
	}
	return Change{OldValue: copyValue(oldValue), NewValue: copyValue(newValue)}, true
}

func unionKeys(a, b Map) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
