package diff

// Apply returns a copy of base with every operation of d applied.
//
// Conflicts resolve last-writer-wins: Add overwrites an existing key,
// Remove of a missing key is a no-op and Change writes its new value
// without checking the recorded old one.
func Apply(base Map, d *Diff) Map {
	out := Copy(base)
	if out == nil {
		out = Map{}
	}

	for _, key := range d.Keys() {
		op, _ := d.Get(key)
		applyOp(out, key, op)
	}

	return out
}

func applyOp(m Map, key string, op Op) {
	switch o := op.(type) {
	case Add:
		m[key] = copyValue(o.NewValue)
	case Remove:
		delete(m, key)
	case Change:
		m[key] = copyValue(o.NewValue)
	case Nested:
		current, _ := asMap(m[key])
		m[key] = Apply(current, o.Diff)
	case SetDiff:
		current, _ := m[key].([]string)
		kept := minus(current, o.Removed)
		next := append(kept, minus(o.Added, kept)...)
		if len(next) == 0 {
			delete(m, key)
			return
		}
		m[key] = next
	}
}
