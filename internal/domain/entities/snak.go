package entities

import (
	"slices"
)

// SnakType distinguishes the three kinds of snak.
type SnakType string

const (
	SnakNoValue   SnakType = "novalue"
	SnakSomeValue SnakType = "somevalue"
	SnakValue     SnakType = "value"
)

// Snak asserts something about a property: that it has no value, some
// unknown value, or a concrete value. Snaks are immutable.
type Snak struct {
	typ      SnakType
	property EntityID
	value    DataValue
}

// NewNoValueSnak asserts that property has no value.
func NewNoValueSnak(property EntityID) Snak {
	return Snak{typ: SnakNoValue, property: property}
}

// NewSomeValueSnak asserts that property has an unknown value.
func NewSomeValueSnak(property EntityID) Snak {
	return Snak{typ: SnakSomeValue, property: property}
}

// NewValueSnak asserts that property has value.
func NewValueSnak(property EntityID, value DataValue) Snak {
	return Snak{typ: SnakValue, property: property, value: value}
}

// Type returns the snak type.
func (s Snak) Type() SnakType { return s.typ }

// Property returns the property the snak is about.
func (s Snak) Property() EntityID { return s.property }

// Value returns the data value of a value snak, nil otherwise.
func (s Snak) Value() DataValue { return s.value }

// Equals compares type, property and value.
func (s Snak) Equals(other Snak) bool {
	if s.typ != other.typ || !s.property.Equals(other.property) {
		return false
	}
	if s.value == nil || other.value == nil {
		return s.value == nil && other.value == nil
	}
	return s.value.Equals(other.value)
}

// Snaks is an ordered set of snaks.
type Snaks []Snak

// NewSnaks builds a set from snaks, dropping duplicates.
func NewSnaks(snaks ...Snak) Snaks {
	var out Snaks
	for _, s := range snaks {
		out = out.With(s)
	}
	return out
}

// Has reports whether an equal snak is in the set.
func (ss Snaks) Has(s Snak) bool {
	return slices.ContainsFunc(ss, s.Equals)
}

// With returns a new set with s appended unless already present.
func (ss Snaks) With(s Snak) Snaks {
	out := slices.Clone(ss)
	if ss.Has(s) {
		return out
	}
	return append(out, s)
}

// Without returns a new set without any snak equal to s.
func (ss Snaks) Without(s Snak) Snaks {
	return slices.DeleteFunc(slices.Clone(ss), s.Equals)
}

// ByProperty returns the snaks about property, in set order.
func (ss Snaks) ByProperty(property EntityID) Snaks {
	var out Snaks
	for _, s := range ss {
		if s.property.Equals(property) {
			out = append(out, s)
		}
	}
	return out
}

// Equals compares both sets ignoring order.
func (ss Snaks) Equals(other Snaks) bool {
	if len(ss) != len(other) {
		return false
	}
	for _, s := range ss {
		if !other.Has(s) {
			return false
		}
	}
	return true
}
