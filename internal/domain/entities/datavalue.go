package entities

// DataValue is an opaque statement value. The model only ever compares
// values; it never looks inside them.
type DataValue interface {
	// Type returns the value type identifier used in serializations.
	Type() string
	// Equals reports whether other holds the same value.
	Equals(other DataValue) bool
}

// Value type identifiers.
const (
	ValueTypeString   = "string"
	ValueTypeEntityID = "wikibase-entityid"
	ValueTypeQuantity = "quantity"
)

// StringValue is a plain string value.
type StringValue string

// Type implements DataValue.
func (StringValue) Type() string { return ValueTypeString }

// Equals implements DataValue.
func (v StringValue) Equals(other DataValue) bool {
	o, ok := other.(StringValue)
	return ok && o == v
}

// EntityIDValue points at another entity.
type EntityIDValue struct {
	ID EntityID
}

// Type implements DataValue.
func (EntityIDValue) Type() string { return ValueTypeEntityID }

// Equals implements DataValue.
func (v EntityIDValue) Equals(other DataValue) bool {
	o, ok := other.(EntityIDValue)
	return ok && o.ID.Equals(v.ID)
}

// QuantityValue is a decimal amount with an optional unit. Amount keeps the
// textual form (e.g. "+12.5") so that no precision is lost.
type QuantityValue struct {
	Amount string
	Unit   string
}

// Type implements DataValue.
func (QuantityValue) Type() string { return ValueTypeQuantity }

// Equals implements DataValue.
func (v QuantityValue) Equals(other DataValue) bool {
	o, ok := other.(QuantityValue)
	return ok && o == v
}
