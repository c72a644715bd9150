package entities

// Payload carries the fields that only one entity kind has. The set of
// payloads is closed: ItemPayload and PropertyPayload.
type Payload interface {
	Kind() Kind
	clone() Payload
	equals(other Payload) bool
}

// ItemPayload is the (empty) kind-specific part of an item.
type ItemPayload struct{}

// Kind implements Payload.
func (ItemPayload) Kind() Kind { return KindItem }

func (p ItemPayload) clone() Payload { return p }

func (ItemPayload) equals(other Payload) bool {
	_, ok := other.(ItemPayload)
	return ok
}

// PropertyPayload is the kind-specific part of a property.
type PropertyPayload struct {
	DataType string
}

// Kind implements Payload.
func (PropertyPayload) Kind() Kind { return KindProperty }

func (p PropertyPayload) clone() Payload { return p }

func (p PropertyPayload) equals(other Payload) bool {
	o, ok := other.(PropertyPayload)
	return ok && o == p
}

func defaultPayload(kind Kind) Payload {
	if kind == KindProperty {
		return PropertyPayload{}
	}
	return ItemPayload{}
}

// Entity is a versionable record: an optional id, a fingerprint, claims
// and a kind-specific payload. All accessors return copies, so nothing a
// caller does to a returned value reaches the entity.
type Entity struct {
	kind        Kind
	id          EntityID
	fingerprint *Fingerprint
	claims      *Claims
	payload     Payload
}

// NewEntity returns an empty entity of kind without id.
func NewEntity(kind Kind) (*Entity, error) {
	if !kind.IsValid() {
		return nil, typeMismatchf("unknown entity kind %q", kind)
	}
	return &Entity{
		kind:        kind,
		fingerprint: NewEmptyFingerprint(),
		claims:      &Claims{},
		payload:     defaultPayload(kind),
	}, nil
}

// NewItem returns an empty item.
func NewItem() *Entity {
	e, _ := NewEntity(KindItem)
	return e
}

// NewProperty returns an empty property with the given data type.
func NewProperty(dataType string) *Entity {
	e, _ := NewEntity(KindProperty)
	e.payload = PropertyPayload{DataType: dataType}
	return e
}

// Kind returns the entity kind.
func (e *Entity) Kind() Kind { return e.kind }

// ID returns the id and whether one is set.
func (e *Entity) ID() (EntityID, bool) {
	return e.id, !e.id.IsZero()
}

// SetID assigns the id. The id must be of the entity's kind; once set it
// can only be re-assigned to the same value.
func (e *Entity) SetID(id EntityID) error {
	if id.IsZero() {
		return illegalStatef("cannot assign an empty id")
	}
	if id.Kind() != e.kind {
		return typeMismatchf("cannot assign %s id %q to a %s", id.Kind(), id, e.kind)
	}
	if !e.id.IsZero() && !e.id.Equals(id) {
		return illegalStatef("%s already has id %q, refusing %q", e.kind, e.id, id)
	}
	e.id = id
	return nil
}

// SetLegacyNumericID assigns an id given as a bare number.
//
// Deprecated: kept for old callers; use SetID.
func (e *Entity) SetLegacyNumericID(numericID int64) error {
	id, err := LegacyEntityID(e.kind, numericID)
	if err != nil {
		return err
	}
	return e.SetID(id)
}

// Fingerprint returns a copy of the fingerprint.
func (e *Entity) Fingerprint() *Fingerprint { return e.fingerprint.Clone() }

// SetFingerprint replaces the fingerprint with a copy of f.
func (e *Entity) SetFingerprint(f *Fingerprint) { e.fingerprint = f.Clone() }

// Claims returns a deep copy of the claims.
func (e *Entity) Claims() *Claims { return e.claims.Clone() }

// SetClaims replaces the claims with a deep copy of cs.
func (e *Entity) SetClaims(cs *Claims) { e.claims = cs.Clone() }

// AddClaim adds or replaces a claim by GUID.
func (e *Entity) AddClaim(c *Claim) error { return e.claims.Add(c) }

// InsertClaimAfter adds a claim directly after the claim with GUID prev.
// See Claims.InsertAfter.
func (e *Entity) InsertClaimAfter(prev string, c *Claim) error { return e.claims.InsertAfter(prev, c) }

// HasClaim reports whether an identical claim (GUID and content) is held.
func (e *Entity) HasClaim(c *Claim) bool { return e.claims.Has(c) }

// RemoveClaim removes the claim with guid.
func (e *Entity) RemoveClaim(guid string) { e.claims.Remove(guid) }

// NewClaimGUID generates a GUID owned by this entity.
func (e *Entity) NewClaimGUID() (string, error) { return NewGUID(e.id) }

// AllSnaks returns every snak of every claim.
func (e *Entity) AllSnaks() []Snak { return e.claims.AllSnaks() }

// ReferencedEntityIDs returns the properties and entity values used by the
// claims, first occurrence first.
func (e *Entity) ReferencedEntityIDs() []EntityID {
	seen := make(map[EntityID]struct{})
	var out []EntityID
	add := func(id EntityID) {
		if _, ok := seen[id]; ok || id.IsZero() {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, s := range e.AllSnaks() {
		add(s.Property())
		if v, ok := s.Value().(EntityIDValue); ok {
			add(v.ID)
		}
	}
	return out
}

// Payload returns the kind-specific payload.
func (e *Entity) Payload() Payload { return e.payload.clone() }

// SetPayload replaces the kind-specific payload.
func (e *Entity) SetPayload(p Payload) error {
	if p == nil || p.Kind() != e.kind {
		return typeMismatchf("payload does not belong to a %s", e.kind)
	}
	e.payload = p.clone()
	return nil
}

// DataType returns the data type of a property, "" for other kinds.
func (e *Entity) DataType() string {
	if p, ok := e.payload.(PropertyPayload); ok {
		return p.DataType
	}
	return ""
}

// IsEmpty reports whether the entity has neither terms nor claims.
// Neither the id nor the payload counts.
func (e *Entity) IsEmpty() bool {
	return e.fingerprint.IsEmpty() && e.claims.IsEmpty()
}

// Copy returns a deep copy of the entity.
func (e *Entity) Copy() *Entity {
	return &Entity{
		kind:        e.kind,
		id:          e.id,
		fingerprint: e.fingerprint.Clone(),
		claims:      e.claims.Clone(),
		payload:     e.payload.clone(),
	}
}

// Equals compares kind, id, fingerprint, claims (in order) and payload.
func (e *Entity) Equals(other *Entity) bool {
	if e == nil || other == nil {
		return e == nil && other == nil
	}
	return e.kind == other.kind &&
		e.id.Equals(other.id) &&
		e.fingerprint.Equals(other.fingerprint) &&
		e.claims.Equals(other.claims) &&
		e.payload.equals(other.payload)
}
