package entities

import (
	"slices"
)

// Claims is an ordered collection of claims, unique by GUID.
// Claims are copied on the way in and on the way out.
type Claims struct {
	order  []string
	byGUID map[string]*Claim
}

// NewClaims builds a collection from claims.
func NewClaims(claims ...*Claim) (*Claims, error) {
	cs := &Claims{byGUID: make(map[string]*Claim, len(claims))}
	for _, c := range claims {
		if err := cs.Add(c); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

// Add stores a copy of c. A claim with the same GUID is replaced at its
// position; otherwise c is appended.
func (cs *Claims) Add(c *Claim) error {
	return cs.insert(c, len(cs.order))
}

// InsertAfter stores a copy of c directly after the claim with GUID prev.
// An empty prev inserts at the front and an unknown prev appends. A claim
// with the same GUID as c is replaced at its position.
func (cs *Claims) InsertAfter(prev string, c *Claim) error {
	pos := len(cs.order)
	if prev == "" {
		pos = 0
	} else if i := slices.Index(cs.order, prev); i >= 0 {
		pos = i + 1
	}
	return cs.insert(c, pos)
}

func (cs *Claims) insert(c *Claim, pos int) error {
	if c == nil {
		return illegalStatef("cannot add a nil claim")
	}
	if _, _, err := SplitGUID(c.GUID()); err != nil {
		return err
	}
	if cs.byGUID == nil {
		cs.byGUID = make(map[string]*Claim)
	}
	if _, ok := cs.byGUID[c.guid]; !ok {
		cs.order = slices.Insert(cs.order, pos, c.guid)
	}
	cs.byGUID[c.guid] = c.Clone()
	return nil
}

// Remove deletes the claim with guid. Unknown GUIDs are ignored.
func (cs *Claims) Remove(guid string) {
	if _, ok := cs.byGUID[guid]; !ok {
		return
	}
	delete(cs.byGUID, guid)
	cs.order = slices.DeleteFunc(cs.order, func(g string) bool { return g == guid })
}

// Get returns a copy of the claim with guid.
func (cs *Claims) Get(guid string) (*Claim, bool) {
	if cs == nil {
		return nil, false
	}
	c, ok := cs.byGUID[guid]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Has reports whether a claim with c's GUID and identical content is held.
func (cs *Claims) Has(c *Claim) bool {
	if cs == nil || c == nil {
		return false
	}
	held, ok := cs.byGUID[c.guid]
	return ok && held.Equals(c)
}

// HasGUID reports whether a claim with guid is held.
func (cs *Claims) HasGUID(guid string) bool {
	if cs == nil {
		return false
	}
	_, ok := cs.byGUID[guid]
	return ok
}

// All returns copies of all claims in order.
func (cs *Claims) All() []*Claim {
	if cs == nil {
		return nil
	}
	out := make([]*Claim, 0, len(cs.order))
	for _, guid := range cs.order {
		out = append(out, cs.byGUID[guid].Clone())
	}
	return out
}

// GUIDs returns the GUIDs in order.
func (cs *Claims) GUIDs() []string {
	if cs == nil {
		return nil
	}
	return slices.Clone(cs.order)
}

// Len returns the number of claims.
func (cs *Claims) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.order)
}

// IsEmpty reports whether there are no claims.
func (cs *Claims) IsEmpty() bool {
	return cs.Len() == 0
}

// AllSnaks returns every main snak and qualifier, claim by claim.
func (cs *Claims) AllSnaks() []Snak {
	var out []Snak
	if cs == nil {
		return out
	}
	for _, guid := range cs.order {
		out = append(out, cs.byGUID[guid].AllSnaks()...)
	}
	return out
}

// Clone returns an independent deep copy.
func (cs *Claims) Clone() *Claims {
	out := &Claims{byGUID: make(map[string]*Claim, cs.Len())}
	if cs == nil {
		return out
	}
	out.order = slices.Clone(cs.order)
	for guid, c := range cs.byGUID {
		out.byGUID[guid] = c.Clone()
	}
	return out
}

// Equals compares both collections claim by claim, in order.
func (cs *Claims) Equals(other *Claims) bool {
	if cs.Len() != other.Len() {
		return false
	}
	a, b := cs.GUIDs(), other.GUIDs()
	for i := range a {
		if a[i] != b[i] || !cs.byGUID[a[i]].Equals(other.byGUID[b[i]]) {
			return false
		}
	}
	return true
}
