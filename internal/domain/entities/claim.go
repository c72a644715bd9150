package entities

// Rank orders statements about the same property. Plain claims carry
// RankNone.
type Rank string

const (
	RankNone       Rank = ""
	RankDeprecated Rank = "deprecated"
	RankNormal     Rank = "normal"
	RankPreferred  Rank = "preferred"
)

// IsValid reports whether r is a known rank.
func (r Rank) IsValid() bool {
	switch r {
	case RankNone, RankDeprecated, RankNormal, RankPreferred:
		return true
	}
	return false
}

// Claim is a main snak with optional qualifiers, identified by its GUID.
// A Claim held by a Claims collection is never handed out directly, so
// mutating a Claim only ever affects the caller's copy.
type Claim struct {
	guid       string
	mainSnak   Snak
	qualifiers Snaks
	rank       Rank
}

// NewClaim builds a plain claim (no rank).
func NewClaim(guid string, mainSnak Snak, qualifiers ...Snak) *Claim {
	return &Claim{guid: guid, mainSnak: mainSnak, qualifiers: NewSnaks(qualifiers...)}
}

// NewStatement builds a ranked claim with RankNormal.
func NewStatement(guid string, mainSnak Snak, qualifiers ...Snak) *Claim {
	c := NewClaim(guid, mainSnak, qualifiers...)
	c.rank = RankNormal
	return c
}

// GUID returns the claim's identity.
func (c *Claim) GUID() string { return c.guid }

// SetGUID replaces the GUID.
func (c *Claim) SetGUID(guid string) { c.guid = guid }

// MainSnak returns the main snak.
func (c *Claim) MainSnak() Snak { return c.mainSnak }

// SetMainSnak replaces the main snak.
func (c *Claim) SetMainSnak(s Snak) { c.mainSnak = s }

// Qualifiers returns a copy of the qualifiers.
func (c *Claim) Qualifiers() Snaks { return NewSnaks(c.qualifiers...) }

// SetQualifiers replaces the qualifiers.
func (c *Claim) SetQualifiers(qualifiers ...Snak) { c.qualifiers = NewSnaks(qualifiers...) }

// AddQualifier adds s unless an equal qualifier exists.
func (c *Claim) AddQualifier(s Snak) { c.qualifiers = c.qualifiers.With(s) }

// Rank returns the rank, RankNone for plain claims.
func (c *Claim) Rank() Rank { return c.rank }

// SetRank sets the rank. Unknown ranks are rejected.
func (c *Claim) SetRank(r Rank) error {
	if !r.IsValid() {
		return formatErrorf("unknown rank %q", r)
	}
	c.rank = r
	return nil
}

// AllSnaks returns the main snak followed by the qualifiers.
func (c *Claim) AllSnaks() []Snak {
	out := make([]Snak, 0, 1+len(c.qualifiers))
	out = append(out, c.mainSnak)
	return append(out, c.qualifiers...)
}

// Clone returns an independent copy.
func (c *Claim) Clone() *Claim {
	if c == nil {
		return nil
	}
	return &Claim{
		guid:       c.guid,
		mainSnak:   c.mainSnak,
		qualifiers: NewSnaks(c.qualifiers...),
		rank:       c.rank,
	}
}

// CloneValue returns Clone as an untyped value for diff operations.
func (c *Claim) CloneValue() any { return c.Clone() }

// SameContent compares main snak, qualifiers and rank, ignoring the GUID.
func (c *Claim) SameContent(other *Claim) bool {
	if c == nil || other == nil {
		return c == nil && other == nil
	}
	return c.mainSnak.Equals(other.mainSnak) &&
		c.qualifiers.Equals(other.qualifiers) &&
		c.rank == other.rank
}

// Equals compares GUID and content.
func (c *Claim) Equals(other *Claim) bool {
	if c == nil || other == nil {
		return c == nil && other == nil
	}
	return c.guid == other.guid && c.SameContent(other)
}
