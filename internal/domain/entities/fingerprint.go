package entities

// Fingerprint bundles the labels, descriptions and aliases of an entity.
// Getters return copies; changes go through the setters.
type Fingerprint struct {
	labels       *TermList
	descriptions *TermList
	aliases      *AliasGroupList
}

// NewFingerprint builds a fingerprint from copies of the given lists.
// Nil lists are treated as empty.
func NewFingerprint(labels, descriptions *TermList, aliases *AliasGroupList) *Fingerprint {
	return &Fingerprint{
		labels:       labels.Clone(),
		descriptions: descriptions.Clone(),
		aliases:      aliases.Clone(),
	}
}

// NewEmptyFingerprint returns a fingerprint without any terms.
func NewEmptyFingerprint() *Fingerprint {
	return NewFingerprint(nil, nil, nil)
}

// Labels returns a copy of the labels.
func (f *Fingerprint) Labels() *TermList { return f.labels.Clone() }

// Descriptions returns a copy of the descriptions.
func (f *Fingerprint) Descriptions() *TermList { return f.descriptions.Clone() }

// AliasGroups returns a copy of the alias groups.
func (f *Fingerprint) AliasGroups() *AliasGroupList { return f.aliases.Clone() }

// SetLabels replaces all labels.
func (f *Fingerprint) SetLabels(labels *TermList) { f.labels = labels.Clone() }

// SetDescriptions replaces all descriptions.
func (f *Fingerprint) SetDescriptions(descriptions *TermList) {
	f.descriptions = descriptions.Clone()
}

// SetAliasGroups replaces all alias groups.
func (f *Fingerprint) SetAliasGroups(aliases *AliasGroupList) { f.aliases = aliases.Clone() }

// Label returns the label in language.
func (f *Fingerprint) Label(language string) (Term, bool) { return f.labels.Get(language) }

// SetLabel sets the label in language.
func (f *Fingerprint) SetLabel(language, text string) {
	f.labels.Set(Term{Language: language, Text: text})
}

// RemoveLabel removes the label in language.
func (f *Fingerprint) RemoveLabel(language string) { f.labels.Remove(language) }

// Description returns the description in language.
func (f *Fingerprint) Description(language string) (Term, bool) {
	return f.descriptions.Get(language)
}

// SetDescription sets the description in language.
func (f *Fingerprint) SetDescription(language, text string) {
	f.descriptions.Set(Term{Language: language, Text: text})
}

// RemoveDescription removes the description in language.
func (f *Fingerprint) RemoveDescription(language string) { f.descriptions.Remove(language) }

// AliasGroup returns the aliases in language.
func (f *Fingerprint) AliasGroup(language string) (AliasGroup, bool) {
	return f.aliases.Get(language)
}

// SetAliasGroup sets the aliases in language. No aliases removes the group.
func (f *Fingerprint) SetAliasGroup(language string, aliases ...string) {
	f.aliases.Set(NewAliasGroup(language, aliases...))
}

// RemoveAliasGroup removes the aliases in language.
func (f *Fingerprint) RemoveAliasGroup(language string) { f.aliases.Remove(language) }

// IsEmpty reports whether there are no labels, descriptions or aliases.
func (f *Fingerprint) IsEmpty() bool {
	return f.labels.IsEmpty() && f.descriptions.IsEmpty() && f.aliases.IsEmpty()
}

// Clone returns an independent copy.
func (f *Fingerprint) Clone() *Fingerprint {
	if f == nil {
		return NewEmptyFingerprint()
	}
	return NewFingerprint(f.labels, f.descriptions, f.aliases)
}

// Equals compares all three term sets.
func (f *Fingerprint) Equals(other *Fingerprint) bool {
	return f.labels.Equals(other.labels) &&
		f.descriptions.Equals(other.descriptions) &&
		f.aliases.Equals(other.aliases)
}
