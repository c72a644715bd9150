package entities

import (
	"maps"
	"slices"
)

// Term is a text in one language.
type Term struct {
	Language string `json:"language"`
	Text     string `json:"value"`
}

// TermList holds at most one Term per language. The zero value is empty
// and ready to use.
type TermList struct {
	terms map[string]Term
}

// NewTermList builds a list from terms; later terms win per language.
func NewTermList(terms ...Term) *TermList {
	tl := &TermList{terms: make(map[string]Term, len(terms))}
	for _, t := range terms {
		tl.Set(t)
	}
	return tl
}

// NewTermListFromMap builds a list from a language→text map.
func NewTermListFromMap(texts map[string]string) *TermList {
	tl := &TermList{terms: make(map[string]Term, len(texts))}
	for lang, text := range texts {
		tl.Set(Term{Language: lang, Text: text})
	}
	return tl
}

// Get returns the term for language.
func (tl *TermList) Get(language string) (Term, bool) {
	if tl == nil {
		return Term{}, false
	}
	t, ok := tl.terms[language]
	return t, ok
}

// Has reports whether a term exists for language.
func (tl *TermList) Has(language string) bool {
	_, ok := tl.Get(language)
	return ok
}

// Set stores t, replacing any term in the same language.
func (tl *TermList) Set(t Term) {
	if tl.terms == nil {
		tl.terms = make(map[string]Term)
	}
	tl.terms[t.Language] = t
}

// Remove deletes the term for language, if any.
func (tl *TermList) Remove(language string) {
	delete(tl.terms, language)
}

// Len returns the number of languages with a term.
func (tl *TermList) Len() int {
	if tl == nil {
		return 0
	}
	return len(tl.terms)
}

// IsEmpty reports whether the list holds no terms.
func (tl *TermList) IsEmpty() bool {
	return tl.Len() == 0
}

// Languages returns the languages in sorted order.
func (tl *TermList) Languages() []string {
	if tl == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(tl.terms))
}

// Terms returns the terms sorted by language.
func (tl *TermList) Terms() []Term {
	out := make([]Term, 0, tl.Len())
	for _, lang := range tl.Languages() {
		out = append(out, tl.terms[lang])
	}
	return out
}

// ToTextMap returns a language→text map.
func (tl *TermList) ToTextMap() map[string]string {
	out := make(map[string]string, tl.Len())
	if tl == nil {
		return out
	}
	for lang, t := range tl.terms {
		out[lang] = t.Text
	}
	return out
}

// Clone returns an independent copy.
func (tl *TermList) Clone() *TermList {
	if tl == nil {
		return NewTermList()
	}
	return &TermList{terms: maps.Clone(tl.terms)}
}

// Equals compares both lists term by term.
func (tl *TermList) Equals(other *TermList) bool {
	if tl.Len() != other.Len() {
		return false
	}
	for _, t := range tl.Terms() {
		o, ok := other.Get(t.Language)
		if !ok || o != t {
			return false
		}
	}
	return true
}
