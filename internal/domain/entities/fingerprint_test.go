package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermList(t *testing.T) {
	tl := NewTermList(Term{Language: "en", Text: "Berlin"}, Term{Language: "en", Text: "Berlin, Germany"})
	assert.Equal(t, 1, tl.Len())

	term, ok := tl.Get("en")
	assert.True(t, ok)
	assert.Equal(t, "Berlin, Germany", term.Text)

	tl.Set(Term{Language: "de", Text: "Berlin"})
	assert.Equal(t, []string{"de", "en"}, tl.Languages())

	tl.Remove("fr")
	tl.Remove("en")
	assert.Equal(t, map[string]string{"de": "Berlin"}, tl.ToTextMap())

	var nilList *TermList
	assert.True(t, nilList.IsEmpty())
	assert.True(t, nilList.Equals(NewTermList()))
	assert.False(t, nilList.Equals(tl))
}

func TestAliasGroup(t *testing.T) {
	g := NewAliasGroup("en", "Berlin", "", "Berlin", "Athens of the Spree")
	assert.Equal(t, []string{"Berlin", "Athens of the Spree"}, g.Aliases())
	assert.True(t, g.Equals(NewAliasGroup("en", "Athens of the Spree", "Berlin")))
	assert.False(t, g.Equals(NewAliasGroup("de", "Athens of the Spree", "Berlin")))
	assert.True(t, NewAliasGroup("en", "").IsEmpty())
}

func TestAliasGroupList_EmptyGroupRemovesLanguage(t *testing.T) {
	l := NewAliasGroupList(NewAliasGroup("en", "a"), NewAliasGroup("de", "b"))
	assert.Equal(t, 2, l.Len())

	l.Set(NewAliasGroup("en"))
	assert.False(t, l.Has("en"))
	assert.Equal(t, []string{"de"}, l.Languages())
}

func TestFingerprint(t *testing.T) {
	f := NewEmptyFingerprint()
	assert.True(t, f.IsEmpty())

	f.SetLabel("en", "Berlin")
	f.SetAliasGroup("en", "Berlin, Germany")
	assert.False(t, f.IsEmpty())

	f.RemoveLabel("en")
	f.SetAliasGroup("en")
	assert.True(t, f.IsEmpty())
}

func TestFingerprint_AccessorsReturnCopies(t *testing.T) {
	f := NewEmptyFingerprint()
	f.SetLabel("en", "Berlin")

	labels := f.Labels()
	labels.Set(Term{Language: "en", Text: "Paris"})
	labels.Set(Term{Language: "fr", Text: "Paris"})

	term, _ := f.Label("en")
	assert.Equal(t, "Berlin", term.Text)
	assert.False(t, f.Labels().Has("fr"))

	clone := f.Clone()
	clone.SetDescription("en", "capital")
	assert.False(t, f.Descriptions().Has("en"))
	assert.False(t, f.Equals(clone))
}
