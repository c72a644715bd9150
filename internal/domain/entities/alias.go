package entities

import (
	"maps"
	"slices"
)

// AliasGroup is the set of aliases of one language. Order is not
// significant; duplicates and empty strings are dropped.
type AliasGroup struct {
	language string
	aliases  []string
}

// NewAliasGroup builds a group from aliases.
func NewAliasGroup(language string, aliases ...string) AliasGroup {
	return AliasGroup{language: language, aliases: normalizeAliases(aliases)}
}

func normalizeAliases(aliases []string) []string {
	seen := make(map[string]struct{}, len(aliases))
	out := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

// Language returns the group's language code.
func (g AliasGroup) Language() string {
	return g.language
}

// Aliases returns a copy of the aliases.
func (g AliasGroup) Aliases() []string {
	return slices.Clone(g.aliases)
}

// IsEmpty reports whether the group has no aliases.
func (g AliasGroup) IsEmpty() bool {
	return len(g.aliases) == 0
}

// Equals compares language and alias sets.
func (g AliasGroup) Equals(other AliasGroup) bool {
	if g.language != other.language || len(g.aliases) != len(other.aliases) {
		return false
	}
	for _, a := range g.aliases {
		if !slices.Contains(other.aliases, a) {
			return false
		}
	}
	return true
}

// AliasGroupList holds at most one AliasGroup per language and never an
// empty group. The zero value is empty and ready to use.
type AliasGroupList struct {
	groups map[string]AliasGroup
}

// NewAliasGroupList builds a list from groups; empty groups are skipped.
func NewAliasGroupList(groups ...AliasGroup) *AliasGroupList {
	l := &AliasGroupList{groups: make(map[string]AliasGroup, len(groups))}
	for _, g := range groups {
		l.Set(g)
	}
	return l
}

// NewAliasGroupListFromMap builds a list from a language→aliases map.
func NewAliasGroupListFromMap(aliases map[string][]string) *AliasGroupList {
	l := &AliasGroupList{groups: make(map[string]AliasGroup, len(aliases))}
	for lang, texts := range aliases {
		l.Set(NewAliasGroup(lang, texts...))
	}
	return l
}

// Get returns the group for language.
func (l *AliasGroupList) Get(language string) (AliasGroup, bool) {
	if l == nil {
		return AliasGroup{}, false
	}
	g, ok := l.groups[language]
	if !ok {
		return AliasGroup{}, false
	}
	return NewAliasGroup(g.language, g.aliases...), true
}

// Has reports whether a group exists for language.
func (l *AliasGroupList) Has(language string) bool {
	_, ok := l.Get(language)
	return ok
}

// Set stores g. Setting an empty group removes the language.
func (l *AliasGroupList) Set(g AliasGroup) {
	if g.IsEmpty() {
		l.Remove(g.language)
		return
	}
	if l.groups == nil {
		l.groups = make(map[string]AliasGroup)
	}
	l.groups[g.language] = NewAliasGroup(g.language, g.aliases...)
}

// Remove deletes the group for language, if any.
func (l *AliasGroupList) Remove(language string) {
	delete(l.groups, language)
}

// Len returns the number of languages with aliases.
func (l *AliasGroupList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.groups)
}

// IsEmpty reports whether the list holds no groups.
func (l *AliasGroupList) IsEmpty() bool {
	return l.Len() == 0
}

// Languages returns the languages in sorted order.
func (l *AliasGroupList) Languages() []string {
	if l == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(l.groups))
}

// Groups returns copies of the groups sorted by language.
func (l *AliasGroupList) Groups() []AliasGroup {
	out := make([]AliasGroup, 0, l.Len())
	for _, lang := range l.Languages() {
		g, _ := l.Get(lang)
		out = append(out, g)
	}
	return out
}

// ToTextMap returns a language→aliases map.
func (l *AliasGroupList) ToTextMap() map[string][]string {
	out := make(map[string][]string, l.Len())
	if l == nil {
		return out
	}
	for lang, g := range l.groups {
		out[lang] = g.Aliases()
	}
	return out
}

// Clone returns an independent copy.
func (l *AliasGroupList) Clone() *AliasGroupList {
	out := NewAliasGroupList()
	if l == nil {
		return out
	}
	for _, g := range l.groups {
		out.Set(g)
	}
	return out
}

// Equals compares both lists group by group.
func (l *AliasGroupList) Equals(other *AliasGroupList) bool {
	if l.Len() != other.Len() {
		return false
	}
	for _, g := range l.Groups() {
		o, ok := other.Get(g.language)
		if !ok || !g.Equals(o) {
			return false
		}
	}
	return true
}
