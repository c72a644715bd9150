package services

import (
	"fmt"

	"github.com/benestar/wikibase-datamodel/internal/domain/diff"
	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
)

// Field map keys.
const (
	FieldLabel       = "label"
	FieldDescription = "description"
	FieldAliases     = "aliases"
)

// EntityFields flattens the fingerprint of an entity into a field map:
// label and description map language to text and aliases map language to
// a set of strings. Claims are ordered and diffed separately by GUID.
func EntityFields(e *entities.Entity) diff.Map {
	f := e.Fingerprint()
	return diff.Map{
		FieldLabel:       termMap(f.Labels()),
		FieldDescription: termMap(f.Descriptions()),
		FieldAliases:     aliasMap(f.AliasGroups()),
	}
}

func termMap(tl *entities.TermList) diff.Map {
	out := diff.Map{}
	for lang, text := range tl.ToTextMap() {
		out[lang] = text
	}
	return out
}

func aliasMap(l *entities.AliasGroupList) diff.Map {
	out := diff.Map{}
	for lang, aliases := range l.ToTextMap() {
		out[lang] = aliases
	}
	return out
}

func termListFromMap(m diff.Map) (*entities.TermList, error) {
	tl := entities.NewTermList()
	for lang, v := range m {
		text, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("language %q: expected text, got %T", lang, v)
		}
		tl.Set(entities.Term{Language: lang, Text: text})
	}
	return tl, nil
}

func aliasListFromMap(m diff.Map) (*entities.AliasGroupList, error) {
	l := entities.NewAliasGroupList()
	for lang, v := range m {
		aliases, ok := v.([]string)
		if !ok {
			return nil, fmt.Errorf("language %q: expected alias set, got %T", lang, v)
		}
		l.Set(entities.NewAliasGroup(lang, aliases...))
	}
	return l, nil
}
