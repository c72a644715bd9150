package serializers

import (
	"encoding/json"
	"fmt"

	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
)

// entityDoc is the JSON document of an entity.
type entityDoc struct {
	Type         string                     `json:"type"`
	ID           string                     `json:"id,omitempty"`
	DataType     string                     `json:"datatype,omitempty"`
	Labels       map[string]entities.Term   `json:"labels,omitempty"`
	Descriptions map[string]entities.Term   `json:"descriptions,omitempty"`
	Aliases      map[string][]entities.Term `json:"aliases,omitempty"`
	Claims       []claimDoc                 `json:"claims,omitempty"`
}

const (
	claimTypeClaim     = "claim"
	claimTypeStatement = "statement"
)

type claimDoc struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	MainSnak   snakDoc   `json:"mainsnak"`
	Qualifiers []snakDoc `json:"qualifiers,omitempty"`
	Rank       string    `json:"rank,omitempty"`
}

type snakDoc struct {
	SnakType  string        `json:"snaktype"`
	Property  string        `json:"property"`
	DataValue *dataValueDoc `json:"datavalue,omitempty"`
}

type dataValueDoc struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type entityIDValueDoc struct {
	EntityType string `json:"entity-type"`
	ID         string `json:"id"`
}

type quantityValueDoc struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit,omitempty"`
}

func encodeEntity(e *entities.Entity) (entityDoc, error) {
	doc := entityDoc{
		Type:     string(e.Kind()),
		DataType: e.DataType(),
	}
	if id, ok := e.ID(); ok {
		doc.ID = id.Serialization()
	}

	f := e.Fingerprint()
	doc.Labels = termDocs(f.Labels())
	doc.Descriptions = termDocs(f.Descriptions())
	for _, g := range f.AliasGroups().Groups() {
		if doc.Aliases == nil {
			doc.Aliases = make(map[string][]entities.Term)
		}
		for _, alias := range g.Aliases() {
			doc.Aliases[g.Language()] = append(doc.Aliases[g.Language()], entities.Term{Language: g.Language(), Text: alias})
		}
	}

	for _, c := range e.Claims().All() {
		cd, err := encodeClaim(c)
		if err != nil {
			return entityDoc{}, err
		}
		doc.Claims = append(doc.Claims, cd)
	}

	return doc, nil
}

func termDocs(tl *entities.TermList) map[string]entities.Term {
	if tl.IsEmpty() {
		return nil
	}
	out := make(map[string]entities.Term, tl.Len())
	for _, t := range tl.Terms() {
		out[t.Language] = t
	}
	return out
}

func decodeEntity(doc entityDoc) (*entities.Entity, error) {
	kind := entities.Kind(doc.Type)
	e, err := entities.NewEntity(kind)
	if err != nil {
		return nil, fmt.Errorf("entity type: %w", err)
	}

	if doc.ID != "" {
		id, err := entities.ParseEntityID(kind, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("entity id: %w", err)
		}
		if err := e.SetID(id); err != nil {
			return nil, fmt.Errorf("entity id: %w", err)
		}
	}

	if kind == entities.KindProperty {
		if err := e.SetPayload(entities.PropertyPayload{DataType: doc.DataType}); err != nil {
			return nil, err
		}
	}

	f := entities.NewEmptyFingerprint()
	for lang, t := range doc.Labels {
		f.SetLabel(lang, t.Text)
	}
	for lang, t := range doc.Descriptions {
		f.SetDescription(lang, t.Text)
	}
	for lang, terms := range doc.Aliases {
		aliases := make([]string, 0, len(terms))
		for _, t := range terms {
			aliases = append(aliases, t.Text)
		}
		f.SetAliasGroup(lang, aliases...)
	}
	e.SetFingerprint(f)

	for i, cd := range doc.Claims {
		c, err := decodeClaim(cd)
		if err != nil {
			return nil, fmt.Errorf("claim %d: %w", i, err)
		}
		if err := e.AddClaim(c); err != nil {
			return nil, fmt.Errorf("claim %d: %w", i, err)
		}
	}

	return e, nil
}

func encodeClaim(c *entities.Claim) (claimDoc, error) {
	doc := claimDoc{
		ID:   c.GUID(),
		Type: claimTypeClaim,
		Rank: string(c.Rank()),
	}
	if c.Rank() != entities.RankNone {
		doc.Type = claimTypeStatement
	}

	main, err := encodeSnak(c.MainSnak())
	if err != nil {
		return claimDoc{}, fmt.Errorf("main snak: %w", err)
	}
	doc.MainSnak = main

	for _, q := range c.Qualifiers() {
		sd, err := encodeSnak(q)
		if err != nil {
			return claimDoc{}, fmt.Errorf("qualifier: %w", err)
		}
		doc.Qualifiers = append(doc.Qualifiers, sd)
	}
	return doc, nil
}

func decodeClaim(doc claimDoc) (*entities.Claim, error) {
	main, err := decodeSnak(doc.MainSnak)
	if err != nil {
		return nil, fmt.Errorf("main snak: %w", err)
	}
	qualifiers := make([]entities.Snak, 0, len(doc.Qualifiers))
	for _, sd := range doc.Qualifiers {
		q, err := decodeSnak(sd)
		if err != nil {
			return nil, fmt.Errorf("qualifier: %w", err)
		}
		qualifiers = append(qualifiers, q)
	}

	c := entities.NewClaim(doc.ID, main, qualifiers...)
	rank := entities.Rank(doc.Rank)
	if rank == entities.RankNone && doc.Type == claimTypeStatement {
		rank = entities.RankNormal
	}
	if err := c.SetRank(rank); err != nil {
		return nil, err
	}
	return c, nil
}

func encodeSnak(s entities.Snak) (snakDoc, error) {
	doc := snakDoc{
		SnakType: string(s.Type()),
		Property: s.Property().Serialization(),
	}
	if s.Type() != entities.SnakValue {
		return doc, nil
	}

	dv, err := encodeDataValue(s.Value())
	if err != nil {
		return snakDoc{}, err
	}
	doc.DataValue = &dv
	return doc, nil
}

func decodeSnak(doc snakDoc) (entities.Snak, error) {
	property, err := entities.NewPropertyID(doc.Property)
	if err != nil {
		return entities.Snak{}, fmt.Errorf("property: %w", err)
	}

	switch entities.SnakType(doc.SnakType) {
	case entities.SnakNoValue:
		return entities.NewNoValueSnak(property), nil
	case entities.SnakSomeValue:
		return entities.NewSomeValueSnak(property), nil
	case entities.SnakValue:
		if doc.DataValue == nil {
			return entities.Snak{}, fmt.Errorf("value snak on %s has no datavalue", property)
		}
		v, err := decodeDataValue(*doc.DataValue)
		if err != nil {
			return entities.Snak{}, err
		}
		return entities.NewValueSnak(property, v), nil
	default:
		return entities.Snak{}, fmt.Errorf("unknown snak type %q", doc.SnakType)
	}
}

func encodeDataValue(v entities.DataValue) (dataValueDoc, error) {
	var payload any
	switch v := v.(type) {
	case entities.StringValue:
		payload = string(v)
	case entities.EntityIDValue:
		payload = entityIDValueDoc{EntityType: string(v.ID.Kind()), ID: v.ID.Serialization()}
	case entities.QuantityValue:
		payload = quantityValueDoc(v)
	default:
		return dataValueDoc{}, fmt.Errorf("unsupported data value %T", v)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return dataValueDoc{}, fmt.Errorf("marshaling data value: %w", err)
	}
	return dataValueDoc{Type: v.Type(), Value: raw}, nil
}

func decodeDataValue(doc dataValueDoc) (entities.DataValue, error) {
	switch doc.Type {
	case entities.ValueTypeString:
		var s string
		if err := json.Unmarshal(doc.Value, &s); err != nil {
			return nil, fmt.Errorf("string value: %w", err)
		}
		return entities.StringValue(s), nil
	case entities.ValueTypeEntityID:
		var ref entityIDValueDoc
		if err := json.Unmarshal(doc.Value, &ref); err != nil {
			return nil, fmt.Errorf("entity id value: %w", err)
		}
		id, err := entities.ParseEntityIDSerialization(ref.ID)
		if err != nil {
			return nil, fmt.Errorf("entity id value: %w", err)
		}
		return entities.EntityIDValue{ID: id}, nil
	case entities.ValueTypeQuantity:
		var q quantityValueDoc
		if err := json.Unmarshal(doc.Value, &q); err != nil {
			return nil, fmt.Errorf("quantity value: %w", err)
		}
		return entities.QuantityValue(q), nil
	default:
		return nil, fmt.Errorf("unsupported data value type %q", doc.Type)
	}
}
