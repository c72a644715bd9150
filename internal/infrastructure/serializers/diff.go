package serializers

import (
	"encoding/json"
	"fmt"

	"github.com/benestar/wikibase-datamodel/internal/domain/diff"
	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

// diffDoc is the JSON document of an entity diff. Every section is a list
// so operation order survives a round trip.
type diffDoc struct {
	Type         string  `json:"type"`
	Labels       []opDoc `json:"labels,omitempty"`
	Descriptions []opDoc `json:"descriptions,omitempty"`
	Aliases      []opDoc `json:"aliases,omitempty"`
	Claims       []opDoc `json:"claims,omitempty"`
	Extension    []opDoc `json:"extension,omitempty"`
}

type opDoc struct {
	Key     string          `json:"key"`
	Op      diff.OpType     `json:"op"`
	Old     json.RawMessage `json:"old,omitempty"`
	New     json.RawMessage `json:"new,omitempty"`
	Added   []string        `json:"added,omitempty"`
	Removed []string        `json:"removed,omitempty"`
	Diff    []opDoc         `json:"diff,omitempty"`
	After   *string         `json:"after,omitempty"`
}

// valueCodec converts leaf values of one diff section.
type valueCodec struct {
	encode func(v any) (json.RawMessage, error)
	decode func(raw json.RawMessage) (any, error)
}

var plainValues = valueCodec{encode: encodePlain, decode: decodePlain}

var claimValues = valueCodec{encode: encodeClaimValue, decode: decodeClaimValue}

func encodeEntityDiff(d *services.EntityDiff) (diffDoc, error) {
	doc := diffDoc{Type: string(d.Kind)}
	sections := []struct {
		name  string
		d     *diff.Diff
		codec valueCodec
		out   *[]opDoc
	}{
		{"labels", d.Labels, plainValues, &doc.Labels},
		{"descriptions", d.Descriptions, plainValues, &doc.Descriptions},
		{"aliases", d.Aliases, plainValues, &doc.Aliases},
		{"claims", d.Claims, claimValues, &doc.Claims},
		{"extension", d.Extension, plainValues, &doc.Extension},
	}
	for _, s := range sections {
		ops, err := encodeOps(s.d, s.codec)
		if err != nil {
			return diffDoc{}, fmt.Errorf("%s: %w", s.name, err)
		}
		*s.out = ops
	}
	for i := range doc.Claims {
		if doc.Claims[i].Op != diff.OpAdd {
			continue
		}
		if prev, ok := d.ClaimAnchor(doc.Claims[i].Key); ok {
			doc.Claims[i].After = &prev
		}
	}
	return doc, nil
}

func decodeEntityDiff(doc diffDoc) (*services.EntityDiff, error) {
	kind := entities.Kind(doc.Type)
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown entity type %q", doc.Type)
	}

	d := services.NewEntityDiff(kind)
	sections := []struct {
		name  string
		ops   []opDoc
		codec valueCodec
		out   **diff.Diff
	}{
		{"labels", doc.Labels, plainValues, &d.Labels},
		{"descriptions", doc.Descriptions, plainValues, &d.Descriptions},
		{"aliases", doc.Aliases, plainValues, &d.Aliases},
		{"claims", doc.Claims, claimValues, &d.Claims},
		{"extension", doc.Extension, plainValues, &d.Extension},
	}
	for _, s := range sections {
		decoded, err := decodeOps(s.ops, s.codec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
		*s.out = decoded
	}
	for _, op := range doc.Claims {
		if op.After != nil {
			d.SetClaimAnchor(op.Key, *op.After)
		}
	}
	return d, nil
}

func encodeOps(d *diff.Diff, codec valueCodec) ([]opDoc, error) {
	var out []opDoc
	for _, key := range d.Keys() {
		op, _ := d.Get(key)
		doc := opDoc{Key: key, Op: op.Type()}

		var err error
		switch o := op.(type) {
		case diff.Add:
			doc.New, err = codec.encode(o.NewValue)
		case diff.Remove:
			doc.Old, err = codec.encode(o.OldValue)
		case diff.Change:
			if doc.Old, err = codec.encode(o.OldValue); err == nil {
				doc.New, err = codec.encode(o.NewValue)
			}
		case diff.Nested:
			doc.Diff, err = encodeOps(o.Diff, codec)
		case diff.SetDiff:
			doc.Added, doc.Removed = o.Added, o.Removed
		default:
			err = fmt.Errorf("unsupported operation %T", op)
		}
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func decodeOps(docs []opDoc, codec valueCodec) (*diff.Diff, error) {
	d := diff.New()
	for _, doc := range docs {
		op, err := decodeOp(doc, codec)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", doc.Key, err)
		}
		d.Set(doc.Key, op)
	}
	return d, nil
}

func decodeOp(doc opDoc, codec valueCodec) (diff.Op, error) {
	switch doc.Op {
	case diff.OpAdd:
		v, err := codec.decode(doc.New)
		return diff.Add{NewValue: v}, err
	case diff.OpRemove:
		v, err := codec.decode(doc.Old)
		return diff.Remove{OldValue: v}, err
	case diff.OpChange:
		oldValue, err := codec.decode(doc.Old)
		if err != nil {
			return nil, err
		}
		newValue, err := codec.decode(doc.New)
		return diff.Change{OldValue: oldValue, NewValue: newValue}, err
	case diff.OpNested:
		sub, err := decodeOps(doc.Diff, codec)
		return diff.Nested{Diff: sub}, err
	case diff.OpSet:
		return diff.SetDiff{Added: doc.Added, Removed: doc.Removed}, nil
	default:
		return nil, fmt.Errorf("unknown operation %q", doc.Op)
	}
}

func encodePlain(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func decodePlain(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return normalizePlain(v), nil
}

// normalizePlain maps generic JSON values back onto field map types:
// objects become diff.Map and arrays of strings become string sets.
func normalizePlain(v any) any {
	switch v := v.(type) {
	case map[string]any:
		m := make(diff.Map, len(v))
		for k, sub := range v {
			m[k] = normalizePlain(sub)
		}
		return m
	case []any:
		set := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return v
			}
			set = append(set, s)
		}
		return set
	default:
		return v
	}
}

func encodeClaimValue(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	c, ok := v.(*entities.Claim)
	if !ok {
		return nil, fmt.Errorf("expected a claim, got %T", v)
	}
	doc, err := encodeClaim(c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func decodeClaimValue(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var doc claimDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return decodeClaim(doc)
}
