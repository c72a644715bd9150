// Package services contains the entity diff, revision and import logic.
package services

import (
	"fmt"
	"maps"

	"go.uber.org/zap"

	"github.com/benestar/wikibase-datamodel/internal/domain/diff"
	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/infrastructure/logging"
)

// EntityDiff is the difference between two entities of the same kind.
// Claims is keyed by GUID and its operations carry *entities.Claim values.
// Each added claim may carry an anchor: the GUID of the claim it follows
// in the target, or "" when it comes first.
type EntityDiff struct {
	Kind         entities.Kind
	Labels       *diff.Diff
	Descriptions *diff.Diff
	Aliases      *diff.Diff
	Claims       *diff.Diff
	Extension    *diff.Diff

	anchors map[string]string
}

// NewEntityDiff returns an empty diff for kind.
func NewEntityDiff(kind entities.Kind) *EntityDiff {
	return &EntityDiff{
		Kind:         kind,
		Labels:       diff.New(),
		Descriptions: diff.New(),
		Aliases:      diff.New(),
		Claims:       diff.New(),
		Extension:    diff.New(),
		anchors:      make(map[string]string),
	}
}

// ClaimAnchor returns the GUID the added claim guid is placed after.
// ok is false when the claim has no anchor and is appended.
func (d *EntityDiff) ClaimAnchor(guid string) (prev string, ok bool) {
	prev, ok = d.anchors[guid]
	return prev, ok
}

// SetClaimAnchor places the added claim guid after prev; "" places it first.
func (d *EntityDiff) SetClaimAnchor(guid, prev string) {
	if d.anchors == nil {
		d.anchors = make(map[string]string)
	}
	d.anchors[guid] = prev
}

// IsEmpty reports whether applying d would change nothing.
func (d *EntityDiff) IsEmpty() bool {
	return d.Labels.IsEmpty() &&
		d.Descriptions.IsEmpty() &&
		d.Aliases.IsEmpty() &&
		d.Claims.IsEmpty() &&
		d.Extension.IsEmpty()
}

// Len returns the total number of top-level operations.
func (d *EntityDiff) Len() int {
	return d.Labels.Len() + d.Descriptions.Len() + d.Aliases.Len() + d.Claims.Len() + d.Extension.Len()
}

// Equal compares two diffs structurally. Claim values compare by GUID and
// content.
func (d *EntityDiff) Equal(other *EntityDiff) bool {
	if d == nil || other == nil {
		return d == nil && other == nil
	}
	return d.Kind == other.Kind &&
		d.Labels.Equal(other.Labels) &&
		d.Descriptions.Equal(other.Descriptions) &&
		d.Aliases.Equal(other.Aliases) &&
		d.Claims.EqualFunc(other.Claims, claimValuesEqual) &&
		maps.Equal(d.anchors, other.anchors) &&
		d.Extension.Equal(other.Extension)
}

func claimValuesEqual(a, b any) bool {
	ca, okA := a.(*entities.Claim)
	cb, okB := b.(*entities.Claim)
	if okA || okB {
		return okA && okB && ca.Equals(cb)
	}
	return diff.Equal(a, b)
}

// EntityDiffService computes and applies entity diffs.
type EntityDiffService struct {
	kinds  map[entities.Kind]KindHandler
	logger *zap.SugaredLogger
}

// NewEntityDiffService creates a new EntityDiffService for the built-in
// kinds. A nil logger disables logging.
func NewEntityDiffService(logger *zap.SugaredLogger) *EntityDiffService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &EntityDiffService{
		kinds:  DefaultKindHandlers(),
		logger: logger,
	}
}

// Diff computes the changes that turn from into to. Neither entity is
// modified.
func (s *EntityDiffService) Diff(from, to *entities.Entity) (*EntityDiff, error) {
	if from.Kind() != to.Kind() {
		return nil, entities.NewTypeMismatchError(from.Kind(), to.Kind())
	}
	handler, err := s.handler(from.Kind())
	if err != nil {
		return nil, err
	}

	fromFields, toFields := EntityFields(from), EntityFields(to)
	claims, anchors := diffClaims(from.Claims(), to.Claims())
	d := &EntityDiff{
		Kind:         from.Kind(),
		Labels:       diff.Compute(subMap(fromFields, FieldLabel), subMap(toFields, FieldLabel)),
		Descriptions: diff.Compute(subMap(fromFields, FieldDescription), subMap(toFields, FieldDescription)),
		Aliases:      diff.Compute(subMap(fromFields, FieldAliases), subMap(toFields, FieldAliases)),
		Claims:       claims,
		Extension:    handler.DiffExtension(from, to),
		anchors:      anchors,
	}

	s.logger.Debugw("Computed entity diff",
		logging.FieldKind, d.Kind,
		"labels", d.Labels.Len(),
		"descriptions", d.Descriptions.Len(),
		"aliases", d.Aliases.Len(),
		"claims", d.Claims.Len(),
		"extension", d.Extension.Len())

	return d, nil
}

// diffClaims lists removals and changes in source order, then additions in
// target order. Every addition is anchored to its predecessor in the target.
func diffClaims(from, to *entities.Claims) (*diff.Diff, map[string]string) {
	d := diff.New()
	anchors := make(map[string]string)
	for _, old := range from.All() {
		updated, ok := to.Get(old.GUID())
		switch {
		case !ok:
			d.Set(old.GUID(), diff.Remove{OldValue: old})
		case !old.Equals(updated):
			d.Set(old.GUID(), diff.Change{OldValue: old, NewValue: updated})
		}
	}
	prev := ""
	for _, c := range to.All() {
		if !from.HasGUID(c.GUID()) {
			d.Set(c.GUID(), diff.Add{NewValue: c})
			anchors[c.GUID()] = prev
		}
		prev = c.GUID()
	}
	return d, anchors
}

// Patch applies d to e. Conflicting operations resolve last-writer-wins:
// Add overwrites, Remove of a missing key is ignored and Change does not
// check the old value. On error e is left as it was.
func (s *EntityDiffService) Patch(e *entities.Entity, d *EntityDiff) error {
	if d.Kind != e.Kind() {
		return entities.NewTypeMismatchError(e.Kind(), d.Kind)
	}
	handler, err := s.handler(e.Kind())
	if err != nil {
		return err
	}

	work := e.Copy()
	if err := patchFingerprint(work, d); err != nil {
		return fmt.Errorf("patching terms: %w", err)
	}
	if err := patchClaims(work, d); err != nil {
		return fmt.Errorf("patching claims: %w", err)
	}
	if err := handler.PatchExtension(work, d.Extension); err != nil {
		return fmt.Errorf("patching %s fields: %w", e.Kind(), err)
	}

	*e = *work

	s.logger.Debugw("Patched entity", logging.FieldKind, e.Kind(), logging.FieldOperations, d.Len())
	return nil
}

func (s *EntityDiffService) handler(kind entities.Kind) (KindHandler, error) {
	h, ok := s.kinds[kind]
	if !ok {
		return nil, fmt.Errorf("no handler for entity kind %q", kind)
	}
	return h, nil
}

func patchFingerprint(e *entities.Entity, d *EntityDiff) error {
	fields := EntityFields(e)
	f := e.Fingerprint()

	labels, err := termListFromMap(diff.Apply(subMap(fields, FieldLabel), d.Labels))
	if err != nil {
		return fmt.Errorf("labels: %w", err)
	}
	descriptions, err := termListFromMap(diff.Apply(subMap(fields, FieldDescription), d.Descriptions))
	if err != nil {
		return fmt.Errorf("descriptions: %w", err)
	}
	aliases, err := aliasListFromMap(diff.Apply(subMap(fields, FieldAliases), d.Aliases))
	if err != nil {
		return fmt.Errorf("aliases: %w", err)
	}

	f.SetLabels(labels)
	f.SetDescriptions(descriptions)
	f.SetAliasGroups(aliases)
	e.SetFingerprint(f)
	return nil
}

// patchClaims applies the claim operations in order. An anchored Add is
// inserted after its anchor; anchors that are missing from e append.
func patchClaims(e *entities.Entity, d *EntityDiff) error {
	for _, guid := range d.Claims.Keys() {
		op, _ := d.Claims.Get(guid)
		switch op := op.(type) {
		case diff.Add:
			c, err := claimValue(guid, op.NewValue)
			if err != nil {
				return err
			}
			if prev, ok := d.ClaimAnchor(guid); ok {
				err = e.InsertClaimAfter(prev, c)
			} else {
				err = e.AddClaim(c)
			}
			if err != nil {
				return fmt.Errorf("claim %q: %w", guid, err)
			}
		case diff.Change:
			c, err := claimValue(guid, op.NewValue)
			if err != nil {
				return err
			}
			if err := e.AddClaim(c); err != nil {
				return fmt.Errorf("claim %q: %w", guid, err)
			}
		case diff.Remove:
			e.RemoveClaim(guid)
		default:
			return fmt.Errorf("claim %q: unsupported operation %q", guid, op.Type())
		}
	}
	return nil
}

func claimValue(guid string, v any) (*entities.Claim, error) {
	c, ok := v.(*entities.Claim)
	if !ok {
		return nil, fmt.Errorf("claim %q: expected a claim, got %T", guid, v)
	}
	if c.GUID() != guid {
		return nil, fmt.Errorf("claim %q: operation carries claim %q", guid, c.GUID())
	}
	return c, nil
}

func subMap(m diff.Map, key string) diff.Map {
	sub, _ := m[key].(diff.Map)
	return sub
}
