package services

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benestar/wikibase-datamodel/internal/domain/diff"
	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
)

var (
	testP1  = entities.MustParseEntityID(entities.KindProperty, "P1")
	testP31 = entities.MustParseEntityID(entities.KindProperty, "P31")
	testQ1  = entities.MustParseEntityID(entities.KindItem, "Q1")
	testQ5  = entities.MustParseEntityID(entities.KindItem, "Q5")
)

func newTestItem(t *testing.T, labels map[string]string, claims ...*entities.Claim) *entities.Entity {
	t.Helper()
	e := entities.NewItem()
	require.NoError(t, e.SetID(testQ1))
	f := entities.NewEmptyFingerprint()
	f.SetLabels(entities.NewTermListFromMap(labels))
	e.SetFingerprint(f)
	for _, c := range claims {
		require.NoError(t, e.AddClaim(c))
	}
	return e
}

func TestEntityDiffService_BerlinScenario(t *testing.T) {
	svc := NewEntityDiffService(nil)

	claim := entities.NewClaim("Q1$abc", entities.NewNoValueSnak(testP1))
	a := newTestItem(t, map[string]string{"en": "Berlin"})
	b := newTestItem(t, map[string]string{"en": "Berlin", "de": "Berlin"}, claim)

	d, err := svc.Diff(a, b)
	require.NoError(t, err)

	assert.Equal(t, []string{"de"}, d.Labels.Keys())
	op, _ := d.Labels.Get("de")
	assert.Equal(t, diff.Add{NewValue: "Berlin"}, op)

	assert.Equal(t, []string{"Q1$abc"}, d.Claims.Keys())
	op, _ = d.Claims.Get("Q1$abc")
	add, ok := op.(diff.Add)
	require.True(t, ok)
	assert.True(t, claim.Equals(add.NewValue.(*entities.Claim)))

	assert.True(t, d.Descriptions.IsEmpty())
	assert.True(t, d.Aliases.IsEmpty())
	assert.True(t, d.Extension.IsEmpty())

	patched := a.Copy()
	require.NoError(t, svc.Patch(patched, d))
	assert.True(t, patched.Equals(b))
}

func TestEntityDiffService_RoundTrip(t *testing.T) {
	svc := NewEntityDiffService(nil)

	c1 := entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1))
	c2 := entities.NewClaim("Q1$2", entities.NewValueSnak(testP31, entities.EntityIDValue{ID: testQ5}))
	c2Changed := entities.NewStatement("Q1$2", entities.NewValueSnak(testP31, entities.EntityIDValue{ID: testQ5}))
	c3 := entities.NewClaim("Q1$3", entities.NewSomeValueSnak(testP1))

	from := newTestItem(t, map[string]string{"en": "Berlin", "fr": "Berlin"}, c1, c2)
	fromFP := from.Fingerprint()
	fromFP.SetAliasGroup("en", "Berlin, Germany", "Spree-Athen")
	fromFP.SetDescription("en", "city")
	from.SetFingerprint(fromFP)

	to := newTestItem(t, map[string]string{"en": "Berlin, Germany", "de": "Berlin"}, c2Changed, c3)
	toFP := to.Fingerprint()
	toFP.SetAliasGroup("en", "Spree-Athen", "BER")
	toFP.SetAliasGroup("de", "Spree-Athen")
	to.SetFingerprint(toFP)

	d, err := svc.Diff(from, to)
	require.NoError(t, err)

	assert.Equal(t, []string{"de", "en", "fr"}, d.Labels.Keys())
	assert.Equal(t, []string{"en"}, d.Descriptions.Keys())
	op, _ := d.Aliases.Get("en")
	assert.Equal(t, diff.SetDiff{Added: []string{"BER"}, Removed: []string{"Berlin, Germany"}}, op)
	assert.Equal(t, []string{"Q1$1", "Q1$2", "Q1$3"}, d.Claims.Keys())

	patched := from.Copy()
	require.NoError(t, svc.Patch(patched, d))
	assert.True(t, patched.Fingerprint().Equals(to.Fingerprint()))
	assert.True(t, patched.Claims().Equals(to.Claims()))
	assert.True(t, patched.Equals(to))
}

func TestEntityDiffService_NoOpDiff(t *testing.T) {
	svc := NewEntityDiffService(nil)
	e := newTestItem(t, map[string]string{"en": "Berlin"},
		entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1), entities.NewNoValueSnak(testP31), entities.NewSomeValueSnak(testP1)))

	d, err := svc.Diff(e, e.Copy())
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
	assert.True(t, d.Equal(NewEntityDiff(entities.KindItem)))

	// Qualifier order is not significant.
	reordered := newTestItem(t, map[string]string{"en": "Berlin"},
		entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1), entities.NewSomeValueSnak(testP1), entities.NewNoValueSnak(testP31)))
	d, err = svc.Diff(e, reordered)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())

	before := e.Copy()
	require.NoError(t, svc.Patch(e, NewEntityDiff(entities.KindItem)))
	assert.True(t, e.Equals(before))
}

func TestEntityDiffService_DiffLeavesInputsUntouched(t *testing.T) {
	svc := NewEntityDiffService(nil)
	a := newTestItem(t, map[string]string{"en": "Berlin"})
	b := newTestItem(t, map[string]string{"de": "Berlin"}, entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1)))
	aCopy, bCopy := a.Copy(), b.Copy()

	d, err := svc.Diff(a, b)
	require.NoError(t, err)

	op, _ := d.Claims.Get("Q1$1")
	op.(diff.Add).NewValue.(*entities.Claim).SetMainSnak(entities.NewSomeValueSnak(testP31))

	assert.True(t, a.Equals(aCopy))
	assert.True(t, b.Equals(bCopy))

	reread, _ := d.Claims.Get("Q1$1")
	assert.Equal(t, entities.SnakNoValue, reread.(diff.Add).NewValue.(*entities.Claim).MainSnak().Type())

	patched := a.Copy()
	require.NoError(t, svc.Patch(patched, d))
	assert.True(t, patched.Equals(b))
}

func TestEntityDiffService_ClaimOrder(t *testing.T) {
	claim := func(guid string) *entities.Claim {
		return entities.NewClaim(guid, entities.NewNoValueSnak(testP1))
	}
	changed := func(guid string) *entities.Claim {
		return entities.NewClaim(guid, entities.NewSomeValueSnak(testP1))
	}

	tests := []struct {
		name string
		from []*entities.Claim
		to   []*entities.Claim
	}{
		{name: "add at front", from: []*entities.Claim{claim("Q1$1")}, to: []*entities.Claim{claim("Q1$0"), claim("Q1$1")}},
		{name: "add in the middle", from: []*entities.Claim{claim("Q1$1"), claim("Q1$3")}, to: []*entities.Claim{claim("Q1$1"), claim("Q1$2"), claim("Q1$3")}},
		{name: "add at end", from: []*entities.Claim{claim("Q1$1")}, to: []*entities.Claim{claim("Q1$1"), claim("Q1$2")}},
		{name: "add around existing", from: []*entities.Claim{claim("Q1$2")}, to: []*entities.Claim{claim("Q1$0"), claim("Q1$1"), claim("Q1$2"), claim("Q1$3")}},
		{name: "add in place of removed", from: []*entities.Claim{claim("Q1$1"), claim("Q1$2")}, to: []*entities.Claim{claim("Q1$0"), claim("Q1$2")}},
		{name: "add before changed", from: []*entities.Claim{claim("Q1$1"), claim("Q1$2")}, to: []*entities.Claim{claim("Q1$1"), claim("Q1$5"), changed("Q1$2")}},
		{name: "into empty", from: nil, to: []*entities.Claim{claim("Q1$1"), claim("Q1$2")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEntityDiffService(nil)
			from := newTestItem(t, map[string]string{"en": "Berlin"}, tt.from...)
			to := newTestItem(t, map[string]string{"en": "Berlin"}, tt.to...)

			d, err := svc.Diff(from, to)
			require.NoError(t, err)

			patched := from.Copy()
			require.NoError(t, svc.Patch(patched, d))
			assert.Equal(t, to.Claims().GUIDs(), patched.Claims().GUIDs())
			assert.True(t, patched.Equals(to))
		})
	}
}

func TestEntityDiffService_ClaimAnchors(t *testing.T) {
	svc := NewEntityDiffService(nil)
	from := newTestItem(t, nil, entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1)))
	to := newTestItem(t, nil,
		entities.NewClaim("Q1$0", entities.NewNoValueSnak(testP1)),
		entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1)),
		entities.NewClaim("Q1$2", entities.NewNoValueSnak(testP1)))

	d, err := svc.Diff(from, to)
	require.NoError(t, err)

	prev, ok := d.ClaimAnchor("Q1$0")
	assert.True(t, ok)
	assert.Equal(t, "", prev)
	prev, ok = d.ClaimAnchor("Q1$2")
	assert.True(t, ok)
	assert.Equal(t, "Q1$1", prev)
	_, ok = d.ClaimAnchor("Q1$1")
	assert.False(t, ok)

	t.Run("missing anchor appends", func(t *testing.T) {
		base := newTestItem(t, nil, entities.NewClaim("Q1$9", entities.NewNoValueSnak(testP1)))
		require.NoError(t, svc.Patch(base, d))
		assert.Equal(t, []string{"Q1$0", "Q1$9", "Q1$2"}, base.Claims().GUIDs())
	})

	t.Run("unanchored add appends", func(t *testing.T) {
		base := newTestItem(t, nil, entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1)))
		manual := NewEntityDiff(entities.KindItem)
		manual.Claims.Set("Q1$0", diff.Add{NewValue: entities.NewClaim("Q1$0", entities.NewNoValueSnak(testP1))})
		require.NoError(t, svc.Patch(base, manual))
		assert.Equal(t, []string{"Q1$1", "Q1$0"}, base.Claims().GUIDs())

		manual.SetClaimAnchor("Q1$0", "")
		base = newTestItem(t, nil, entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1)))
		require.NoError(t, svc.Patch(base, manual))
		assert.Equal(t, []string{"Q1$0", "Q1$1"}, base.Claims().GUIDs())
	})
}

func TestEntityDiffService_ClaimReorderIsNotCaptured(t *testing.T) {
	svc := NewEntityDiffService(nil)
	c1 := entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1))
	c2 := entities.NewClaim("Q1$2", entities.NewNoValueSnak(testP31))
	from := newTestItem(t, nil, c1, c2)
	to := newTestItem(t, nil, c2, c1)

	d, err := svc.Diff(from, to)
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
	assert.False(t, from.Equals(to))
}

func TestEntityFields(t *testing.T) {
	e := newTestItem(t, map[string]string{"en": "Berlin"}, entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1)))

	fields := EntityFields(e)
	assert.Len(t, fields, 3)
	assert.Equal(t, diff.Map{"en": "Berlin"}, fields[FieldLabel])
	assert.Equal(t, diff.Map{}, fields[FieldDescription])
	assert.Equal(t, diff.Map{}, fields[FieldAliases])
}

func TestEntityDiffService_TypeMismatch(t *testing.T) {
	svc := NewEntityDiffService(nil)

	_, err := svc.Diff(entities.NewItem(), entities.NewProperty("string"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrTypeMismatch))

	d, err := svc.Diff(entities.NewProperty("string"), entities.NewProperty("url"))
	require.NoError(t, err)

	item := newTestItem(t, map[string]string{"en": "Berlin"})
	before := item.Copy()
	err = svc.Patch(item, d)
	assert.True(t, errors.Is(err, entities.ErrTypeMismatch))
	assert.True(t, item.Equals(before))
}

func TestEntityDiffService_PropertyDataType(t *testing.T) {
	svc := NewEntityDiffService(nil)
	from := entities.NewProperty("string")
	to := entities.NewProperty("url")

	d, err := svc.Diff(from, to)
	require.NoError(t, err)
	op, ok := d.Extension.Get(FieldDataType)
	require.True(t, ok)
	assert.Equal(t, diff.Change{OldValue: "string", NewValue: "url"}, op)

	require.NoError(t, svc.Patch(from, d))
	assert.Equal(t, "url", from.DataType())
	assert.True(t, from.Equals(to))
}

func TestEntityDiffService_PatchIsLastWriterWins(t *testing.T) {
	svc := NewEntityDiffService(nil)
	e := newTestItem(t, map[string]string{"en": "Paris"})

	d := NewEntityDiff(entities.KindItem)
	d.Labels.Set("en", diff.Change{OldValue: "Berlin", NewValue: "Berlin, Germany"})
	d.Labels.Set("fr", diff.Remove{OldValue: "Berlin"})
	d.Claims.Set("Q1$404", diff.Remove{OldValue: nil})

	require.NoError(t, svc.Patch(e, d))
	label, _ := e.Fingerprint().Label("en")
	assert.Equal(t, "Berlin, Germany", label.Text)
	assert.False(t, e.Fingerprint().Labels().Has("fr"))
}

func TestEntityDiffService_PatchFailsFast(t *testing.T) {
	tests := []struct {
		name  string
		build func(d *EntityDiff)
	}{
		{
			name: "claim op without a claim",
			build: func(d *EntityDiff) {
				d.Claims.Set("Q1$2", diff.Add{NewValue: "not a claim"})
			},
		},
		{
			name: "claim op keyed by another guid",
			build: func(d *EntityDiff) {
				d.Claims.Set("Q1$2", diff.Add{NewValue: entities.NewClaim("Q1$3", entities.NewNoValueSnak(testP1))})
			},
		},
		{
			name: "claim with malformed guid",
			build: func(d *EntityDiff) {
				d.Claims.Set("bad", diff.Add{NewValue: entities.NewClaim("bad", entities.NewNoValueSnak(testP1))})
			},
		},
		{
			name: "label that is not text",
			build: func(d *EntityDiff) {
				d.Labels.Set("de", diff.Add{NewValue: []string{"a"}})
			},
		},
		{
			name: "nested op on claims",
			build: func(d *EntityDiff) {
				d.Claims.Set("Q1$2", diff.Nested{Diff: diff.New()})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEntityDiffService(nil)
			e := newTestItem(t, map[string]string{"en": "Berlin"}, entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1)))
			before := e.Copy()

			d := NewEntityDiff(entities.KindItem)
			d.Labels.Set("en", diff.Change{OldValue: "Berlin", NewValue: "Paris"})
			d.Claims.Set("Q1$1", diff.Remove{})
			tt.build(d)

			require.Error(t, svc.Patch(e, d))
			assert.True(t, e.Equals(before))
		})
	}
}

func TestEntityDiff_Equal(t *testing.T) {
	a := NewEntityDiff(entities.KindItem)
	a.Claims.Set("Q1$1", diff.Add{NewValue: entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1))})
	b := NewEntityDiff(entities.KindItem)
	b.Claims.Set("Q1$1", diff.Add{NewValue: entities.NewClaim("Q1$1", entities.NewNoValueSnak(testP1))})

	assert.True(t, a.Equal(b))

	a.SetClaimAnchor("Q1$1", "")
	assert.False(t, a.Equal(b))
	b.SetClaimAnchor("Q1$1", "")
	assert.True(t, a.Equal(b))

	b.Claims.Set("Q1$1", diff.Add{NewValue: entities.NewClaim("Q1$1", entities.NewSomeValueSnak(testP1))})
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(NewEntityDiff(entities.KindProperty)))
}
