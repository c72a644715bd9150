package entities

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	p31  = MustParseEntityID(KindProperty, "P31")
	p17  = MustParseEntityID(KindProperty, "P17")
	q5   = MustParseEntityID(KindItem, "Q5")
	q183 = MustParseEntityID(KindItem, "Q183")
)

func TestSnaks_EqualsIgnoresOrder(t *testing.T) {
	a := NewSnaks(NewNoValueSnak(p31), NewSomeValueSnak(p17))
	b := NewSnaks(NewSomeValueSnak(p17), NewNoValueSnak(p31), NewNoValueSnak(p31))

	assert.Len(t, b, 2)
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(a.Without(NewNoValueSnak(p31))))
	assert.Len(t, a.ByProperty(p17), 1)
}

func TestSnak_Equals(t *testing.T) {
	assert.True(t, NewValueSnak(p31, EntityIDValue{ID: q5}).Equals(NewValueSnak(p31, EntityIDValue{ID: q5})))
	assert.False(t, NewValueSnak(p31, EntityIDValue{ID: q5}).Equals(NewValueSnak(p31, StringValue("q5"))))
	assert.False(t, NewNoValueSnak(p31).Equals(NewSomeValueSnak(p31)))
}

func TestClaim_Equality(t *testing.T) {
	a := NewClaim("Q64$1", NewValueSnak(p31, EntityIDValue{ID: q5}), NewNoValueSnak(p17))
	b := NewClaim("Q64$2", NewValueSnak(p31, EntityIDValue{ID: q5}), NewNoValueSnak(p17))

	assert.True(t, a.SameContent(b))
	assert.False(t, a.Equals(b))

	require.NoError(t, b.SetRank(RankPreferred))
	assert.False(t, a.SameContent(b))

	err := b.SetRank(Rank("best"))
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestClaims_UniqueByGUID(t *testing.T) {
	cs, err := NewClaims(
		NewClaim("Q64$1", NewNoValueSnak(p31)),
		NewClaim("Q64$2", NewNoValueSnak(p17)),
	)
	require.NoError(t, err)

	require.NoError(t, cs.Add(NewClaim("Q64$1", NewSomeValueSnak(p31))))
	assert.Equal(t, 2, cs.Len())
	assert.Equal(t, []string{"Q64$1", "Q64$2"}, cs.GUIDs())

	held, ok := cs.Get("Q64$1")
	require.True(t, ok)
	assert.Equal(t, SnakSomeValue, held.MainSnak().Type())

	cs.Remove("Q64$1")
	cs.Remove("Q64$404")
	assert.Equal(t, []string{"Q64$2"}, cs.GUIDs())
}

func TestClaims_InsertAfter(t *testing.T) {
	tests := []struct {
		name string
		prev string
		guid string
		want []string
	}{
		{name: "front", prev: "", guid: "Q64$0", want: []string{"Q64$0", "Q64$1", "Q64$3"}},
		{name: "middle", prev: "Q64$1", guid: "Q64$2", want: []string{"Q64$1", "Q64$2", "Q64$3"}},
		{name: "after last", prev: "Q64$3", guid: "Q64$4", want: []string{"Q64$1", "Q64$3", "Q64$4"}},
		{name: "unknown anchor appends", prev: "Q64$9", guid: "Q64$4", want: []string{"Q64$1", "Q64$3", "Q64$4"}},
		{name: "existing guid keeps its position", prev: "", guid: "Q64$3", want: []string{"Q64$1", "Q64$3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := NewClaims(NewClaim("Q64$1", NewNoValueSnak(p31)), NewClaim("Q64$3", NewNoValueSnak(p31)))
			require.NoError(t, err)

			require.NoError(t, cs.InsertAfter(tt.prev, NewClaim(tt.guid, NewSomeValueSnak(p17))))
			assert.Equal(t, tt.want, cs.GUIDs())

			held, _ := cs.Get(tt.guid)
			assert.Equal(t, SnakSomeValue, held.MainSnak().Type())
		})
	}

	err := (&Claims{}).InsertAfter("", NewClaim("bad", NewNoValueSnak(p31)))
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestClaims_RejectsMalformedGUID(t *testing.T) {
	_, err := NewClaims(NewClaim("no-separator", NewNoValueSnak(p31)))
	assert.True(t, errors.Is(err, ErrFormat))

	err = (&Claims{}).Add(nil)
	assert.True(t, errors.Is(err, ErrIllegalState))
}

func TestClaims_CopiesInAndOut(t *testing.T) {
	c := NewClaim("Q64$1", NewNoValueSnak(p31))
	cs, err := NewClaims(c)
	require.NoError(t, err)

	c.AddQualifier(NewNoValueSnak(p17))
	held, _ := cs.Get("Q64$1")
	assert.Empty(t, held.Qualifiers())

	held.SetMainSnak(NewSomeValueSnak(p17))
	again, _ := cs.Get("Q64$1")
	assert.Equal(t, SnakNoValue, again.MainSnak().Type())

	for _, claim := range cs.All() {
		claim.SetGUID("Q64$x")
	}
	assert.True(t, cs.HasGUID("Q64$1"))
}

func TestClaims_Equals(t *testing.T) {
	a, _ := NewClaims(NewClaim("Q64$1", NewNoValueSnak(p31)), NewClaim("Q64$2", NewNoValueSnak(p17)))
	b, _ := NewClaims(NewClaim("Q64$2", NewNoValueSnak(p17)), NewClaim("Q64$1", NewNoValueSnak(p31)))

	assert.True(t, a.Equals(a.Clone()))
	assert.False(t, a.Equals(b))
	assert.True(t, a.Has(NewClaim("Q64$1", NewNoValueSnak(p31))))
	assert.False(t, a.Has(NewClaim("Q64$1", NewSomeValueSnak(p31))))
}
