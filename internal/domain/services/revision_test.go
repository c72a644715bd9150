package services

import (
	"context"
	"errors"
	"testing"
	"time"

	crdb "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/benestar/wikibase-datamodel/internal/domain/diff"
	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/domain/mocks"
	"github.com/benestar/wikibase-datamodel/internal/infrastructure/logging"
)

func newTestRevisionService(t *testing.T) (*RevisionService, *mocks.RevisionStore) {
	t.Helper()
	store := mocks.NewRevisionStore()
	svc := NewRevisionService(store, NewEntityDiffService(nil), nil)
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, store
}

func TestRevisionService_Save(t *testing.T) {
	svc, store := newTestRevisionService(t)
	ctx := context.Background()

	e := newTestItem(t, map[string]string{"en": "Berlin"})
	res, err := svc.Save(ctx, e, "create", false)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 1, res.Revision.Number)
	assert.Equal(t, "create", res.Revision.Summary)
	assert.Equal(t, 1, res.Diff.Labels.Len())

	t.Run("unchanged entity is skipped", func(t *testing.T) {
		res, err := svc.Save(ctx, e.Copy(), "again", false)
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, 1, res.Revision.Number)
		assert.True(t, res.Diff.IsEmpty())
	})

	t.Run("forced save stores anyway", func(t *testing.T) {
		res, err := svc.Save(ctx, e.Copy(), "touch", true)
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, 2, res.Revision.Number)
	})

	t.Run("changed entity gets next number", func(t *testing.T) {
		changed := e.Copy()
		f := changed.Fingerprint()
		f.SetLabel("de", "Berlin")
		changed.SetFingerprint(f)

		res, err := svc.Save(ctx, changed, "add de", false)
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, 3, res.Revision.Number)
	})

	t.Run("stored snapshot is isolated from caller", func(t *testing.T) {
		f := e.Fingerprint()
		f.SetLabel("fr", "Berlin")
		e.SetFingerprint(f)

		first, err := svc.Get(ctx, testQ1, 1)
		require.NoError(t, err)
		assert.False(t, first.Entity.Fingerprint().Labels().Has("fr"))
	})

	assert.Len(t, store.Audit, 3)
	assert.Equal(t, entities.ActionSave, store.Audit[0].Action)
}

func TestRevisionService_LogsStandardFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	store := mocks.NewRevisionStore()
	svc := NewRevisionService(store, NewEntityDiffService(nil), zap.New(core).Sugar())

	_, err := svc.Save(context.Background(), newTestItem(t, map[string]string{"en": "Berlin"}), "", false)
	require.NoError(t, err)

	saved := logs.FilterMessage("Saved revision").All()
	require.Len(t, saved, 1)
	fields := saved[0].ContextMap()
	assert.Equal(t, "q1", fields[logging.FieldEntityID])
	assert.EqualValues(t, 1, fields[logging.FieldRevision])
	assert.EqualValues(t, 1, fields[logging.FieldOperations])
}

func TestRevisionService_SaveWithoutID(t *testing.T) {
	svc, _ := newTestRevisionService(t)

	_, err := svc.Save(context.Background(), entities.NewItem(), "", false)
	require.Error(t, err)
	assert.True(t, crdb.Is(err, entities.ErrIllegalState))
}

func TestRevisionService_StoreErrors(t *testing.T) {
	svc, store := newTestRevisionService(t)
	ctx := context.Background()
	e := newTestItem(t, map[string]string{"en": "Berlin"})

	store.SaveErr = errors.New("disk full")
	_, err := svc.Save(ctx, e, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving revision: disk full")
	assert.Empty(t, store.Revisions)
	assert.Empty(t, store.Audit)

	store.SaveErr = nil
	store.Err = errors.New("connection lost")
	_, err = svc.History(ctx, testQ1)
	require.Error(t, err)
	_, err = svc.Entities(ctx)
	require.Error(t, err)
}

func TestRevisionService_HistoryAndLatest(t *testing.T) {
	svc, _ := newTestRevisionService(t)
	ctx := context.Background()

	_, err := svc.Latest(ctx, testQ1)
	assert.True(t, crdb.Is(err, ErrRevisionNotFound))

	for _, label := range []string{"Berlin", "Berlin, Germany", "Berlin (city)"} {
		_, err := svc.Save(ctx, newTestItem(t, map[string]string{"en": label}), label, false)
		require.NoError(t, err)
	}

	revs, err := svc.History(ctx, testQ1)
	require.NoError(t, err)
	require.Len(t, revs, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{revs[0].Number, revs[1].Number, revs[2].Number})

	latest, err := svc.Latest(ctx, testQ1)
	require.NoError(t, err)
	assert.Equal(t, 3, latest.Number)

	_, err = svc.Get(ctx, testQ1, 7)
	assert.True(t, crdb.Is(err, ErrRevisionNotFound))

	ids, err := svc.Entities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.EntityID{testQ1}, ids)
}

func TestRevisionService_DiffRevisions(t *testing.T) {
	svc, _ := newTestRevisionService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, newTestItem(t, map[string]string{"en": "Berlin"}), "", false)
	require.NoError(t, err)
	_, err = svc.Save(ctx, newTestItem(t, map[string]string{"en": "Berlin", "de": "Berlin"},
		entities.NewClaim("Q1$abc", entities.NewNoValueSnak(testP1))), "", false)
	require.NoError(t, err)

	d, err := svc.DiffRevisions(ctx, testQ1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, d.Labels.Keys())
	assert.Equal(t, []string{"Q1$abc"}, d.Claims.Keys())

	back, err := svc.DiffRevisions(ctx, testQ1, 2, 1)
	require.NoError(t, err)
	op, _ := back.Claims.Get("Q1$abc")
	assert.Equal(t, diff.OpRemove, op.Type())

	_, err = svc.DiffRevisions(ctx, testQ1, 1, 5)
	assert.True(t, crdb.Is(err, ErrRevisionNotFound))
}

func TestRevisionService_ApplyPatch(t *testing.T) {
	svc, store := newTestRevisionService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, newTestItem(t, map[string]string{"en": "Berlin"}), "", false)
	require.NoError(t, err)

	d := NewEntityDiff(entities.KindItem)
	d.Labels.Set("de", diff.Add{NewValue: "Berlin"})
	res, err := svc.ApplyPatch(ctx, testQ1, d, "add de label")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 2, res.Revision.Number)
	label, ok := res.Revision.Entity.Fingerprint().Label("de")
	require.True(t, ok)
	assert.Equal(t, "Berlin", label.Text)
	assert.Equal(t, entities.ActionPatch, store.Audit[len(store.Audit)-1].Action)

	t.Run("patch that changes nothing stores nothing", func(t *testing.T) {
		res, err := svc.ApplyPatch(ctx, testQ1, d, "again")
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Equal(t, 2, res.Revision.Number)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		_, err := svc.ApplyPatch(ctx, testQ1, NewEntityDiff(entities.KindProperty), "")
		assert.True(t, crdb.Is(err, entities.ErrTypeMismatch))
	})

	t.Run("unknown entity", func(t *testing.T) {
		_, err := svc.ApplyPatch(ctx, testQ5, d, "")
		assert.True(t, crdb.Is(err, ErrRevisionNotFound))
	})
}

func TestRevisionService_Revert(t *testing.T) {
	svc, store := newTestRevisionService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, newTestItem(t, map[string]string{"en": "Berlin"}), "", false)
	require.NoError(t, err)
	_, err = svc.Save(ctx, newTestItem(t, map[string]string{"en": "Vandalised"}), "", false)
	require.NoError(t, err)

	res, err := svc.Revert(ctx, testQ1, 1, "")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 3, res.Revision.Number)
	assert.Equal(t, "revert to revision 1", res.Revision.Summary)

	first, err := svc.Get(ctx, testQ1, 1)
	require.NoError(t, err)
	assert.True(t, res.Revision.Entity.Equals(first.Entity))

	entries, err := svc.AuditLog(ctx, testQ1)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, entities.ActionRevert, entries[0].Action)
	assert.Equal(t, 3, store.Audit[2].Details["revision"])

	_, err = svc.Revert(ctx, testQ1, 9, "")
	assert.True(t, crdb.Is(err, ErrRevisionNotFound))
}
