package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/domain/ports"
	"github.com/benestar/wikibase-datamodel/internal/infrastructure/logging"
)

// ErrRevisionNotFound is returned when a requested revision does not exist.
var ErrRevisionNotFound = errors.New("revision not found")

// SaveResult reports the outcome of a write. Created is false when the
// entity matched its latest revision and nothing was stored; Revision is
// then that latest revision.
type SaveResult struct {
	Revision *entities.Revision
	Diff     *EntityDiff
	Created  bool
}

// RevisionService stores entity snapshots as numbered revisions.
type RevisionService struct {
	store  ports.RevisionStore
	differ *EntityDiffService
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewRevisionService creates a new RevisionService. A nil logger disables
// logging.
func NewRevisionService(store ports.RevisionStore, differ *EntityDiffService, logger *zap.SugaredLogger) *RevisionService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &RevisionService{
		store:  store,
		differ: differ,
		logger: logger,
		now:    time.Now,
	}
}

// Save stores e as the next revision of its entity. Unless force is set,
// nothing is stored when e equals the latest revision.
func (s *RevisionService) Save(ctx context.Context, e *entities.Entity, summary string, force bool) (*SaveResult, error) {
	id, ok := e.ID()
	if !ok {
		return nil, errors.Mark(errors.New("cannot save an entity without id"), entities.ErrIllegalState)
	}
	return s.write(ctx, entities.ActionSave, id, e, summary, force)
}

// ApplyPatch applies d to the latest revision of id and stores the result.
func (s *RevisionService) ApplyPatch(ctx context.Context, id entities.EntityID, d *EntityDiff, summary string) (*SaveResult, error) {
	latest, err := s.Latest(ctx, id)
	if err != nil {
		return nil, err
	}

	patched := latest.Entity.Copy()
	if err := s.differ.Patch(patched, d); err != nil {
		return nil, fmt.Errorf("patching %s: %w", id, err)
	}

	return s.write(ctx, entities.ActionPatch, id, patched, summary, false)
}

// Revert stores the snapshot of revision number as the newest revision.
func (s *RevisionService) Revert(ctx context.Context, id entities.EntityID, number int, summary string) (*SaveResult, error) {
	target, err := s.Get(ctx, id, number)
	if err != nil {
		return nil, err
	}
	if summary == "" {
		summary = fmt.Sprintf("revert to revision %d", number)
	}
	return s.write(ctx, entities.ActionRevert, id, target.Entity, summary, false)
}

func (s *RevisionService) write(
	ctx context.Context,
	action string,
	id entities.EntityID,
	e *entities.Entity,
	summary string,
	force bool,
) (*SaveResult, error) {
	latest, err := s.store.FindLatestRevision(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding latest revision: %w", err)
	}

	var from *entities.Entity
	if latest != nil {
		from = latest.Entity
	} else if from, err = entities.NewEntity(e.Kind()); err != nil {
		return nil, err
	}

	d, err := s.differ.Diff(from, e)
	if err != nil {
		return nil, fmt.Errorf("diffing against latest revision: %w", err)
	}
	if latest != nil && d.IsEmpty() && !force {
		s.logger.Debugw("Skipped unchanged revision",
			logging.FieldEntityID, id.Serialization(),
			logging.FieldRevision, latest.Number)
		return &SaveResult{Revision: latest, Diff: d}, nil
	}

	number := 1
	if latest != nil {
		number = latest.Number + 1
	}
	rev := &entities.Revision{
		ID:        uuid.New().String(),
		EntityID:  id,
		Number:    number,
		Entity:    e.Copy(),
		Summary:   summary,
		CreatedAt: s.now(),
	}
	entry := &entities.AuditEntry{
		Action:   action,
		EntityID: id.Serialization(),
		Details: map[string]any{
			"revision":   number,
			"operations": d.Len(),
			"summary":    summary,
		},
	}
	if err := s.store.SaveRevision(ctx, rev, entry); err != nil {
		return nil, fmt.Errorf("saving revision: %w", err)
	}

	s.logger.Infow("Saved revision",
		logging.FieldEntityID, id.Serialization(),
		logging.FieldRevision, number,
		logging.FieldOperations, d.Len(),
		"action", action)

	return &SaveResult{Revision: rev, Diff: d, Created: true}, nil
}

// History returns every revision of id, newest first.
func (s *RevisionService) History(ctx context.Context, id entities.EntityID) ([]entities.Revision, error) {
	revs, err := s.store.FindRevisions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding revisions: %w", err)
	}
	return revs, nil
}

// Latest returns the newest revision of id.
func (s *RevisionService) Latest(ctx context.Context, id entities.EntityID) (*entities.Revision, error) {
	rev, err := s.store.FindLatestRevision(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding latest revision: %w", err)
	}
	if rev == nil {
		return nil, errors.Wrapf(ErrRevisionNotFound, "%s has no revisions", id)
	}
	return rev, nil
}

// Get returns revision number of id.
func (s *RevisionService) Get(ctx context.Context, id entities.EntityID, number int) (*entities.Revision, error) {
	rev, err := s.store.FindRevision(ctx, id, number)
	if err != nil {
		return nil, fmt.Errorf("finding revision: %w", err)
	}
	if rev == nil {
		return nil, errors.Wrapf(ErrRevisionNotFound, "%s revision %d", id, number)
	}
	return rev, nil
}

// DiffRevisions computes the diff from revision from to revision to.
func (s *RevisionService) DiffRevisions(ctx context.Context, id entities.EntityID, from, to int) (*EntityDiff, error) {
	fromRev, err := s.Get(ctx, id, from)
	if err != nil {
		return nil, err
	}
	toRev, err := s.Get(ctx, id, to)
	if err != nil {
		return nil, err
	}
	return s.differ.Diff(fromRev.Entity, toRev.Entity)
}

// Entities lists every entity with at least one revision.
func (s *RevisionService) Entities(ctx context.Context) ([]entities.EntityID, error) {
	ids, err := s.store.ListEntityIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	return ids, nil
}

// AuditLog returns the recorded actions on id, newest first.
func (s *RevisionService) AuditLog(ctx context.Context, id entities.EntityID) ([]entities.AuditEntry, error) {
	entries, err := s.store.FindAuditLog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding audit log: %w", err)
	}
	return entries, nil
}
