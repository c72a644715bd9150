package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
)

// RevisionStore is a mock implementation of ports.RevisionStore.
// Revisions are kept per entity in insertion order.
type RevisionStore struct {
	Revisions map[entities.EntityID][]entities.Revision
	Audit     []entities.AuditEntry
	Err       error
	SaveErr   error

	EnsureSchemaCallCount int
	Closed                bool
}

// NewRevisionStore creates a new mock RevisionStore.
func NewRevisionStore() *RevisionStore {
	return &RevisionStore{
		Revisions: make(map[entities.EntityID][]entities.Revision),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *RevisionStore) EnsureSchema(_ context.Context) error {
	m.EnsureSchemaCallCount++
	return m.Err
}

// Close closes the database connection.
func (m *RevisionStore) Close() error {
	m.Closed = true
	return nil
}

// SaveRevision stores a copy of rev and entry. On error neither is stored.
func (m *RevisionStore) SaveRevision(_ context.Context, rev *entities.Revision, entry *entities.AuditEntry) error {
	if m.Err != nil {
		return m.Err
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}
	stored := *rev
	stored.Entity = rev.Entity.Copy()
	m.Revisions[rev.EntityID] = append(m.Revisions[rev.EntityID], stored)

	if entry != nil {
		logged := *entry
		logged.ID = int64(len(m.Audit) + 1)
		logged.EntityID = rev.EntityID.Serialization()
		logged.CreatedAt = time.Now()
		m.Audit = append(m.Audit, logged)
	}
	return nil
}

// FindRevisions finds all revisions of an entity, newest first.
func (m *RevisionStore) FindRevisions(_ context.Context, id entities.EntityID) ([]entities.Revision, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	revs := m.Revisions[id]
	result := make([]entities.Revision, 0, len(revs))
	for i := len(revs) - 1; i >= 0; i-- {
		result = append(result, copyRevision(revs[i]))
	}
	return result, nil
}

// FindRevision finds one revision by number.
func (m *RevisionStore) FindRevision(_ context.Context, id entities.EntityID, number int) (*entities.Revision, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, rev := range m.Revisions[id] {
		if rev.Number == number {
			found := copyRevision(rev)
			return &found, nil
		}
	}
	return nil, nil
}

// FindLatestRevision finds the newest revision.
func (m *RevisionStore) FindLatestRevision(_ context.Context, id entities.EntityID) (*entities.Revision, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	revs := m.Revisions[id]
	if len(revs) == 0 {
		return nil, nil
	}
	latest := copyRevision(revs[len(revs)-1])
	return &latest, nil
}

// CountRevisions counts how many revisions an entity has.
func (m *RevisionStore) CountRevisions(_ context.Context, id entities.EntityID) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Revisions[id]), nil
}

// ListEntityIDs lists every entity with at least one revision.
func (m *RevisionStore) ListEntityIDs(_ context.Context) ([]entities.EntityID, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	ids := make([]entities.EntityID, 0, len(m.Revisions))
	for id := range m.Revisions {
		ids = append(ids, id)
	}
	// Sort for deterministic test results
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Serialization() < ids[j].Serialization()
	})
	return ids, nil
}

// FindAuditLog finds audit log entries for an entity, newest first.
func (m *RevisionStore) FindAuditLog(_ context.Context, id entities.EntityID) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.AuditEntry
	for i := len(m.Audit) - 1; i >= 0; i-- {
		if m.Audit[i].EntityID == id.Serialization() {
			result = append(result, m.Audit[i])
		}
	}
	return result, nil
}

func copyRevision(rev entities.Revision) entities.Revision {
	rev.Entity = rev.Entity.Copy()
	return rev
}
