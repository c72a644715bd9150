package ports

import (
	"context"

	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
)

// RevisionStore defines the interface for persisting entity revisions.
type RevisionStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// SaveRevision stores a new revision together with its audit entry, if
	// any. Either both are stored or neither is. Numbers are unique per entity.
	SaveRevision(ctx context.Context, rev *entities.Revision, entry *entities.AuditEntry) error

	// FindRevisions finds all revisions of an entity, newest first.
	FindRevisions(ctx context.Context, id entities.EntityID) ([]entities.Revision, error)

	// FindRevision finds one revision by number. Returns nil if it doesn't exist.
	FindRevision(ctx context.Context, id entities.EntityID, number int) (*entities.Revision, error)

	// FindLatestRevision finds the newest revision. Returns nil if the entity has none.
	FindLatestRevision(ctx context.Context, id entities.EntityID) (*entities.Revision, error)

	// CountRevisions counts how many revisions an entity has.
	CountRevisions(ctx context.Context, id entities.EntityID) (int, error)

	// ListEntityIDs lists every entity with at least one revision.
	ListEntityIDs(ctx context.Context) ([]entities.EntityID, error)

	// FindAuditLog finds audit log entries for an entity, newest first.
	FindAuditLog(ctx context.Context, id entities.EntityID) ([]entities.AuditEntry, error)
}
