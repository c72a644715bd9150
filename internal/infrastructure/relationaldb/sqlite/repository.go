// Package sqlite provides a SQLite implementation of the RevisionStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/infrastructure/config"
	"github.com/benestar/wikibase-datamodel/internal/infrastructure/serializers"
)

// Repository implements ports.RevisionStore using SQLite.
// Entity snapshots are stored as JSON documents.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// An in-memory database lives and dies with its connection.
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Entity revisions (one JSON snapshot per saved change)
	CREATE TABLE IF NOT EXISTS revisions (
		id TEXT PRIMARY KEY,
		entity_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		number INTEGER NOT NULL,
		data TEXT NOT NULL,
		summary TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(entity_id, number)
	);
	CREATE INDEX IF NOT EXISTS idx_revisions_entity ON revisions(entity_id);

	-- Audit log (tracks all actions)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		entity_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveRevision stores a new revision and, when entry is not nil, its audit
// entry in one transaction.
func (r *Repository) SaveRevision(ctx context.Context, rev *entities.Revision, entry *entities.AuditEntry) error {
	if rev.Entity == nil {
		return errors.New("revision has no entity snapshot")
	}
	data, err := serializers.MarshalEntity(rev.Entity)
	if err != nil {
		return fmt.Errorf("marshaling entity: %w", err)
	}

	var details sql.NullString
	if entry != nil && entry.Details != nil {
		raw, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		details = sql.NullString{String: string(raw), Valid: true}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	query := `
		INSERT INTO revisions (id, entity_id, kind, number, data, summary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		rev.ID,
		rev.EntityID.Serialization(),
		string(rev.EntityID.Kind()),
		rev.Number,
		string(data),
		rev.Summary,
		rev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving revision: %w", err)
	}

	if entry != nil {
		auditQuery := `INSERT INTO audit_log (action, entity_id, details) VALUES (?, ?, ?)`
		if _, err := tx.ExecContext(ctx, auditQuery, entry.Action, rev.EntityID.Serialization(), details); err != nil {
			return fmt.Errorf("logging action: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing revision: %w", err)
	}
	return nil
}

// FindRevisions finds all revisions of an entity, newest first.
func (r *Repository) FindRevisions(ctx context.Context, id entities.EntityID) ([]entities.Revision, error) {
	query := `
		SELECT id, entity_id, kind, number, data, summary, created_at
		FROM revisions
		WHERE entity_id = ?
		ORDER BY number DESC
	`
	rows, err := r.db.QueryContext(ctx, query, id.Serialization())
	if err != nil {
		return nil, fmt.Errorf("querying revisions: %w", err)
	}
	defer rows.Close()

	revisions := make([]entities.Revision, 0, 16)
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, *rev)
	}
	return revisions, rows.Err()
}

// FindRevision finds one revision by number. Returns nil if it doesn't exist.
func (r *Repository) FindRevision(ctx context.Context, id entities.EntityID, number int) (*entities.Revision, error) {
	query := `
		SELECT id, entity_id, kind, number, data, summary, created_at
		FROM revisions
		WHERE entity_id = ? AND number = ?
	`
	return r.queryRevision(ctx, query, id.Serialization(), number)
}

// FindLatestRevision finds the newest revision of an entity.
func (r *Repository) FindLatestRevision(ctx context.Context, id entities.EntityID) (*entities.Revision, error) {
	query := `
		SELECT id, entity_id, kind, number, data, summary, created_at
		FROM revisions
		WHERE entity_id = ?
		ORDER BY number DESC
		LIMIT 1
	`
	return r.queryRevision(ctx, query, id.Serialization())
}

// CountRevisions counts how many revisions an entity has.
func (r *Repository) CountRevisions(ctx context.Context, id entities.EntityID) (int, error) {
	query := `SELECT COUNT(*) FROM revisions WHERE entity_id = ?`
	var count int
	err := r.db.QueryRowContext(ctx, query, id.Serialization()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting revisions: %w", err)
	}
	return count, nil
}

// ListEntityIDs lists every entity with at least one revision.
func (r *Repository) ListEntityIDs(ctx context.Context) ([]entities.EntityID, error) {
	query := `SELECT DISTINCT kind, entity_id FROM revisions ORDER BY entity_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying entity ids: %w", err)
	}
	defer rows.Close()

	var ids []entities.EntityID
	for rows.Next() {
		var kind, serialization string
		if err := rows.Scan(&kind, &serialization); err != nil {
			return nil, fmt.Errorf("scanning entity id: %w", err)
		}
		id, err := entities.ParseEntityID(entities.Kind(kind), serialization)
		if err != nil {
			return nil, fmt.Errorf("parsing stored entity id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *Repository) queryRevision(ctx context.Context, query string, args ...any) (*entities.Revision, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying revision: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanRevision(rows)
}

// scanRevision is a helper to scan a revision row.
func scanRevision(rows *sql.Rows) (*entities.Revision, error) {
	var rev entities.Revision
	var entityID, kind, data string
	var summary sql.NullString

	err := rows.Scan(
		&rev.ID,
		&entityID,
		&kind,
		&rev.Number,
		&data,
		&summary,
		&rev.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning revision: %w", err)
	}

	rev.EntityID, err = entities.ParseEntityID(entities.Kind(kind), entityID)
	if err != nil {
		return nil, fmt.Errorf("parsing stored entity id: %w", err)
	}
	rev.Summary = summary.String

	rev.Entity, err = serializers.UnmarshalEntity([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling entity: %w", err)
	}

	return &rev, nil
}

// FindAuditLog finds audit log entries for an entity, newest first.
func (r *Repository) FindAuditLog(ctx context.Context, id entities.EntityID) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, entity_id, details, created_at
		FROM audit_log
		WHERE entity_id = ?
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, id.Serialization())
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var entityID, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entityID,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.EntityID = entityID.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
