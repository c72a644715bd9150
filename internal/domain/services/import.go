package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/domain/ports"
	"github.com/benestar/wikibase-datamodel/internal/infrastructure/logging"
)

// ConflictStrategy defines how to handle entities that already have
// revisions during import.
type ConflictStrategy string

const (
	// ConflictSkip skips entities that already have a revision.
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite stores the imported document as a new revision.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// DefaultImportSummary is the revision summary used when none is given.
const DefaultImportSummary = "import"

// IsValid reports whether s is a known strategy.
func (s ConflictStrategy) IsValid() bool {
	return s == ConflictSkip || s == ConflictOverwrite
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing entities
	Summary    string           // Revision summary, DefaultImportSummary if empty
}

// ImportDocument is one document of an entity dump. Err is set when the
// document could not be decoded.
type ImportDocument struct {
	Index  int // 1-indexed position in the dump
	Entity *entities.Entity
	Err    error
}

// ImportError represents an error for a specific document during import.
type ImportError struct {
	Document int    // 1-indexed position in the dump, 0 if unknown
	Field    string // Which field has the error
	Value    string // The offending value
	Message  string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Document > 0 {
		return fmt.Sprintf("document %d: %s", e.Document, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// ImportService loads entity dumps into the revision store.
type ImportService struct {
	store     ports.RevisionStore
	revisions *RevisionService
	logger    *zap.SugaredLogger
}

// NewImportService creates a new import service.
func NewImportService(store ports.RevisionStore, revisions *RevisionService, logger *zap.SugaredLogger) *ImportService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ImportService{
		store:     store,
		revisions: revisions,
		logger:    logger,
	}
}

// Import validates docs and saves every valid entity as a revision.
// Invalid documents are reported in the result and do not stop the import.
func (s *ImportService) Import(ctx context.Context, docs []ImportDocument, opts ImportOptions) (*ImportResult, error) {
	if opts.OnConflict == "" {
		opts.OnConflict = ConflictSkip
	}
	if !opts.OnConflict.IsValid() {
		return nil, fmt.Errorf("invalid conflict strategy %q (valid: skip, overwrite)", opts.OnConflict)
	}
	if opts.Summary == "" {
		opts.Summary = DefaultImportSummary
	}

	result := &ImportResult{}

	valid, validationErrors := validateDocuments(docs)
	result.Errors = validationErrors

	if len(valid) == 0 {
		return result, nil
	}

	if opts.DryRun {
		result.Imported = len(valid)
		return result, nil
	}

	for _, e := range valid {
		imported, err := s.importEntity(ctx, e, opts)
		if err != nil {
			return nil, err
		}
		if imported {
			result.Imported++
		} else {
			result.Skipped++
		}
	}

	s.logger.Infow("Imported entities",
		"imported", result.Imported,
		"skipped", result.Skipped,
		"errors", len(result.Errors))

	return result, nil
}

func (s *ImportService) importEntity(ctx context.Context, e *entities.Entity, opts ImportOptions) (bool, error) {
	id, _ := e.ID()

	if opts.OnConflict == ConflictSkip {
		count, err := s.store.CountRevisions(ctx, id)
		if err != nil {
			return false, fmt.Errorf("checking existing revisions of %s: %w", id, err)
		}
		if count > 0 {
			s.logger.Debugw("Skipped existing entity", logging.FieldEntityID, id.Serialization())
			return false, nil
		}
	}

	res, err := s.revisions.Save(ctx, e, opts.Summary, false)
	if err != nil {
		return false, fmt.Errorf("importing %s: %w", id, err)
	}
	return res.Created, nil
}

// validateDocuments returns the decodable entities with ids, in dump order.
// Later documents repeating an id are rejected.
func validateDocuments(docs []ImportDocument) ([]*entities.Entity, []ImportError) {
	valid := make([]*entities.Entity, 0, len(docs))
	var errs []ImportError
	seen := make(map[string]int, len(docs))

	for i := range docs {
		doc := &docs[i]
		index := doc.Index
		if index == 0 {
			index = i + 1
		}

		if doc.Err != nil {
			errs = append(errs, ImportError{Document: index, Field: "document", Message: doc.Err.Error()})
			continue
		}
		if doc.Entity == nil {
			errs = append(errs, ImportError{Document: index, Field: "document", Message: "empty document"})
			continue
		}

		id, ok := doc.Entity.ID()
		if !ok {
			errs = append(errs, ImportError{Document: index, Field: "id", Message: "missing required field: id"})
			continue
		}
		if first, dup := seen[id.Serialization()]; dup {
			errs = append(errs, ImportError{
				Document: index,
				Field:    "id",
				Value:    id.Serialization(),
				Message:  fmt.Sprintf("duplicate id %s (first seen in document %d)", id, first),
			})
			continue
		}
		seen[id.Serialization()] = index

		valid = append(valid, doc.Entity)
	}

	return valid, errs
}
