package handlers

import (
	"context"
	"fmt"

	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

// RevisionHandler handles revision history operations.
type RevisionHandler struct {
	service *services.RevisionService
}

// NewRevisionHandler creates a new revision handler.
func NewRevisionHandler(service *services.RevisionService) *RevisionHandler {
	return &RevisionHandler{
		service: service,
	}
}

// SaveOptions controls how an entity file is saved.
type SaveOptions struct {
	Format  string // "json", "yaml", or "auto"
	Summary string
	Force   bool // Store a revision even when nothing changed
}

// Save reads the entity in path and stores it as a new revision.
func (h *RevisionHandler) Save(ctx context.Context, path string, opts SaveOptions) (*services.SaveResult, error) {
	e, err := ReadEntity(path, opts.Format)
	if err != nil {
		return nil, err
	}
	return h.service.Save(ctx, e, opts.Summary, opts.Force)
}

// Patch applies the diff in diffPath to the latest revision of id.
func (h *RevisionHandler) Patch(ctx context.Context, id, diffPath, format, summary string) (*services.SaveResult, error) {
	entityID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	d, err := ReadDiff(diffPath, format)
	if err != nil {
		return nil, err
	}
	return h.service.ApplyPatch(ctx, entityID, d, summary)
}

// Log returns the revisions of id, newest first.
func (h *RevisionHandler) Log(ctx context.Context, id string) ([]entities.Revision, error) {
	entityID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return h.service.History(ctx, entityID)
}

// Show returns revision number of id, or the latest when number is 0.
func (h *RevisionHandler) Show(ctx context.Context, id string, number int) (*entities.Revision, error) {
	entityID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if number == 0 {
		return h.service.Latest(ctx, entityID)
	}
	return h.service.Get(ctx, entityID, number)
}

// Diff returns the diff between two revisions of id.
func (h *RevisionHandler) Diff(ctx context.Context, id string, from, to int) (*services.EntityDiff, error) {
	entityID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return h.service.DiffRevisions(ctx, entityID, from, to)
}

// Revert restores revision number of id as its newest revision.
func (h *RevisionHandler) Revert(ctx context.Context, id string, number int, summary string) (*services.SaveResult, error) {
	entityID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return h.service.Revert(ctx, entityID, number, summary)
}

// Entities lists every entity with stored revisions.
func (h *RevisionHandler) Entities(ctx context.Context) ([]entities.EntityID, error) {
	return h.service.Entities(ctx)
}

// Audit returns the recorded actions on id, newest first.
func (h *RevisionHandler) Audit(ctx context.Context, id string) ([]entities.AuditEntry, error) {
	entityID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return h.service.AuditLog(ctx, entityID)
}

func parseID(id string) (entities.EntityID, error) {
	entityID, err := entities.ParseEntityIDSerialization(id)
	if err != nil {
		return entities.EntityID{}, fmt.Errorf("invalid entity id %q: %w", id, err)
	}
	return entityID, nil
}
