package handlers

import (
	"github.com/benestar/wikibase-datamodel/internal/domain/entities"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

// DiffHandler diffs and patches entity documents on disk.
type DiffHandler struct {
	differ *services.EntityDiffService
}

// NewDiffHandler creates a new diff handler.
func NewDiffHandler(differ *services.EntityDiffService) *DiffHandler {
	return &DiffHandler{
		differ: differ,
	}
}

// Diff computes the diff from the entity in fromPath to the one in toPath.
func (h *DiffHandler) Diff(fromPath, toPath, format string) (*services.EntityDiff, error) {
	from, err := ReadEntity(fromPath, format)
	if err != nil {
		return nil, err
	}
	to, err := ReadEntity(toPath, format)
	if err != nil {
		return nil, err
	}
	return h.differ.Diff(from, to)
}

// Patch applies the diff in diffPath to the entity in basePath and returns
// the patched entity. The file itself is not modified.
func (h *DiffHandler) Patch(basePath, diffPath, format string) (*entities.Entity, error) {
	e, err := ReadEntity(basePath, format)
	if err != nil {
		return nil, err
	}
	d, err := ReadDiff(diffPath, format)
	if err != nil {
		return nil, err
	}
	if err := h.differ.Patch(e, d); err != nil {
		return nil, err
	}
	return e, nil
}
