package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

// ImportHandler handles importing entity dumps from files.
type ImportHandler struct {
	service *services.ImportService
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService) *ImportHandler {
	return &ImportHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format     string                    // "json", "yaml", or "auto"
	DryRun     bool                      // Validate without saving
	OnConflict services.ConflictStrategy // How to handle existing entities
	Summary    string                    // Revision summary
}

// Handle imports the entity dump in filePath.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*services.ImportResult, error) {
	codec, err := codecFor(filePath, opts.Format)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	docs, err := codec.DecodeDump(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	if len(docs) == 0 {
		return &services.ImportResult{}, nil
	}

	return h.service.Import(ctx, docs, services.ImportOptions{
		DryRun:     opts.DryRun,
		OnConflict: opts.OnConflict,
		Summary:    opts.Summary,
	})
}
