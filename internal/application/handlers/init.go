// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"github.com/benestar/wikibase-datamodel/internal/infrastructure/config"
)

// DefaultRepoName is the repository created by init.
const DefaultRepoName = "default"

// InitHandler handles workspace initialization.
type InitHandler struct {
	repos *RepoHandler
}

// NewInitHandler creates a new init handler.
func NewInitHandler(repos *RepoHandler) *InitHandler {
	return &InitHandler{
		repos: repos,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath   string
	RepoName     string
	DatabasePath string
}

// Handle writes the default config and creates the default repository.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("wbdm already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	if _, err := config.Load(basePath); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	repo, err := h.repos.Create(ctx, basePath, DefaultRepoName, "Default repository")
	if err != nil {
		return nil, fmt.Errorf("creating default repository: %w", err)
	}

	return &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		RepoName:     repo.Name,
		DatabasePath: repo.Path,
	}, nil
}
